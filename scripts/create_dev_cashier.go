package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sajifood/saji-cashier-station/internal/devbackend"
)

// Creates (or reports) a cashier account in the dev backend's SQLite
// database, for testing station login with non-default credentials.
func main() {
	username := flag.String("username", "kasir2", "Cashier username")
	password := flag.String("password", "kasir123", "Cashier password")
	authorities := flag.String("authorities", "CASHIER", "Comma-separated authorities")
	dbPath := flag.String("db", "saji_dev.sqlite", "Path to the dev backend SQLite database")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := devbackend.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	var existing devbackend.CashierUser
	if err := db.Where("username = ?", *username).First(&existing).Error; err == nil {
		fmt.Printf("Cashier '%s' already exists (authorities: %s)\n", existing.Username, existing.Authorities)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	cashier := devbackend.CashierUser{
		Username:     *username,
		PasswordHash: string(hash),
		Authorities:  *authorities,
	}
	if err := db.Create(&cashier).Error; err != nil {
		log.Fatal("Failed to create cashier:", err)
	}

	fmt.Printf("✓ Cashier created!\n")
	fmt.Printf("Username: %s\n", *username)
	fmt.Printf("Password: %s\n", *password)
	fmt.Printf("Authorities: %s\n", *authorities)
	fmt.Println("\nLog in at the station:")
	fmt.Printf("curl -X POST http://localhost:8081/api/v1/auth/login \\\n")
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"username\":\"%s\",\"password\":\"%s\"}'\n", *username, *password)
}
