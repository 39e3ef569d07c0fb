package devbackend

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultCashierUsername and DefaultCashierPassword are the credentials the
// seed creates for local development.
const (
	DefaultCashierUsername = "kasir"
	DefaultCashierPassword = "kasir123"
)

// Seed fills an empty database with a sample menu and a default cashier.
// A database that already has products is left untouched.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return nil
	}

	log.Info("Database is empty, seeding initial data")

	products := []Product{
		{
			Name:        "Es Teh",
			Description: "Teh manis dingin",
			Active:      true,
			Variants: []ProductVariant{
				{Name: "Kecil", Price: 15000},
				{Name: "Besar", Price: 20000},
			},
		},
		{
			Name:        "Kopi Susu",
			Description: "Kopi susu gula aren",
			Active:      true,
			Variants: []ProductVariant{
				{Name: "Kecil", Price: 18000},
				{Name: "Besar", Price: 24000},
			},
		},
		{
			Name:        "Jus Alpukat",
			Description: "Alpukat segar",
			Active:      false, // out of season, kept for catalog history
			Variants: []ProductVariant{
				{Name: "Besar", Price: 25000},
			},
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	toppings := []Topping{
		{Name: "Boba", Price: 3000, Active: true},
		{Name: "Keju", Price: 5000, Active: true},
		{Name: "Oreo", Price: 4000, Active: false},
	}
	for i := range toppings {
		if err := db.Create(&toppings[i]).Error; err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultCashierPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	cashier := CashierUser{
		Username:     DefaultCashierUsername,
		PasswordHash: string(hash),
		Authorities:  "CASHIER",
	}
	if err := db.Create(&cashier).Error; err != nil {
		return err
	}

	log.Info("Database seeded successfully")
	return nil
}
