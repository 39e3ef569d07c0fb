// Package devbackend is a self-contained stand-in for the commerce backend,
// meant for local development of the station. It speaks the same wire
// contract the station's commerce client expects: menu catalog, order
// creation with a server-side total, payment confirmation and cashier login.
package devbackend

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product groups sellable variants under one display entry.
type Product struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	ImageURL    string
	Active      bool             `gorm:"default:true"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductVariant is one purchasable configuration (size) of a product.
// Price is in the smallest currency unit.
type ProductVariant struct {
	ID        string `gorm:"primaryKey"`
	ProductID string `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	Price     int64  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Topping is an optional add-on priced per unit.
type Topping struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Price     int64  `gorm:"not null"`
	ImageURL  string
	Active    bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Topping) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Order payment states.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusConfirmed = "CONFIRMED"
)

// Order is a submitted order. TotalAmount is recomputed from current catalog
// prices at creation time; the submitting terminal's math is not trusted.
type Order struct {
	ID            string      `gorm:"primaryKey"`
	CustomerEmail string      `gorm:"not null"`
	TotalAmount   int64       `gorm:"not null"`
	PaymentStatus string      `gorm:"not null;default:'PENDING'"`
	Items         []OrderItem `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is one (variant, topping) line with the unit price captured at
// order time.
type OrderItem struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   string `gorm:"not null;index"`
	VariantID string `gorm:"not null"`
	ToppingID *string
	Quantity  int   `gorm:"not null"`
	UnitPrice int64 `gorm:"not null"`
}

// CashierUser can log in at a station. PasswordHash is bcrypt.
type CashierUser struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Authorities  string `gorm:"not null;default:'CASHIER'"` // comma-separated
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *CashierUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Product{},
		&ProductVariant{},
		&Topping{},
		&Order{},
		&OrderItem{},
		&CashierUser{},
	)
}
