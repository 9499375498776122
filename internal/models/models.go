package models

import (
	"time"
)

// Order status labels. Flat labels, not a workflow: a committed order may
// move between them in any direction.
const (
	StatusPending   = "pending"
	StatusReady     = "ready"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the known order status labels.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReady, StatusCompleted:
		return true
	}
	return false
}

type Product struct {
	ID            uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string   `gorm:"not null"                 json:"name"`
	Description   string   `json:"description"`
	Price         float64  `gorm:"not null"                 json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	// Fractional stock: unit_type "kg" sells by weight.
	QuantityAvailable float64   `gorm:"not null;default:0"        json:"quantity_available"`
	UnitType          string    `gorm:"not null;default:quantity" json:"unit_type"`
	ImagePath         string    `json:"image_path"`
	CreatedAt         time.Time `json:"created_at"`
}

type OfferBanner struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Description string    `json:"description"`
	ImagePath   string    `json:"image_path"`
	// No column default: GORM would skip a false zero value on insert
	// and the DB would flip it back to true.
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName  string    `gorm:"not null"                 json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `gorm:"not null"                 json:"customer_phone"`
	PickupTime    time.Time `gorm:"not null"                 json:"pickup_time"`
	// Frozen at checkout, never recomputed from current product prices.
	TotalAmount float64     `gorm:"not null"                    json:"total_amount"`
	Status      string      `gorm:"not null;default:pending"    json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID uint `gorm:"index;not null"           json:"order_id"`
	// Reference, not ownership: the product may be deleted later.
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  float64 `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

type Seller struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type PickupTimeSlot struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TimeSlot    string `gorm:"unique;not null"          json:"time_slot"`
	IsAvailable bool   `json:"is_available"`
}
