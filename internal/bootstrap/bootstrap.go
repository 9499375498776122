// Package bootstrap brings the store to its desired startup state:
// schema migration, the fixed pickup-slot list, the default seller
// account and demo catalog data.
package bootstrap

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/hash"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

// DesiredTimeSlots is the shop's fixed pickup schedule. Slots are labels,
// not capacity-limited reservations.
var DesiredTimeSlots = []string{
	"7:00 AM", "8:00 AM", "9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "4:00 PM", "5:00 PM", "6:00 PM", "7:00 PM", "8:00 PM",
}

func Init(db *gorm.DB, log *slog.Logger, sellerUsername, sellerPassword string) error {
	if err := db.AutoMigrate(
		&models.Product{},
		&models.OfferBanner{},
		&models.Order{},
		&models.OrderItem{},
		&models.Seller{},
		&models.PickupTimeSlot{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := SyncTimeSlots(db); err != nil {
		return fmt.Errorf("sync time slots: %w", err)
	}

	created, err := ensureDefaultSeller(db, sellerUsername, sellerPassword)
	if err != nil {
		return fmt.Errorf("default seller: %w", err)
	}
	if created {
		log.Info("created default seller account", "username", sellerUsername)
	}

	seeded, err := seedSampleProducts(db)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if seeded > 0 {
		log.Info("seeded sample products", "count", seeded)
	}

	return nil
}

// SyncTimeSlots reconciles the pickup_time_slots table against
// DesiredTimeSlots: extras are removed, missing slots are inserted, and
// every desired slot is forced available.
func SyncTimeSlots(db *gorm.DB) error {
	desired := make(map[string]bool, len(DesiredTimeSlots))
	for _, s := range DesiredTimeSlots {
		desired[s] = true
	}

	var existing []models.PickupTimeSlot
	if err := db.Find(&existing).Error; err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))

	for _, slot := range existing {
		if !desired[slot.TimeSlot] {
			if err := db.Delete(&models.PickupTimeSlot{}, slot.ID).Error; err != nil {
				return err
			}
			continue
		}
		have[slot.TimeSlot] = true
	}

	for _, label := range DesiredTimeSlots {
		if !have[label] {
			if err := db.Create(&models.PickupTimeSlot{TimeSlot: label, IsAvailable: true}).Error; err != nil {
				return err
			}
		}
	}

	return db.Model(&models.PickupTimeSlot{}).
		Where("time_slot IN ?", DesiredTimeSlots).
		Update("is_available", true).Error
}

func ensureDefaultSeller(db *gorm.DB, username, password string) (bool, error) {
	var count int64
	if err := db.Model(&models.Seller{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return false, err
	}
	seller := models.Seller{Username: username, PasswordHash: pwHash}
	if err := db.Create(&seller).Error; err != nil {
		return false, err
	}
	return true, nil
}

func floatPtr(v float64) *float64 { return &v }

func seedSampleProducts(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	samples := []models.Product{
		{
			Name:              "Fresh Apples",
			Description:       "Crisp and juicy red apples, perfect for snacking.",
			Price:             120.0,
			OriginalPrice:     floatPtr(150.0),
			QuantityAvailable: 40.0,
			UnitType:          "kg",
			ImagePath:         "uploads/products/apples.svg",
		},
		{
			Name:              "Organic Bananas",
			Description:       "Sweet organic bananas, naturally ripened.",
			Price:             60.0,
			OriginalPrice:     floatPtr(75.0),
			QuantityAvailable: 35.0,
			UnitType:          "dozen",
			ImagePath:         "uploads/products/bananas.svg",
		},
		{
			Name:              "Whole Wheat Bread",
			Description:       "Soft and healthy whole wheat bread loaf.",
			Price:             45.0,
			OriginalPrice:     floatPtr(55.0),
			QuantityAvailable: 25.0,
			UnitType:          "quantity",
			ImagePath:         "uploads/products/bread.svg",
		},
		{
			Name:              "Fresh Milk",
			Description:       "Pure and fresh toned milk in 1 litre pack.",
			Price:             55.0,
			OriginalPrice:     floatPtr(65.0),
			QuantityAvailable: 50.0,
			UnitType:          "litre",
			ImagePath:         "uploads/products/milk.svg",
		},
		{
			Name:              "Brown Eggs",
			Description:       "Farm fresh brown eggs, high in protein.",
			Price:             70.0,
			OriginalPrice:     floatPtr(85.0),
			QuantityAvailable: 30.0,
			UnitType:          "quantity",
			ImagePath:         "uploads/products/eggs.svg",
		},
	}
	if err := db.Create(&samples).Error; err != nil {
		return 0, err
	}
	return len(samples), nil
}
