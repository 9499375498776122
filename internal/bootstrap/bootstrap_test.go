package bootstrap

import (
	"log/slog"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/hash"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	return db
}

func TestInitFreshDatabase(t *testing.T) {
	db := initTestDB(t)

	require.NoError(t, Init(db, slog.Default(), "admin", "admin123"))

	var slots int64
	require.NoError(t, db.Model(&models.PickupTimeSlot{}).Count(&slots).Error)
	require.Equal(t, int64(len(DesiredTimeSlots)), slots)

	var seller models.Seller
	require.NoError(t, db.First(&seller).Error)
	require.Equal(t, "admin", seller.Username)
	require.True(t, hash.CheckPassword(seller.PasswordHash, "admin123"))

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.Equal(t, int64(5), products)
}

func TestInitIsIdempotent(t *testing.T) {
	db := initTestDB(t)

	require.NoError(t, Init(db, slog.Default(), "admin", "admin123"))
	require.NoError(t, Init(db, slog.Default(), "admin", "admin123"))

	var sellers, products, slots int64
	db.Model(&models.Seller{}).Count(&sellers)
	db.Model(&models.Product{}).Count(&products)
	db.Model(&models.PickupTimeSlot{}).Count(&slots)
	require.Equal(t, int64(1), sellers)
	require.Equal(t, int64(5), products)
	require.Equal(t, int64(len(DesiredTimeSlots)), slots)
}

func TestSyncTimeSlotsReconciles(t *testing.T) {
	db := initTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.PickupTimeSlot{}))

	// A stale slot that should be removed and a desired slot flipped off.
	require.NoError(t, db.Create(&models.PickupTimeSlot{TimeSlot: "2:00 PM", IsAvailable: true}).Error)
	require.NoError(t, db.Create(&models.PickupTimeSlot{TimeSlot: "7:00 AM", IsAvailable: false}).Error)

	require.NoError(t, SyncTimeSlots(db))

	var stale int64
	require.NoError(t, db.Model(&models.PickupTimeSlot{}).Where("time_slot = ?", "2:00 PM").Count(&stale).Error)
	require.Zero(t, stale)

	var morning models.PickupTimeSlot
	require.NoError(t, db.Where("time_slot = ?", "7:00 AM").First(&morning).Error)
	require.True(t, morning.IsAvailable)

	var total int64
	require.NoError(t, db.Model(&models.PickupTimeSlot{}).Count(&total).Error)
	require.Equal(t, int64(len(DesiredTimeSlots)), total)
}

func TestInitKeepsExistingSeller(t *testing.T) {
	db := initTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.Seller{}))

	pwHash, err := hash.HashPassword("custom-pass")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Seller{Username: "shopkeeper", PasswordHash: pwHash}).Error)

	require.NoError(t, Init(db, slog.Default(), "admin", "admin123"))

	var sellers []models.Seller
	require.NoError(t, db.Find(&sellers).Error)
	require.Len(t, sellers, 1)
	require.Equal(t, "shopkeeper", sellers[0].Username)
}
