package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

type SlotHandler struct {
	DB *gorm.DB
}

// GetSlots returns the available pickup slots in time-of-day order.
func (h *SlotHandler) GetSlots(c echo.Context) error {
	var slots []models.PickupTimeSlot
	if err := h.DB.Where("is_available = ?", true).Find(&slots).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	SortSlots(slots)
	return c.JSON(http.StatusOK, slots)
}

// SortSlots orders slots chronologically by their "3:04 PM" label.
// Unparseable labels sort first.
func SortSlots(slots []models.PickupTimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slotMinutes(slots[i].TimeSlot) < slotMinutes(slots[j].TimeSlot)
	})
}

func slotMinutes(label string) int {
	t, err := time.Parse("3:04 PM", label)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}
