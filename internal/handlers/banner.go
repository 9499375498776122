package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

type BannerHandler struct {
	DB *gorm.DB
}

// GetBanners returns the active promo banners for the storefront.
func (h *BannerHandler) GetBanners(c echo.Context) error {
	var banners []models.OfferBanner
	if err := h.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&banners).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, banners)
}
