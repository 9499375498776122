package seller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

type BannerHandler struct {
	DB        *gorm.DB
	UploadDir string
}

// ListBanners returns every banner, active or not, newest first. The
// storefront endpoint filters to active ones; the back office sees all.
func (h *BannerHandler) ListBanners(c echo.Context) error {
	var banners []models.OfferBanner
	if err := h.DB.Order("created_at DESC").Find(&banners).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, banners)
}

func bannerForm(c echo.Context) models.OfferBanner {
	active := true
	if raw := c.FormValue("is_active"); raw != "" {
		active, _ = strconv.ParseBool(raw)
	}
	return models.OfferBanner{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		IsActive:    active,
	}
}

func (h *BannerHandler) CreateBanner(c echo.Context) error {
	banner := bannerForm(c)
	if banner.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := saveUpload(file, h.UploadDir, "banners")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		banner.ImagePath = path
	}

	if err := h.DB.Create(&banner).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, banner)
}

func (h *BannerHandler) UpdateBanner(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var banner models.OfferBanner
	if err := h.DB.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "banner not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	form := bannerForm(c)
	if form.Title != "" {
		banner.Title = form.Title
	}
	banner.Description = form.Description
	banner.IsActive = form.IsActive

	if file, err := c.FormFile("image"); err == nil {
		path, err := saveUpload(file, h.UploadDir, "banners")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if path != "" {
			removeUpload(h.UploadDir, banner.ImagePath)
			banner.ImagePath = path
		}
	}

	if err := h.DB.Save(&banner).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) DeleteBanner(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var banner models.OfferBanner
	if err := h.DB.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "banner not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Delete(&models.OfferBanner{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	removeUpload(h.UploadDir, banner.ImagePath)

	return c.NoContent(http.StatusNoContent)
}
