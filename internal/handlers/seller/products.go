package seller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/es"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/events"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/logging"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

type ProductHandler struct {
	DB        *gorm.DB
	Producer  *events.Producer
	ES        *elasticsearch.Client
	UploadDir string
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("product event publish failed", "error", err)
	}
}

func (h *ProductHandler) index(c echo.Context, p models.Product) {
	if h.ES == nil {
		return
	}
	if err := es.IndexProduct(c.Request().Context(), h.ES, p); err != nil {
		logging.FromContext(c.Request().Context()).Error("product index failed", "product_id", p.ID, "error", err)
	}
}

// productForm reads the multipart product fields shared by create and
// update.
func productForm(c echo.Context) (models.Product, error) {
	var p models.Product

	p.Name = c.FormValue("name")
	p.Description = c.FormValue("description")
	p.UnitType = c.FormValue("unit_type")
	if p.UnitType == "" {
		p.UnitType = "quantity"
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return p, echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	p.Price = price

	quantity, err := strconv.ParseFloat(c.FormValue("quantity"), 64)
	if err != nil || quantity < 0 {
		return p, echo.NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	p.QuantityAvailable = quantity

	if raw := c.FormValue("original_price"); raw != "" {
		op, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, echo.NewHTTPError(http.StatusBadRequest, "invalid original_price")
		}
		p.OriginalPrice = &op
	}

	if p.Name == "" {
		return p, echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	return p, nil
}

func (h *ProductHandler) image(c echo.Context, subdir string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// No file in the form.
		return "", nil
	}
	path, err := saveUpload(file, h.UploadDir, subdir)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return path, nil
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	var products []models.Product
	if err := h.DB.Order("created_at DESC").Find(&products).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	prod, err := productForm(c)
	if err != nil {
		return err
	}

	imagePath, err := h.image(c, "products")
	if err != nil {
		return err
	}
	prod.ImagePath = imagePath

	if err := h.DB.Create(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	h.index(c, prod)

	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	form, err := productForm(c)
	if err != nil {
		return err
	}
	prod.Name = form.Name
	prod.Description = form.Description
	prod.Price = form.Price
	prod.OriginalPrice = form.OriginalPrice
	prod.QuantityAvailable = form.QuantityAvailable
	prod.UnitType = form.UnitType

	if imagePath, err := h.image(c, "products"); err != nil {
		return err
	} else if imagePath != "" {
		removeUpload(h.UploadDir, prod.ImagePath)
		prod.ImagePath = imagePath
	}

	if err := h.DB.Save(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	h.index(c, prod)

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	removeUpload(h.UploadDir, prod.ImagePath)

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": prod.ID,
	})
	if h.ES != nil {
		if err := es.DeleteProduct(c.Request().Context(), h.ES, prod.ID); err != nil {
			logging.FromContext(c.Request().Context()).Error("product deindex failed", "product_id", prod.ID, "error", err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkOutOfStock is the quick action that zeroes a product's stock.
func (h *ProductHandler) MarkOutOfStock(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	res := h.DB.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("quantity_available", 0)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	h.publish(c, map[string]any{
		"type":      "product_out_of_stock",
		"productID": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
