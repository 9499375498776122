package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/invoice"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

// OrderHandler serves the customer-facing order confirmation and the PDF
// bill download.
type OrderHandler struct {
	DB *gorm.DB
}

func (h *OrderHandler) loadOrder(c echo.Context) (*models.Order, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return &order, nil
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.loadOrder(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// DownloadInvoice streams the order's PDF bill as an attachment.
func (h *OrderHandler) DownloadInvoice(c echo.Context) error {
	order, err := h.loadOrder(c)
	if err != nil {
		return err
	}

	products, err := productInfos(h.DB, order.Items)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	data, err := invoice.Render(order, products)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="bill_order_%d.pdf"`, order.ID))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// productInfos resolves display info for the items' products. Items
// whose product was deleted are simply absent from the map.
func productInfos(db *gorm.DB, items []models.OrderItem) (map[uint]invoice.ProductInfo, error) {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	infos := make(map[uint]invoice.ProductInfo, len(products))
	for _, p := range products {
		infos[p.ID] = invoice.ProductInfo{Name: p.Name, UnitType: p.UnitType}
	}
	return infos, nil
}
