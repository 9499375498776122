package seller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/display"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

type OrderHandler struct {
	DB *gorm.DB
}

// OrderItemView decorates a line with the product name and the
// human-readable quantity ("750g", "2 dozen") the fulfilment screen
// shows.
type OrderItemView struct {
	models.OrderItem
	ProductName       string `json:"product_name"`
	FormattedQuantity string `json:"formatted_quantity"`
}

type OrderView struct {
	models.Order
	Items []OrderItemView `json:"items"`
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	var orders []models.Order
	if err := h.DB.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.orderViews(orders)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

func (h *OrderHandler) orderViews(orders []models.Order) ([]OrderView, error) {
	ids := make([]uint, 0)
	for _, o := range orders {
		for _, it := range o.Items {
			ids = append(ids, it.ProductID)
		}
	}

	products := make(map[uint]models.Product)
	if len(ids) > 0 {
		var rows []models.Product
		if err := h.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, p := range rows {
			products[p.ID] = p
		}
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderItemView, 0, len(o.Items))
		for _, it := range o.Items {
			name := "[deleted product]"
			unit := "quantity"
			if p, ok := products[it.ProductID]; ok {
				name = p.Name
				unit = p.UnitType
			}
			items = append(items, OrderItemView{
				OrderItem:         it,
				ProductName:       name,
				FormattedQuantity: display.FormatQuantity(it.Quantity, unit),
			})
		}
		views = append(views, OrderView{Order: o, Items: items})
	}
	return views, nil
}

// UpdateStatus moves an order along pending -> ready -> completed. Any
// label outside the known set is rejected outright.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if !models.ValidStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	res := h.DB.Model(&models.Order{}).Where("id = ?", id).
		Update("status", req.Status)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

// DeleteOrder removes an order and its items together.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// Dashboard returns the landing-page stats: catalog size, order volume,
// pending workload, revenue and the latest orders.
func (h *OrderHandler) Dashboard(c echo.Context) error {
	var (
		totalProducts int64
		totalOrders   int64
		pendingOrders int64
		revenue       float64
	)

	if err := h.DB.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Order{}).Where("status = ?", models.StatusPending).
		Count(&pendingOrders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&revenue).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var recent []models.Order
	if err := h.DB.Order("created_at DESC").Limit(5).Find(&recent).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_products": totalProducts,
		"total_orders":   totalOrders,
		"pending_orders": pendingOrders,
		"total_revenue":  revenue,
		"recent_orders":  recent,
	})
}
