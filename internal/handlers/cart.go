package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/cart"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/session"
)

type CartHandler struct {
	DB       *gorm.DB
	Sessions *session.Store
	TTL      time.Duration
}

// CartItemView is a cart line joined against the live product: price is
// the add-time snapshot, max_quantity is today's availability.
type CartItemView struct {
	ProductID   uint    `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
	ImagePath   string  `json:"image_path"`
	Subtotal    float64 `json:"subtotal"`
	MaxQuantity float64 `json:"max_quantity"`
	UnitType    string  `json:"unit_type"`
}

func (h *CartHandler) sid(c echo.Context) string {
	return session.SessionID(c.Request(), c.Response(), h.TTL)
}

func (h *CartHandler) load(c echo.Context) (string, cart.Cart, error) {
	sid := h.sid(c)
	crt, err := h.Sessions.Load(c.Request().Context(), sid)
	if err != nil {
		return sid, cart.Cart{}, echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	return sid, crt, nil
}

// GetCart returns the cart joined against live products. Lines whose
// product has been deleted since are silently dropped from the view.
func (h *CartHandler) GetCart(c echo.Context) error {
	_, crt, err := h.load(c)
	if err != nil {
		return err
	}

	items := make([]CartItemView, 0, len(crt.Lines))
	var total float64
	for _, line := range crt.Lines {
		var p models.Product
		if err := h.DB.First(&p, line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		items = append(items, CartItemView{
			ProductID:   p.ID,
			Name:        p.Name,
			Price:       line.Price,
			Quantity:    line.Quantity,
			ImagePath:   p.ImagePath,
			Subtotal:    line.Subtotal(),
			MaxQuantity: p.QuantityAvailable,
			UnitType:    p.UnitType,
		})
		total += line.Subtotal()
	}

	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		ProductID uint    `json:"product_id"`
		Quantity  float64 `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var p models.Product
	if err := h.DB.First(&p, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	sid, crt, err := h.load(c)
	if err != nil {
		return err
	}

	crt, err = crt.Add(p.ID, req.Quantity, cart.Snapshot{
		Price:     p.Price,
		Name:      p.Name,
		ImagePath: p.ImagePath,
		UnitType:  p.UnitType,
		Available: p.QuantityAvailable,
	})
	if err != nil {
		if errors.Is(err, cart.ErrInsufficientStock) {
			return echo.NewHTTPError(http.StatusConflict, "insufficient stock")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.Sessions.Save(c.Request().Context(), sid, crt); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "cart_count": crt.Count()})
}

func productIDParam(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return uint(id), nil
}

// UpdateCart sets the path product's quantity outright; zero removes the
// line.
func (h *CartHandler) UpdateCart(c echo.Context) error {
	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var p models.Product
	if err := h.DB.First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	sid, crt, err := h.load(c)
	if err != nil {
		return err
	}

	crt, err = crt.Update(p.ID, req.Quantity, p.QuantityAvailable)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid quantity")
		case errors.Is(err, cart.ErrInsufficientStock):
			return echo.NewHTTPError(http.StatusConflict, "insufficient stock")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.Sessions.Save(c.Request().Context(), sid, crt); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// RemoveFromCart drops the path product's line; removing an absent
// product succeeds too.
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	sid, crt, err := h.load(c)
	if err != nil {
		return err
	}

	crt = crt.Remove(productID)
	if err := h.Sessions.Save(c.Request().Context(), sid, crt); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *CartHandler) CartCount(c echo.Context) error {
	_, crt, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": crt.Count()})
}
