package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/checkout"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/logging"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/session"
)

type CheckoutHandler struct {
	Svc      *checkout.Service
	Sessions *session.Store
	TTL      time.Duration
}

// Checkout turns the session cart into a committed order. The cart is
// cleared only after the commit; on any failure it stays intact so the
// customer can retry.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	var req checkout.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sid := session.SessionID(c.Request(), c.Response(), h.TTL)
	crt, err := h.Sessions.Load(ctx, sid)
	if err != nil {
		l.Error("session load failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}

	order, err := h.Svc.Checkout(ctx, crt, req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, checkout.ErrOutOfStock):
			return echo.NewHTTPError(http.StatusConflict,
				"some items in your cart are out of stock or have changed, please review your cart")
		default:
			l.Error("checkout failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "checkout failed")
		}
	}

	// Post-commit: the order is durable even if clearing the cart fails.
	if err := h.Sessions.Delete(ctx, sid); err != nil {
		l.Error("cart clear failed", "order_id", order.ID, "error", err)
	}

	l.Info("order placed", "order_id", order.ID, "total_amount", order.TotalAmount)
	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
		"status":       order.Status,
		"pickup_time":  order.PickupTime,
	})
}
