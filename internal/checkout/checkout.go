// Package checkout converts a session cart into a committed order.
//
// This is the one place in the shop that needs real transactional
// discipline: the cart's earlier stock checks are advisory, so every
// line is re-validated here and the stock decrement is a guarded
// conditional update inside the same transaction that inserts the order.
// Either the order, its items and every decrement commit together, or
// none of them do.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/cart"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/events"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/logging"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/notify"
)

var (
	ErrValidation     = errors.New("validation")      // 400
	ErrOutOfStock     = errors.New("out of stock")    // 409
	ErrCheckoutFailed = errors.New("checkout failed") // 500, cart kept
)

// PickupLayout matches the slot labels ("7:00 AM") combined with an ISO
// date.
const PickupLayout = "2006-01-02 3:04 PM"

type Request struct {
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	CustomerPhone  string `json:"customer_phone"`
	PickupDate     string `json:"pickup_date"`
	PickupTimeSlot string `json:"pickup_time_slot"`
}

type Service struct {
	DB       *gorm.DB
	Mailer   *notify.Mailer
	Producer *events.Producer
}

// ParsePickupTime combines the pickup date and a slot label into a
// timestamp.
func ParsePickupTime(date, slot string) (time.Time, error) {
	ts, err := time.Parse(PickupLayout, date+" "+slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid pickup time", ErrValidation)
	}
	return ts, nil
}

// Checkout runs the full Draft -> Validated -> Committed path for one
// cart. On any validation or stock failure nothing is written; the
// caller keeps the cart so the customer can retry.
func (s *Service) Checkout(ctx context.Context, crt cart.Cart, req Request) (*models.Order, error) {
	if crt.IsEmpty() {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	if req.CustomerName == "" || req.CustomerPhone == "" || req.PickupDate == "" || req.PickupTimeSlot == "" {
		return nil, fmt.Errorf("%w: please fill all required fields", ErrValidation)
	}
	// The cart ops enforce this already; re-checked here so a corrupted
	// session can never turn the decrement into an increment.
	for _, line := range crt.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: invalid quantity for %q", ErrValidation, line.Name)
		}
	}

	pickupTime, err := ParsePickupTime(req.PickupDate, req.PickupTimeSlot)
	if err != nil {
		return nil, err
	}

	var (
		order    models.Order
		products map[uint]models.Product
	)

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Authoritative re-check: the cart's view of stock may be stale
		// by the time the customer submits.
		products = make(map[uint]models.Product, len(crt.Lines))
		var total float64
		for _, line := range crt.Lines {
			var p models.Product
			if err := tx.First(&p, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %q is no longer sold", ErrOutOfStock, line.Name)
				}
				return err
			}
			if p.QuantityAvailable <= 0 || line.Quantity > p.QuantityAvailable {
				return fmt.Errorf("%w: not enough %q in stock", ErrOutOfStock, p.Name)
			}
			products[p.ID] = p
			total += line.Subtotal()
		}

		order = models.Order{
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			PickupTime:    pickupTime,
			TotalAmount:   total,
			Status:        models.StatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range crt.Lines {
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price, // unit price frozen at add time
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, item)

			// Guarded decrement: refuses to go below zero no matter how
			// requests interleave. Zero rows affected means somebody beat
			// us to the stock since the read above.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND quantity_available >= ?", line.ProductID, line.Quantity).
				UpdateColumn("quantity_available", gorm.Expr("quantity_available - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				name := line.Name
				if p, ok := products[line.ProductID]; ok {
					name = p.Name
				}
				return fmt.Errorf("%w: not enough %q in stock", ErrOutOfStock, name)
			}
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrOutOfStock) || errors.Is(txErr, ErrValidation) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, txErr)
	}

	s.notifyCommitted(ctx, &order, products)

	return &order, nil
}

// notifyCommitted runs the post-commit side effects. The order is
// already durable, so failures here are logged and swallowed.
func (s *Service) notifyCommitted(ctx context.Context, order *models.Order, products map[uint]models.Product) {
	l := logging.FromContext(ctx)

	if err := s.Mailer.OrderPlaced(order, products); err != nil {
		l.Error("order email failed", "order_id", order.ID, "error", err)
	}

	event := map[string]interface{}{
		"type":         "order_created",
		"orderID":      order.ID,
		"total_amount": order.TotalAmount,
		"pickup_time":  order.PickupTime,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(order.ID), event); err != nil {
		l.Error("order event publish failed", "order_id", order.ID, "error", err)
	}
}
