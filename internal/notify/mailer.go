// Package notify emails the seller about new orders. Delivery is
// best-effort: a missing configuration disables the mailer silently and
// send failures are logged by the caller, never surfaced to the customer.
package notify

import (
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/config"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/display"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	sellerEmail string
}

func NewMailer(cfg *config.Config) *Mailer {
	if cfg.MailHost == "" || cfg.MailUser == "" || cfg.MailPass == "" || cfg.SellerEmail == "" {
		return &Mailer{}
	}
	return &Mailer{
		dialer:      gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass),
		from:        cfg.MailUser,
		sellerEmail: cfg.SellerEmail,
	}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.dialer != nil
}

// OrderPlaced sends the seller a plain-text summary of a freshly
// committed order. products maps product id to the record for items
// whose product still exists.
func (m *Mailer) OrderPlaced(order *models.Order, products map[uint]models.Product) error {
	if !m.Enabled() {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.sellerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("New BOPIS Order #%d", order.ID))
	msg.SetBody("text/plain", orderBody(order, products))

	return m.dialer.DialAndSend(msg)
}

func orderBody(order *models.Order, products map[uint]models.Product) string {
	email := order.CustomerEmail
	if email == "" {
		email = "N/A"
	}

	lines := []string{
		fmt.Sprintf("New order placed (ID: %d)", order.ID),
		"",
		fmt.Sprintf("Customer: %s", order.CustomerName),
		fmt.Sprintf("Email: %s", email),
		fmt.Sprintf("Phone: %s", order.CustomerPhone),
		fmt.Sprintf("Pickup time: %s", order.PickupTime.Format("2006-01-02 3:04 PM")),
		"",
		"Items:",
	}
	for _, item := range order.Items {
		name := fmt.Sprintf("Product #%d", item.ProductID)
		unit := "quantity"
		if p, ok := products[item.ProductID]; ok {
			name = p.Name
			unit = p.UnitType
		}
		lines = append(lines, fmt.Sprintf("- %s x %s @ $%.2f",
			name, display.FormatQuantity(item.Quantity, unit), item.Price))
	}
	lines = append(lines, "", fmt.Sprintf("Total amount: $%.2f", order.TotalAmount))

	return strings.Join(lines, "\n")
}
