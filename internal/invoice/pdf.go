// Package invoice renders a committed order into a PDF receipt. It is a
// pure function of the order snapshot: nothing here touches the store.
package invoice

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/NAIFEKHAN/FGS-BOPIN/internal/display"
	"github.com/NAIFEKHAN/FGS-BOPIN/internal/models"
)

const (
	shopName    = "Fathima Grocery Shop"
	shopAddress = "Masuthi Street, Veeramangalam\nUlundurpet Taluk, Kallakurichi District\nTamil Nadu - 607202"
	paymentID   = "6383419864"
)

// ProductInfo carries the display fields an invoice line needs from the
// catalog; missing entries mean the product has since been deleted.
type ProductInfo struct {
	Name     string
	UnitType string
}

// Render produces the PDF bill for an order. products maps product id to
// display info for items whose product still exists.
func Render(order *models.Order, products map[uint]ProductInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Shop header.
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(44, 62, 80)
	pdf.Cell(0, 7, shopName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 4, shopAddress, "", "L", false)
	pdf.Ln(6)

	// Order details block.
	details := [][2]string{
		{"Order ID:", fmt.Sprintf("%d", order.ID)},
		{"Date:", order.CreatedAt.Format("2006-01-02 3:04 PM")},
		{"Customer Name:", order.CustomerName},
		{"Phone:", order.CustomerPhone},
		{"PhonePe/GPay:", paymentID},
		{"Pickup Time:", order.PickupTime.Format("2006-01-02 3:04 PM")},
		{"Status:", strings.ToUpper(order.Status)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range details {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(236, 240, 241)
		pdf.CellFormat(50, 9, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(110, 9, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Items table.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(52, 152, 219)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(76, 9, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 9, "Quantity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 9, "Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 9, "Subtotal", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, item := range order.Items {
		info, ok := products[item.ProductID]
		if !ok {
			info = ProductInfo{Name: fmt.Sprintf("Product #%d", item.ProductID), UnitType: "quantity"}
		}
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(248, 249, 250)
		}
		pdf.CellFormat(76, 8, info.Name, "1", 0, "L", true, 0, "")
		pdf.CellFormat(28, 8, display.FormatQuantity(item.Quantity, info.UnitType), "1", 0, "C", true, 0, "")
		pdf.CellFormat(28, 8, fmt.Sprintf("$%.2f", item.Price), "1", 0, "C", true, 0, "")
		pdf.CellFormat(28, 8, fmt.Sprintf("$%.2f", item.Quantity*item.Price), "1", 1, "C", true, 0, "")
	}
	pdf.Ln(4)

	// Total.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(39, 174, 96)
	pdf.CellFormat(160, 10, fmt.Sprintf("TOTAL: $%.2f", order.TotalAmount), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// Payment note.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(44, 62, 80)
	pdf.Cell(0, 6, "Payment Information:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf(
		"If you pay online via PhonePe or GPay, please send your Order ID #%d in the PhonePe or GPay chatbox after completing the payment.",
		order.ID), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, "Thank you for your order! Please arrive at the scheduled pickup time.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
