// Package pdf renders fixed-layout order receipts.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/Ant-man74/HeraWebMono/internal/orders"
)

// Renderer produces receipt documents for orders.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Receipt renders the receipt for o and returns the document bytes.
func (r *Renderer) Receipt(o orders.Order) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "Order receipt", "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	field(doc, "Order", o.ID)
	field(doc, "Placed", o.Date.Format("2006-01-02 15:04"))
	field(doc, "Customer", o.User)
	field(doc, "Shipping address", o.Address)
	field(doc, "Payment method", o.PaymentMethod)
	field(doc, "Transportation", o.TransportationMethod)
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(130, 8, "Product", "B", 0, "L", false, 0, "")
	doc.CellFormat(40, 8, "Quantity", "B", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	for _, item := range o.OrderLine {
		doc.CellFormat(130, 8, item.Prod, "", 0, "L", false, 0, "")
		doc.CellFormat(40, 8, strconv.Itoa(item.Quantity), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func field(doc *fpdf.Fpdf, label, value string) {
	doc.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
	doc.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}
