package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

var (
	invoiceDark  = color.Color{Red: 38, Green: 38, Blue: 34}
	invoiceMuted = color.Color{Red: 121, Green: 119, Blue: 109}
)

// InvoiceFilename is the download name for an order's invoice.
func InvoiceFilename(order *models.Order) string {
	return fmt.Sprintf("invoice-%s.pdf", order.OrderNumber)
}

// GenerateInvoicePDF renders an A4 invoice for an order and its items.
func GenerateInvoicePDF(order *models.Order) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	line := func(height float64, text string, size float64, style consts.Style, c color.Color) {
		m.Row(height, func() {
			m.Col(12, func() {
				m.Text(text, props.Text{Size: size, Style: style, Color: c})
			})
		})
	}
	pair := func(left, right string, size float64, style consts.Style, leftColor, rightColor color.Color) {
		m.Row(5, func() {
			m.Col(6, func() {
				m.Text(left, props.Text{Size: size, Style: style, Color: leftColor})
			})
			m.Col(6, func() {
				m.Text(right, props.Text{Size: size, Style: style, Color: rightColor, Align: consts.Right})
			})
		})
	}

	line(15, "INVOICE", 24, consts.Bold, invoiceDark)
	line(10, "MODEVA STORE", 16, consts.Bold, invoiceDark)
	line(5, "contact@modeva.com", 9, consts.Normal, invoiceMuted)
	m.Row(8, func() {})

	addr := order.ShippingAddress
	pair("BILL TO", "INVOICE DETAILS", 8, consts.Bold, invoiceDark, invoiceDark)
	pair(order.CustomerName, "Invoice #"+order.OrderNumber, 10, consts.Normal, invoiceDark, invoiceDark)
	pair(order.CustomerEmail, "Date: "+order.CreatedAt.Format("Jan 02, 2006"), 9, consts.Normal, invoiceMuted, invoiceMuted)
	pair(addr.Street, "Status: "+strings.ToUpper(order.Status), 9, consts.Normal, invoiceMuted, invoiceMuted)
	pair(strings.TrimSpace(addr.City+" "+addr.PostalCode), "", 9, consts.Normal, invoiceMuted, invoiceMuted)
	pair(addr.Country, "", 9, consts.Normal, invoiceMuted, invoiceMuted)
	m.Row(8, func() {})

	itemRow := func(desc, qty, price, total string, style consts.Style, size float64) {
		m.Row(6, func() {
			m.Col(6, func() {
				m.Text(desc, props.Text{Size: size, Style: style, Color: invoiceDark})
			})
			for _, v := range []string{qty, price, total} {
				m.Col(2, func() {
					m.Text(v, props.Text{Size: size, Style: style, Color: invoiceDark, Align: consts.Right})
				})
			}
		})
	}

	itemRow("Description", "Qty", "Price", "Total", consts.Bold, 8)
	for _, item := range order.Items {
		itemRow(item.ProductName, fmt.Sprintf("%d", item.Quantity), money(item.Price), money(item.Subtotal), consts.Normal, 9)
	}
	m.Row(8, func() {})

	summary := func(label string, amount decimal.Decimal, style consts.Style) {
		m.Row(5, func() {
			m.Col(8, func() {})
			m.Col(2, func() {
				m.Text(label, props.Text{Size: 9, Style: style, Color: invoiceMuted, Align: consts.Right})
			})
			m.Col(2, func() {
				m.Text(money(amount), props.Text{Size: 9, Style: style, Color: invoiceDark, Align: consts.Right})
			})
		})
	}
	summary("Subtotal", order.Subtotal, consts.Normal)
	summary("Shipping", order.ShippingCost, consts.Normal)
	summary("Tax", order.Tax, consts.Normal)
	summary("Total", order.TotalAmount, consts.Bold)

	m.Row(15, func() {})
	line(5, "Thank you for shopping with Modeva.", 8, consts.Italic, invoiceMuted)

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", order.OrderNumber, err)
	}
	return &buf, nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
