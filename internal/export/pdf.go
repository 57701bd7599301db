package export

import (
	"bytes"
	"fmt"
	"time"

	"cargoflow/internal/model"

	"github.com/jung-kurt/gofpdf"
)

// InvoicePDF renders an issued invoice as a printable A4 PDF. The amounts
// printed are the frozen snapshot values from the invoice record.
func InvoicePDF(invoice model.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 8, "CARGOFLOW LOGISTICS")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 24)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(14)

	// Invoice details
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(70, 6, fmt.Sprintf("Invoice Number: %s", invoice.InvoiceNo))
	pdf.Cell(60, 6, fmt.Sprintf("Date: %s", invoice.CreatedAt.Format("January 2, 2006")))
	pdf.Ln(6)
	containerNumber := ""
	if invoice.Container != nil {
		containerNumber = invoice.Container.ContainerNumber
	}
	pdf.Cell(70, 6, fmt.Sprintf("Container: %s", containerNumber))
	pdf.Cell(60, 6, fmt.Sprintf("Currency: %s", invoice.Currency))
	pdf.Ln(6)
	pdf.Cell(70, 6, fmt.Sprintf("Cargo Leg: %s", invoice.CargoLeg))
	pdf.Cell(60, 6, fmt.Sprintf("Shipping Mark: %s", invoice.ShippingMark))
	pdf.Ln(12)

	// Bill To
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Bill To:")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	if invoice.Client != nil {
		pdf.Cell(0, 5, invoice.Client.Name)
		pdf.Ln(5)
		if invoice.Client.Phone != "" {
			pdf.Cell(0, 5, invoice.Client.Phone)
			pdf.Ln(5)
		}
	} else {
		pdf.Cell(0, 5, fmt.Sprintf("Shipping mark %s (unregistered)", invoice.ShippingMark))
		pdf.Ln(5)
	}
	pdf.Ln(8)

	measurementHeader := "CBM"
	if invoice.CargoLeg == model.CargoLegAir {
		measurementHeader = "Weight (kg)"
	}

	// Table headers
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.Cell(40, 8, "Tracking ID")
	pdf.Cell(70, 8, "Description")
	pdf.Cell(20, 8, "Qty")
	pdf.Cell(30, 8, measurementHeader)
	pdf.Cell(30, 8, "Amount")
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(3)

	// Line items
	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		pdf.Cell(40, 6, item.SupplyTrackingID)
		pdf.Cell(70, 6, item.Description)
		pdf.Cell(20, 6, fmt.Sprintf("%d", item.Quantity))
		pdf.Cell(30, 6, item.Measurement.StringFixed(4))
		pdf.Cell(30, 6, fmt.Sprintf("%s %s", invoice.Currency, item.Amount.StringFixed(2)))
		pdf.Ln(6)
	}

	// Totals
	pdf.Ln(10)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(110, pdf.GetY(), 90, 26, "D")

	pdf.SetFont("Arial", "", 10)
	pdf.SetX(115)
	pdf.Cell(40, 10, "Total Quantity:")
	pdf.Cell(40, 10, fmt.Sprintf("%d", invoice.TotalQuantity))
	pdf.Ln(8)
	pdf.SetX(115)
	pdf.Cell(40, 10, fmt.Sprintf("Total %s:", measurementHeader))
	pdf.Cell(40, 10, invoice.TotalMeasurement.StringFixed(4))
	pdf.Ln(8)
	pdf.SetX(115)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 10, "Total Amount:")
	pdf.Cell(40, 10, fmt.Sprintf("%s %s", invoice.Currency, invoice.TotalAmount.StringFixed(2)))
	pdf.Ln(16)

	// Footer
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated %s", time.Now().Format(time.RFC1123)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// InvoiceFileName builds the download name for an invoice PDF.
func InvoiceFileName(invoice model.Invoice) string {
	return fmt.Sprintf("%s.pdf", invoice.InvoiceNo)
}
