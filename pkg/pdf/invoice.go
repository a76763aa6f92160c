package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
)

// InvoiceData is everything the rendered invoice shows. Amounts arrive
// pre-formatted so the renderer stays ignorant of currency rules.
type InvoiceData struct {
	InvoiceNumber string
	IssuedOn      time.Time
	CompanyName   string
	CompanyLines  []string
	CustomerName  string
	CustomerPhone string
	BookingNumber string
	PickupAddress string
	DropAddress   string
	Lines         []InvoiceLine
	TotalLabel    string
	TotalAmount   string
	Notes         string
}

type InvoiceLine struct {
	Label  string
	Amount string
}

// Render writes the invoice PDF to w.
func Render(w io.Writer, data *InvoiceData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", data.InvoiceNumber), false)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(120, 10, data.CompanyName)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range data.CompanyLines {
		pdf.CellFormat(0, 4.5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Invoice meta
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(40, 6, "Invoice No:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(60, 6, data.InvoiceNumber, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(25, 6, "Date:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, data.IssuedOn.Format("02 Jan 2006"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(40, 6, "Billed To:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", data.CustomerName, data.CustomerPhone), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(40, 6, "Booking:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, data.BookingNumber, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("From: %s", data.PickupAddress), "", 1, "L", false, 0, "")
	if data.DropAddress != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("To: %s", data.DropAddress), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Line items
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(140, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range data.Lines {
		pdf.CellFormat(140, 7, line.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, line.Amount, "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(140, 8, data.TotalLabel, "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, data.TotalAmount, "1", 1, "R", false, 0, "")

	if data.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, data.Notes, "", "L", false)
	}

	return pdf.Output(w)
}
