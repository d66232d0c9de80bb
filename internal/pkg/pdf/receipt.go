// Package pdf renders fee receipts. Renderers are pure: invoice data in,
// document bytes out, no network and no persistence.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Invoice is the flat record a receipt is rendered from. Both hostel and
// course-fee receipts share the shape; only the title and breakdown differ.
type Invoice struct {
	Title        string
	University   string
	PaymentID    string
	OrderID      string
	AcademicYear string
	PaidAt       string

	StudentName string
	RollNumber  string
	CourseName  string

	Lines []InvoiceLine
	Total float64
}

// InvoiceLine is one row of the fee table.
type InvoiceLine struct {
	Label  string
	Amount float64
}

// ReceiptFileName builds the deterministic download name:
// <kind>-receipt-<academicYear>-<last 8 chars of paymentID>.pdf
func ReceiptFileName(kind, academicYear, paymentID string) string {
	suffix := paymentID
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return fmt.Sprintf("%s-receipt-%s-%s.pdf", kind, academicYear, suffix)
}

// HostelReceipt renders a hostel fee receipt.
func HostelReceipt(inv Invoice) ([]byte, error) {
	if inv.Title == "" {
		inv.Title = "Hostel Fee Receipt"
	}
	return render(inv)
}

// CourseFeeReceipt renders a course fee receipt.
func CourseFeeReceipt(inv Invoice) ([]byte, error) {
	if inv.Title == "" {
		inv.Title = "Course Fee Receipt"
	}
	return render(inv)
}

// render lays out the fixed A4 receipt: header, student block, fee table,
// total, footer.
func render(inv Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(inv.Title, false)
	doc.AddPage()

	// Header
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, inv.University, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 13)
	doc.CellFormat(0, 8, inv.Title, "", 1, "C", false, 0, "")
	doc.Ln(4)
	doc.SetDrawColor(120, 120, 120)
	x, y := doc.GetXY()
	doc.Line(x, y, 200, y)
	doc.Ln(6)

	// Student and payment block
	doc.SetFont("Helvetica", "", 11)
	row := func(label, value string) {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}
	row("Student", inv.StudentName)
	row("Roll Number", inv.RollNumber)
	if inv.CourseName != "" {
		row("Course", inv.CourseName)
	}
	row("Academic Year", inv.AcademicYear)
	row("Payment ID", inv.PaymentID)
	if inv.OrderID != "" {
		row("Order ID", inv.OrderID)
	}
	if inv.PaidAt != "" {
		row("Paid On", inv.PaidAt)
	}
	doc.Ln(6)

	// Fee table
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(235, 235, 235)
	doc.CellFormat(130, 8, "Particulars", "1", 0, "L", true, 0, "")
	doc.CellFormat(60, 8, "Amount (INR)", "1", 1, "R", true, 0, "")
	doc.SetFont("Helvetica", "", 11)
	for _, line := range inv.Lines {
		doc.CellFormat(130, 8, line.Label, "1", 0, "L", false, 0, "")
		doc.CellFormat(60, 8, fmt.Sprintf("%.2f", line.Amount), "1", 1, "R", false, 0, "")
	}
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(130, 8, "Total", "1", 0, "L", false, 0, "")
	doc.CellFormat(60, 8, fmt.Sprintf("%.2f", inv.Total), "1", 1, "R", false, 0, "")
	doc.Ln(10)

	// Footer
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(100, 100, 100)
	doc.CellFormat(0, 6, "This is a computer-generated receipt and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
