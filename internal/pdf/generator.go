package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders a user summary report as a one-page PDF.
func (g *Generator) Generate(report model.UserSummaryReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Waste Deposit Summary", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s (%s)", report.User.Name, report.User.Email), "", 1, "C", false, 0, "")
	if report.Range != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s to %s", report.Range.Start, report.Range.End), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Totals", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total weight: %.2f kg", report.Totals.TotalWeight), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Deposits: %d", report.Totals.Count), "", 1, "L", false, 0, "")
	if report.Totals.LastDepositAt != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Last deposit: %s", *report.Totals.LastDepositAt), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "By category", "", 1, "L", false, 0, "")

	headers := []string{"Category", "Weight, kg", "Deposits", "Last deposit"}
	colWidths := []float64{55, 30, 25, 70}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, entry := range report.Summary {
		lastDeposit := ""
		if entry.LastDepositAt != nil {
			lastDeposit = *entry.LastDepositAt
		}
		row := []string{
			entry.Category,
			fmt.Sprintf("%.2f", entry.TotalWeight),
			fmt.Sprintf("%d", entry.Count),
			lastDeposit,
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == 1 || i == 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
