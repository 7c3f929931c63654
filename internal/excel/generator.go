package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a user summary report as a workbook with a summary sheet
// and one row per category.
func (g *Generator) Generate(report model.UserSummaryReport) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Summary"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "User")
	set("B1", report.User.Name)
	set("A2", "Email")
	set("B2", report.User.Email)
	if report.Range != nil {
		set("A3", "Period start")
		set("B3", report.Range.Start)
		set("A4", "Period end")
		set("B4", report.Range.End)
	}
	set("A5", "Total weight, kg")
	set("B5", report.Totals.TotalWeight)
	set("A6", "Deposits")
	set("B6", report.Totals.Count)
	if report.Totals.LastDepositAt != nil {
		set("A7", "Last deposit")
		set("B7", *report.Totals.LastDepositAt)
	}

	tableRow := 9
	headers := []string{"Category", "Weight, kg", "Deposits", "Last deposit"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, entry := range report.Summary {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), entry.Category)
		set(fmt.Sprintf("B%d", row), entry.TotalWeight)
		set(fmt.Sprintf("C%d", row), entry.Count)
		if entry.LastDepositAt != nil {
			set(fmt.Sprintf("D%d", row), *entry.LastDepositAt)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "C", 14)
	_ = file.SetColWidth(sheet, "D", "D", 26)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
