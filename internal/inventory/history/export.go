package history

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"ID", "Date", "Type", "Details", "Performed By", "Amount", "Cost (ETB)"}

// Records flattens ledger entries into export rows in csvHeader order.
func Records(transactions []models.Transaction) [][]string {
	records := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, []string{
			t.ID,
			t.Timestamp.UTC().Format(dateLayout),
			string(t.Type()),
			t.Details,
			t.PerformedBy,
			orZero(t.Amount()).String(),
			orZero(t.Cost()).String(),
		})
	}
	return records
}

func WriteCSV(w io.Writer, transactions []models.Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	if err := writer.WriteAll(Records(transactions)); err != nil {
		return fmt.Errorf("unable to write csv: %w", err)
	}
	return nil
}

func WriteXLSX(w io.Writer, transactions []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FCE7F3"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range csvHeader {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	totalCost := decimal.Zero
	for i, t := range transactions {
		row := i + 2
		amount, _ := orZero(t.Amount()).Float64()
		cost := orZero(t.Cost())
		costValue, _ := cost.Float64()
		totalCost = totalCost.Add(cost)

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), t.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), t.Timestamp.UTC().Format(dateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(t.Type()))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), t.Details)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), t.PerformedBy)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), amount)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), costValue)
	}

	summaryRow := len(transactions) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	total, _ := totalCost.Float64()
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("G%d", summaryRow), total)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), summaryStyle)

	colWidths := []float64{38, 20, 20, 48, 18, 10, 12}
	for i, width := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, width)
	}

	return f.Write(w)
}

var reportTemplate = template.Must(template.New("report").Parse(`<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'>
<head><meta charset='utf-8'><title>Transaction History</title></head>
<body>
<h1>AnuInv - Transaction Report</h1>
<p>Generated on: {{.GeneratedAt}}</p>
<table border="1" style="border-collapse: collapse; width: 100%;">
<thead>
<tr style="background-color: #fce7f3;"><th>Date</th><th>Type</th><th>Details</th><th>User</th><th>Cost</th></tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Date}}</td><td>{{.Type}}</td><td>{{.Details}}</td><td>{{.User}}</td><td>{{.Cost}}</td></tr>
{{- end}}
</tbody>
</table>
<p>Total cost: ETB {{.TotalCost}}</p>
</body>
</html>
`))

type reportRow struct {
	Date    string
	Type    string
	Details string
	User    string
	Cost    string
}

// WriteHTML renders a printable report that word processors open as a document.
func WriteHTML(w io.Writer, transactions []models.Transaction, generatedAt time.Time) error {
	rows := make([]reportRow, 0, len(transactions))
	totalCost := decimal.Zero
	for _, t := range transactions {
		cost := "-"
		if c := t.Cost(); c != nil {
			cost = "ETB " + c.StringFixed(2)
			totalCost = totalCost.Add(*c)
		}
		rows = append(rows, reportRow{
			Date:    t.Timestamp.UTC().Format(dateLayout),
			Type:    string(t.Type()),
			Details: t.Details,
			User:    t.PerformedBy,
			Cost:    cost,
		})
	}

	return reportTemplate.Execute(w, struct {
		GeneratedAt string
		Rows        []reportRow
		TotalCost   string
	}{
		GeneratedAt: generatedAt.UTC().Format(dateLayout),
		Rows:        rows,
		TotalCost:   totalCost.StringFixed(2),
	})
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
