package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcelReport creates the HPP report workbook: a Ringkasan
// (summary) sheet, a Bahan sheet with the per-ingredient breakdown, and an
// Analisis_Biaya sheet sorted by cost contribution.
func GenerateExcelReport(data ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, data); err != nil {
		return nil, err
	}
	writeIngredientSheet(f, "Bahan", data.Result.Ingredients)
	writeIngredientSheet(f, "Analisis_Biaya", data.sortedByContribution())

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, data ReportData) error {
	sheet := "Ringkasan"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	dateStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 10},
	})
	sectionStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	valueStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})

	if err := f.MergeCell(sheet, "A1", "D1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell("Laporan HPP - "+data.ProductName))
	f.SetCellStyle(sheet, "A1", "D1", titleStyle)

	f.SetCellValue(sheet, "A2", "Tanggal: "+data.CreatedDate)
	f.SetCellStyle(sheet, "A2", "A2", dateStyle)

	r := data.Result
	rows := []struct {
		label   string
		value   string
		section bool
	}{
		{label: "RINGKASAN PERHITUNGAN", section: true},
		{label: "Total Biaya per Batch", value: FormatRupiah(r.TotalBatchCost)},
		{label: "  - Biaya Bahan Baku", value: FormatRupiah(r.MaterialCost)},
		{label: "  - Biaya Operasional", value: FormatRupiah(r.OperationalCost)},
		{label: "  - Biaya Lain-lain", value: FormatRupiah(r.OtherCost)},
		{label: "Jumlah Output (porsi/unit)", value: fmt.Sprintf("%d", r.OutputUnits)},
		{label: "Target Margin", value: FormatPercent(r.TargetMarginPercent, 1, false)},
		{},
		{label: "HASIL PERHITUNGAN", section: true},
		{label: "HPP per Porsi/Unit", value: FormatRupiah(r.HPPPerUnit)},
		{label: "Harga Jual Disarankan", value: FormatRupiah(r.SuggestedSellingPrice)},
		{},
		{label: "ANALISIS MARGIN", section: true},
		{label: "Harga Jual Aktual", value: FormatRupiah(r.ActualSellingPrice)},
		{label: "Margin Aktual", value: FormatPercent(r.ActualMarginPercent, 1, false)},
		{label: "Gap vs Target", value: FormatGap(r.GapVsTarget)},
		{label: "Status Margin", value: string(r.Status)},
	}

	for i, row := range rows {
		ref := fmt.Sprintf("%d", i+4)
		f.SetCellValue(sheet, "A"+ref, row.label)
		f.SetCellValue(sheet, "B"+ref, row.value)
		if row.section {
			f.SetCellStyle(sheet, "A"+ref, "A"+ref, sectionStyle)
		}
		f.SetCellStyle(sheet, "B"+ref, "B"+ref, valueStyle)
	}

	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 25)
	return nil
}

// writeIngredientSheet renders one ingredient table sheet with the shared
// header row and column layout.
func writeIngredientSheet(f *excelize.File, sheet string, ingredients []IngredientCost) {
	f.NewSheet(sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F3F4F6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Border: thinBorders(),
	})

	headers := []string{"Nama_Barang", "Qty_Total", "Satuan", "Harga_per_Unit", "Subtotal", "Kontribusi_%"}
	columns := []string{"A", "B", "C", "D", "E", "F"}
	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+"1", h)
	}
	f.SetCellStyle(sheet, "A1", "F1", headerStyle)

	for i, ing := range ingredients {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, sanitizeExcelCell(ing.Name))
		f.SetCellValue(sheet, "B"+row, ing.Quantity)
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(ing.Unit))
		f.SetCellValue(sheet, "D"+row, ing.PricePerUnit)
		f.SetCellValue(sheet, "E"+row, ing.LineCost)
		f.SetCellValue(sheet, "F"+row, ing.ContributionPercent)
		f.SetCellStyle(sheet, "A"+row, "F"+row, cellStyle)
	}

	widths := []float64{20, 12, 10, 15, 15, 12}
	for i, w := range widths {
		f.SetColWidth(sheet, columns[i], columns[i], w)
	}
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous
// leading characters with a single quote. Excel interprets cells starting
// with =, +, -, @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns excelize borders for thin lines on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
