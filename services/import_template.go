package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// templateExamples are the sample rows shipped in the import template so
// users can see the expected package-based pricing.
var templateExamples = []ImportedRow{
	{Name: "Tepung Terigu", PackSize: 250, Unit: "gram", PackCount: 2, PricePerPack: 15000},
	{Name: "Ayam Karkas", PackSize: 1, Unit: "kg", PackCount: 3, PricePerPack: 40000},
	{Name: "Minyak Goreng", PackSize: 1, Unit: "liter", PackCount: 2, PricePerPack: 20000},
	{Name: "Bumbu Marinasi", PackSize: 100, Unit: "gram", PackCount: 1, PricePerPack: 25000},
	{Name: "Kemasan Box", PackSize: 1, Unit: "pcs", PackCount: 50, PricePerPack: 1500},
	{Name: "Gas LPG", PackSize: 3, Unit: "kg", PackCount: 1, PricePerPack: 22000},
}

// GenerateImportTemplate creates the downloadable .xlsx ingredient import
// template: a Template sheet with example rows and a Petunjuk sheet with
// instructions.
func GenerateImportTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Template"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	exampleStyle, _ := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#FEF3C7"}, Pattern: 1},
		Border: thinBorders(),
	})
	blankStyle, _ := f.NewStyle(&excelize.Style{
		Border: thinBorders(),
	})

	headers := []string{"Nama_Barang", "Qty_Bahan", "Satuan", "Qty_Jumlah", "Harga"}
	columns := []string{"A", "B", "C", "D", "E"}
	for i, h := range headers {
		cell := columns[i] + "1"
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "E1", headerStyle)

	for i, ex := range templateExamples {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, ex.Name)
		f.SetCellValue(sheet, "B"+row, ex.PackSize)
		f.SetCellValue(sheet, "C"+row, ex.Unit)
		f.SetCellValue(sheet, "D"+row, ex.PackCount)
		f.SetCellValue(sheet, "E"+row, ex.PricePerPack)
		f.SetCellStyle(sheet, "A"+row, "E"+row, exampleStyle)
	}

	// Pre-bordered blank rows for user input.
	for row := len(templateExamples) + 2; row < 20; row++ {
		ref := fmt.Sprintf("%d", row)
		f.SetCellStyle(sheet, "A"+ref, "E"+ref, blankStyle)
	}

	// Unit dropdown on the Satuan column.
	dv := excelize.NewDataValidation(true)
	dv.Sqref = "C2:C1048576"
	dv.SetDropList(UnitOptions)
	f.AddDataValidation(sheet, dv)

	widths := []float64{20, 12, 10, 12, 12}
	for i, w := range widths {
		f.SetColWidth(sheet, columns[i], columns[i], w)
	}

	addInstructionsSheet(f)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write import template: %w", err)
	}
	return buf.Bytes(), nil
}

// addInstructionsSheet writes the Petunjuk sheet explaining the template
// columns and the line-cost rule.
func addInstructionsSheet(f *excelize.File) {
	sheet := "Petunjuk"
	f.NewSheet(sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})

	lines := []string{
		"PETUNJUK PENGGUNAAN TEMPLATE",
		"",
		"1. Isi data bahan pada sheet 'Template'",
		"2. Kolom yang wajib diisi:",
		"   - Nama_Barang: nama bahan (max 100 karakter)",
		"   - Qty_Bahan: jumlah per kemasan (misal: tepung 250 gram/bungkus)",
		"   - Satuan: satuan bahan (gram, kg, ml, liter, pcs, dll)",
		"   - Qty_Jumlah: jumlah kemasan yang dibeli (misal: beli 2 bungkus)",
		"   - Harga: harga per kemasan (angka > 0)",
		"",
		"RUMUS PERHITUNGAN:",
		"   Subtotal = Qty_Jumlah x Harga",
		"   (Qty_Bahan dan Satuan hanya sebagai referensi)",
		"",
		"3. Hapus contoh data (baris kuning) sebelum mengisi data Anda",
		"4. Simpan file dan upload ke aplikasi",
		"",
		"SATUAN YANG DIDUKUNG:",
	}
	lines = append(lines, strings.Join(UnitOptions, ", "))

	for i, line := range lines {
		cell := fmt.Sprintf("A%d", i+1)
		f.SetCellValue(sheet, cell, line)
	}
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetColWidth(sheet, "A", "A", 70)
}

// GenerateErrorReport creates a downloadable .xlsx file listing validation
// errors from an import attempt.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
