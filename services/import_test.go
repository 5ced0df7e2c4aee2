package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Nama_Barang,Qty_Bahan,Satuan,Qty_Jumlah,Harga
Tepung Terigu,250,gram,2,15000
Ayam Karkas,1,kg,3,40000
`

func TestParseIngredientFile_CSV(t *testing.T) {
	result, err := ParseIngredientFile(strings.NewReader(sampleCSV), "bahan.csv")
	if err != nil {
		t.Fatalf("ParseIngredientFile() error = %v", err)
	}

	if result.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", result.TotalRows)
	}
	if result.ValidRows != 2 || result.ErrorRows != 0 {
		t.Errorf("ValidRows/ErrorRows = %d/%d, want 2/0", result.ValidRows, result.ErrorRows)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}

	first := result.Rows[0]
	if first.Name != "Tepung Terigu" || first.PackSize != 250 || first.Unit != "gram" ||
		first.PackCount != 2 || first.PricePerPack != 15000 {
		t.Errorf("unexpected first row: %+v", first)
	}

	// Line cost rule: pack count x price per pack.
	ing := first.Ingredient()
	if got := LineCost(ing.Quantity, ing.PricePerUnit); got != 30000 {
		t.Errorf("imported line cost = %v, want 30000", got)
	}
}

func TestParseIngredientFile_HeaderSynonyms(t *testing.T) {
	csv := "name,quantity,unit,jumlah,price\nGula,500,gram,1,12000\n"
	result, err := ParseIngredientFile(strings.NewReader(csv), "bahan.csv")
	if err != nil {
		t.Fatalf("ParseIngredientFile() error = %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if result.Rows[0].Name != "Gula" || result.Rows[0].PricePerPack != 12000 {
		t.Errorf("unexpected row: %+v", result.Rows[0])
	}
}

func TestParseIngredientFile_CollectsRowErrors(t *testing.T) {
	csv := `Nama_Barang,Qty_Bahan,Satuan,Qty_Jumlah,Harga
Tepung,0,gram,2,15000
Ayam,1,,3,40000
Gula,500,gram,1,12000
`
	result, err := ParseIngredientFile(strings.NewReader(csv), "bahan.csv")
	if err != nil {
		t.Fatalf("ParseIngredientFile() error = %v", err)
	}

	if result.ErrorRows != 2 {
		t.Errorf("ErrorRows = %d, want 2", result.ErrorRows)
	}
	if result.ValidRows != 1 {
		t.Errorf("ValidRows = %d, want 1", result.ValidRows)
	}
	if len(result.Rows) != 1 || result.Rows[0].Name != "Gula" {
		t.Errorf("surviving rows = %+v, want only Gula", result.Rows)
	}

	// Row numbers account for the header row.
	for _, e := range result.Errors {
		if e.Row != 2 && e.Row != 3 {
			t.Errorf("unexpected error row %d: %+v", e.Row, e)
		}
	}
}

func TestParseIngredientFile_SkipsBlankNames(t *testing.T) {
	csv := `Nama_Barang,Qty_Bahan,Satuan,Qty_Jumlah,Harga
,250,gram,2,15000
Ayam,1,kg,3,40000
`
	result, err := ParseIngredientFile(strings.NewReader(csv), "bahan.csv")
	if err != nil {
		t.Fatalf("ParseIngredientFile() error = %v", err)
	}
	if result.TotalRows != 1 || result.ValidRows != 1 {
		t.Errorf("TotalRows/ValidRows = %d/%d, want 1/1", result.TotalRows, result.ValidRows)
	}
}

func TestParseIngredientFile_MissingColumn(t *testing.T) {
	csv := "Nama_Barang,Satuan\nAyam,kg\n"
	_, err := ParseIngredientFile(strings.NewReader(csv), "bahan.csv")
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "missing required column") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseIngredientFile_UnsupportedExtension(t *testing.T) {
	_, err := ParseIngredientFile(strings.NewReader("x"), "bahan.txt")
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestParseIngredientFile_HeaderOnly(t *testing.T) {
	csv := "Nama_Barang,Qty_Bahan,Satuan,Qty_Jumlah,Harga\n"
	_, err := ParseIngredientFile(strings.NewReader(csv), "bahan.csv")
	if err == nil {
		t.Fatal("expected error for file without data rows")
	}
}

func TestGenerateImportTemplate_RoundTrips(t *testing.T) {
	tmpl, err := GenerateImportTemplate()
	if err != nil {
		t.Fatalf("GenerateImportTemplate() error = %v", err)
	}
	if len(tmpl) == 0 {
		t.Fatal("GenerateImportTemplate() returned empty bytes")
	}

	// The template's example rows must parse cleanly back through the
	// importer.
	result, err := ParseIngredientFile(bytes.NewReader(tmpl), "template.xlsx")
	if err != nil {
		t.Fatalf("template does not round-trip: %v", err)
	}
	if result.ValidRows != len(templateExamples) {
		t.Errorf("ValidRows = %d, want %d", result.ValidRows, len(templateExamples))
	}
	if len(result.Errors) != 0 {
		t.Errorf("template rows produced errors: %v", result.Errors)
	}
}

func TestGenerateErrorReport(t *testing.T) {
	report, err := GenerateErrorReport([]ValidationError{
		{Row: 2, Field: "quantity", Message: "quantity must be greater than 0"},
	})
	if err != nil {
		t.Fatalf("GenerateErrorReport() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(report))
	if err != nil {
		t.Fatalf("report is not valid Excel: %v", err)
	}
	defer f.Close()

	if name := f.GetSheetName(0); name != "Errors" {
		t.Errorf("sheet name = %q, want Errors", name)
	}
	field, _ := f.GetCellValue("Errors", "B2")
	if field != "quantity" {
		t.Errorf("B2 = %q, want quantity", field)
	}
}
