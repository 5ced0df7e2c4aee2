package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ImportedRow is one parsed line from an uploaded ingredient file. The
// import template prices by package: PackCount packages at PricePerPack
// each, with PackSize and Unit describing the package contents for
// reference ("250 gram per bungkus").
type ImportedRow struct {
	Name         string  `json:"name"`
	PackSize     float64 `json:"pack_size"`
	Unit         string  `json:"unit"`
	PackCount    float64 `json:"pack_count"`
	PricePerPack float64 `json:"price_per_pack"`
}

// Ingredient converts the row for calculation. The line cost rule is
// pack count times price per package, so those become quantity and price.
func (r ImportedRow) Ingredient() Ingredient {
	return Ingredient{
		Name:         r.Name,
		Quantity:     r.PackCount,
		Unit:         r.Unit,
		PricePerUnit: r.PricePerPack,
	}
}

// ImportResult is returned after parsing and validating an uploaded file.
type ImportResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Rows      []ImportedRow     `json:"rows"`
	Errors    []ValidationError `json:"errors,omitempty"`
	FileName  string            `json:"-"`
}

// importColumns maps canonical field keys to the header spellings seen in
// the wild. The first entry of each list is what the generated template
// uses.
var importColumns = map[string][]string{
	"name":       {"nama_barang", "ingredient", "bahan", "nama", "nama_bahan", "name"},
	"pack_size":  {"qty_bahan", "qty_per_batch", "quantity", "qty", "kuantitas"},
	"unit":       {"satuan", "unit", "uom"},
	"pack_count": {"qty_jumlah", "jumlah", "jml", "amount", "qty_amount"},
	"price":      {"harga", "price", "price_per_unit", "harga_per_unit", "harga_satuan"},
}

// ParseIngredientFile parses an uploaded .csv or .xlsx ingredient file,
// validates every data row, and returns the surviving rows together with
// all errors found. Rows with errors are dropped; blank-named rows are
// skipped silently.
func ParseIngredientFile(file io.Reader, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"), strings.HasSuffix(lowerName, ".xls"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, missing := mapImportHeaders(headers)
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}

	result := &ImportResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed plus header row

		cells := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			cells[key] = value
		}

		name := cells["name"]
		if name == "" {
			result.TotalRows--
			continue
		}

		var rowErrors []ValidationError
		if utf8.RuneCountInString(name) > MaxIngredientNameLength {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "name",
				Message: fmt.Sprintf("ingredient name is too long (max %d characters)", MaxIngredientNameLength),
			})
		}

		packSize := ParseRupiah(cells["pack_size"])
		if packSize <= 0 {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "pack_size",
				Message: "qty per pack must be a number greater than 0",
			})
		}

		unit := cells["unit"]
		if unit == "" {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "unit",
				Message: "unit is required",
			})
		}

		packCount := ParseRupiah(cells["pack_count"])
		if packCount <= 0 {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "pack_count",
				Message: "pack count must be a number greater than 0",
			})
		}

		price := ParseRupiah(cells["price"])
		if price <= 0 {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "price",
				Message: "price must be a number greater than 0",
			})
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}

		result.Rows = append(result.Rows, ImportedRow{
			Name:         name,
			PackSize:     packSize,
			Unit:         unit,
			PackCount:    packCount,
			PricePerPack: price,
		})
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = len(result.Rows)

	if result.ValidRows == 0 && result.ErrorRows == 0 {
		return nil, fmt.Errorf("no ingredient data found in file")
	}

	return result, nil
}

// parseCSV reads a CSV file and returns headers plus data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers plus data rows from the
// first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// mapImportHeaders maps uploaded column headers to canonical field keys.
// Returns one key per column ("" for unrecognized columns) and the list of
// required fields with no matching column.
func mapImportHeaders(headers []string) ([]string, []string) {
	headerToKey := make(map[string]string)
	for key, spellings := range importColumns {
		for _, s := range spellings {
			headerToKey[s] = key
		}
	}

	mapped := make([]string, len(headers))
	found := make(map[string]bool)
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		if key, ok := headerToKey[norm]; ok {
			mapped[i] = key
			found[key] = true
		}
	}

	var missing []string
	for _, key := range []string{"name", "pack_size", "unit", "pack_count", "price"} {
		if !found[key] {
			missing = append(missing, key)
		}
	}
	return mapped, missing
}
