package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"hppcalc/services"
)

// buildReportData loads a saved calculation and its ingredient rows into
// the structure the report generators consume.
func buildReportData(app *pocketbase.PocketBase, calcID string) (services.ReportData, error) {
	record, err := app.FindRecordById("calculations", calcID)
	if err != nil {
		return services.ReportData{}, fmt.Errorf("calculation not found: %w", err)
	}

	ingredients, err := loadIngredientRows(app, record.Id)
	if err != nil {
		return services.ReportData{}, fmt.Errorf("failed to load ingredients: %w", err)
	}

	createdDate := ""
	if dt := record.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	return services.ReportData{
		ProductName: record.GetString("name"),
		CreatedDate: createdDate,
		Result: services.CalcResult{
			Ingredients:           ingredients,
			MaterialCost:          record.GetFloat("material_cost"),
			OperationalCost:       record.GetFloat("operational_cost"),
			OtherCost:             record.GetFloat("other_cost"),
			TotalBatchCost:        record.GetFloat("total_batch_cost"),
			OutputUnits:           record.GetInt("output_units"),
			TargetMarginPercent:   record.GetFloat("target_margin_percent"),
			HPPPerUnit:            record.GetFloat("hpp_per_unit"),
			SuggestedSellingPrice: record.GetFloat("suggested_selling_price"),
			ActualSellingPrice:    record.GetFloat("actual_selling_price"),
			ActualMarginPercent:   record.GetFloat("actual_margin_percent"),
			GapVsTarget:           record.GetFloat("gap_vs_target"),
			Status:                services.MarginStatus(record.GetString("margin_status")),
		},
	}, nil
}

// HandleCalculationExportExcel downloads a saved calculation as an Excel report.
// Route: GET /api/calculations/{id}/export/excel
func HandleCalculationExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		calcID := e.Request.PathValue("id")
		if calcID == "" {
			return apiError(e, http.StatusBadRequest, "Missing calculation ID")
		}

		data, err := buildReportData(app, calcID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return apiError(e, http.StatusNotFound, "Calculation not found")
		}

		xlsxBytes, err := services.GenerateExcelReport(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("HPP_%s_%d.xlsx", sanitizeFilename(data.ProductName), time.Now().Year())
		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleCalculationExportPDF downloads a saved calculation as a PDF report.
// Route: GET /api/calculations/{id}/export/pdf
func HandleCalculationExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		calcID := e.Request.PathValue("id")
		if calcID == "" {
			return apiError(e, http.StatusBadRequest, "Missing calculation ID")
		}

		data, err := buildReportData(app, calcID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return apiError(e, http.StatusNotFound, "Calculation not found")
		}

		pdfBytes, err := services.GeneratePDFReport(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("HPP_%s_%d.pdf", sanitizeFilename(data.ProductName), time.Now().Year())
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
