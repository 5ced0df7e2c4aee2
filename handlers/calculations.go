package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"hppcalc/services"
)

// defaultListLimit caps history listings unless the caller asks otherwise.
const defaultListLimit = 50

// saveCalculationRequest is the body for persisting a calculation.
type saveCalculationRequest struct {
	Name  string             `json:"name"`
	Input services.CalcInput `json:"input"`
}

// calculationSummary is one row of the history listing.
type calculationSummary struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	TotalBatchCost        float64 `json:"total_batch_cost"`
	OutputUnits           int     `json:"output_units"`
	HPPPerUnit            float64 `json:"hpp_per_unit"`
	SuggestedSellingPrice float64 `json:"suggested_selling_price"`
	MarginStatus          string  `json:"margin_status"`
	Created               string  `json:"created"`
}

// calculationDetail is the full saved calculation with its ingredient rows.
type calculationDetail struct {
	calculationSummary
	MaterialCost        float64                   `json:"material_cost"`
	OperationalCost     float64                   `json:"operational_cost"`
	OtherCost           float64                   `json:"other_cost"`
	TargetMarginPercent float64                   `json:"target_margin_percent"`
	ActualSellingPrice  float64                   `json:"actual_selling_price"`
	ActualMarginPercent float64                   `json:"actual_margin_percent"`
	GapVsTarget         float64                   `json:"gap_vs_target"`
	Ingredients         []services.IngredientCost `json:"ingredients"`
}

func summaryFromRecord(rec *core.Record) calculationSummary {
	return calculationSummary{
		ID:                    rec.Id,
		Name:                  rec.GetString("name"),
		TotalBatchCost:        rec.GetFloat("total_batch_cost"),
		OutputUnits:           rec.GetInt("output_units"),
		HPPPerUnit:            rec.GetFloat("hpp_per_unit"),
		SuggestedSellingPrice: rec.GetFloat("suggested_selling_price"),
		MarginStatus:          rec.GetString("margin_status"),
		Created:               rec.GetDateTime("created").String(),
	}
}

// loadIngredientRows fetches the ingredient rows of a calculation in their
// saved order.
func loadIngredientRows(app *pocketbase.PocketBase, calcID string) ([]services.IngredientCost, error) {
	rows, err := app.FindRecordsByFilter(
		"ingredients",
		"calculation = {:id}",
		"sort_order",
		0,
		0,
		map[string]any{"id": calcID},
	)
	if err != nil {
		return nil, err
	}

	costs := make([]services.IngredientCost, 0, len(rows))
	for _, row := range rows {
		costs = append(costs, services.IngredientCost{
			Ingredient: services.Ingredient{
				Name:         row.GetString("name"),
				Quantity:     row.GetFloat("quantity"),
				Unit:         row.GetString("unit"),
				PricePerUnit: row.GetFloat("price_per_unit"),
			},
			LineCost:            row.GetFloat("line_cost"),
			ContributionPercent: row.GetFloat("contribution_percent"),
		})
	}
	return costs, nil
}

// HandleCalculationCreate validates, computes and persists a calculation
// together with its ingredient rows.
// Route: POST /api/calculations
func HandleCalculationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req saveCalculationRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return apiError(e, http.StatusBadRequest, "Calculation name is required")
		}
		if utf8.RuneCountInString(req.Name) > services.MaxIngredientNameLength {
			return apiError(e, http.StatusBadRequest, "Calculation name is too long")
		}

		if errs := services.ValidateIngredients(req.Input.Ingredients); len(errs) > 0 {
			return validationError(e, http.StatusBadRequest, "Ingredient validation failed", errs)
		}

		result := services.Calculate(req.Input)

		col, err := app.FindCollectionByNameOrId("calculations")
		if err != nil {
			log.Printf("calculation_create: collection not found: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save calculation")
		}

		record := core.NewRecord(col)
		record.Set("name", req.Name)
		record.Set("material_cost", result.MaterialCost)
		record.Set("operational_cost", result.OperationalCost)
		record.Set("other_cost", result.OtherCost)
		record.Set("total_batch_cost", result.TotalBatchCost)
		record.Set("output_units", result.OutputUnits)
		record.Set("target_margin_percent", result.TargetMarginPercent)
		record.Set("hpp_per_unit", result.HPPPerUnit)
		record.Set("suggested_selling_price", result.SuggestedSellingPrice)
		record.Set("actual_selling_price", result.ActualSellingPrice)
		record.Set("actual_margin_percent", result.ActualMarginPercent)
		record.Set("gap_vs_target", result.GapVsTarget)
		record.Set("margin_status", string(result.Status))
		if err := app.Save(record); err != nil {
			log.Printf("calculation_create: failed to save: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save calculation")
		}

		ingCol, err := app.FindCollectionByNameOrId("ingredients")
		if err != nil {
			log.Printf("calculation_create: collection not found: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save calculation")
		}
		for i, ing := range result.Ingredients {
			row := core.NewRecord(ingCol)
			row.Set("calculation", record.Id)
			row.Set("sort_order", i+1)
			row.Set("name", ing.Name)
			row.Set("quantity", ing.Quantity)
			row.Set("unit", ing.Unit)
			row.Set("price_per_unit", ing.PricePerUnit)
			row.Set("line_cost", ing.LineCost)
			row.Set("contribution_percent", ing.ContributionPercent)
			if err := app.Save(row); err != nil {
				log.Printf("calculation_create: failed to save ingredient row %d: %v", i+1, err)
				return apiError(e, http.StatusInternalServerError, "Failed to save calculation")
			}
		}

		detail := calculationDetail{
			calculationSummary:  summaryFromRecord(record),
			MaterialCost:        result.MaterialCost,
			OperationalCost:     result.OperationalCost,
			OtherCost:           result.OtherCost,
			TargetMarginPercent: result.TargetMarginPercent,
			ActualSellingPrice:  result.ActualSellingPrice,
			ActualMarginPercent: result.ActualMarginPercent,
			GapVsTarget:         result.GapVsTarget,
			Ingredients:         result.Ingredients,
		}
		return e.JSON(http.StatusCreated, detail)
	}
}

// HandleCalculationList returns the calculation history, newest first.
// Route: GET /api/calculations?limit=N
func HandleCalculationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		limit := defaultListLimit
		if raw := e.Request.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return apiError(e, http.StatusBadRequest, "Invalid limit")
			}
			limit = n
		}

		records, err := app.FindRecordsByFilter("calculations", "id != ''", "-created", limit, 0, nil)
		if err != nil {
			log.Printf("calculation_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load calculations")
		}

		summaries := make([]calculationSummary, 0, len(records))
		for _, rec := range records {
			summaries = append(summaries, summaryFromRecord(rec))
		}
		return e.JSON(http.StatusOK, summaries)
	}
}

// HandleCalculationView returns one saved calculation with its ingredient rows.
// Route: GET /api/calculations/{id}
func HandleCalculationView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("calculations", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Calculation not found")
		}

		ingredients, err := loadIngredientRows(app, record.Id)
		if err != nil {
			log.Printf("calculation_view: failed to load ingredients: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load calculation")
		}

		detail := calculationDetail{
			calculationSummary:  summaryFromRecord(record),
			MaterialCost:        record.GetFloat("material_cost"),
			OperationalCost:     record.GetFloat("operational_cost"),
			OtherCost:           record.GetFloat("other_cost"),
			TargetMarginPercent: record.GetFloat("target_margin_percent"),
			ActualSellingPrice:  record.GetFloat("actual_selling_price"),
			ActualMarginPercent: record.GetFloat("actual_margin_percent"),
			GapVsTarget:         record.GetFloat("gap_vs_target"),
			Ingredients:         ingredients,
		}
		return e.JSON(http.StatusOK, detail)
	}
}

// HandleCalculationRename updates the name of a saved calculation.
// Route: PATCH /api/calculations/{id}
func HandleCalculationRename(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("calculations", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Calculation not found")
		}

		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return apiError(e, http.StatusBadRequest, "Calculation name is required")
		}
		if utf8.RuneCountInString(req.Name) > services.MaxIngredientNameLength {
			return apiError(e, http.StatusBadRequest, "Calculation name is too long")
		}

		record.Set("name", req.Name)
		if err := app.Save(record); err != nil {
			log.Printf("calculation_rename: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to rename calculation")
		}
		return e.JSON(http.StatusOK, summaryFromRecord(record))
	}
}

// HandleCalculationDelete removes a saved calculation. Its ingredient rows
// cascade.
// Route: DELETE /api/calculations/{id}
func HandleCalculationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("calculations", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Calculation not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("calculation_delete: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete calculation")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
