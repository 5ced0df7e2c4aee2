package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"hppcalc/services"
)

// calculateResponse is the calculation result plus the ingredients that
// dominate the batch cost, largest first.
type calculateResponse struct {
	services.CalcResult
	TopContributors []services.IngredientCost `json:"top_contributors"`
}

// HandleCalculate computes a cost breakdown without persisting anything.
// Route: POST /api/hpp/calculate
func HandleCalculate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in services.CalcInput
		if err := json.NewDecoder(e.Request.Body).Decode(&in); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if errs := services.ValidateIngredients(in.Ingredients); len(errs) > 0 {
			return validationError(e, http.StatusBadRequest, "Ingredient validation failed", errs)
		}

		result := services.Calculate(in)
		return e.JSON(http.StatusOK, calculateResponse{
			CalcResult:      result,
			TopContributors: services.TopContributors(result.Ingredients, services.DefaultTopContributors),
		})
	}
}
