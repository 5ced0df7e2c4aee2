// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"hppcalc/collections"
	"hppcalc/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestCalculation saves a calculation record computed from the given
// input, along with one ingredient row per valid ingredient, and returns
// the calculation record.
func CreateTestCalculation(t *testing.T, app *pocketbase.PocketBase, name string, in services.CalcInput) *core.Record {
	t.Helper()

	result := services.Calculate(in)

	col, err := app.FindCollectionByNameOrId("calculations")
	if err != nil {
		t.Fatalf("failed to find calculations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
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
		t.Fatalf("failed to save test calculation: %v", err)
	}

	ingCol, err := app.FindCollectionByNameOrId("ingredients")
	if err != nil {
		t.Fatalf("failed to find ingredients collection: %v", err)
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
			t.Fatalf("failed to save test ingredient row: %v", err)
		}
	}

	return record
}

// SampleCalcInput returns a batch that yields round numbers: material cost
// 400,000 over 50 units at a 40% target margin.
func SampleCalcInput() services.CalcInput {
	return services.CalcInput{
		Ingredients: []services.Ingredient{
			{Name: "Ayam Karkas", Quantity: 10, Unit: "kg", PricePerUnit: 40000},
		},
		OutputUnits:         50,
		TargetMarginPercent: 40,
	}
}

// CreateTestTemplate creates a recipe template record and returns it.
func CreateTestTemplate(t *testing.T, app *pocketbase.PocketBase, name string, ingredients []services.Ingredient) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("templates")
	if err != nil {
		t.Fatalf("failed to find templates collection: %v", err)
	}

	raw, err := json.Marshal(ingredients)
	if err != nil {
		t.Fatalf("failed to marshal template ingredients: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("ingredients", string(raw))
	record.Set("output_units", 50)
	record.Set("target_margin_percent", 40)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test template: %v", err)
	}

	return record
}
