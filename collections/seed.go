package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"hppcalc/services"
)

type templateDef struct {
	name                string
	outputUnits         int
	targetMarginPercent float64
	ingredients         []services.Ingredient
}

// Seed inserts starter recipe templates so a fresh install has working
// examples to calculate from. It is safe to call on every startup because
// it returns early if any template records already exist.
func Seed(app *pocketbase.PocketBase) error {
	templatesCol, err := app.FindCollectionByNameOrId("templates")
	if err != nil {
		return fmt.Errorf("seed: could not find templates collection: %w", err)
	}
	existing, err := app.FindAllRecords(templatesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query templates: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: templates collection is empty – inserting seed data …")

	defs := []templateDef{
		{
			name:                "Ayam Goreng Crispy",
			outputUnits:         50,
			targetMarginPercent: 40,
			ingredients: []services.Ingredient{
				{Name: "Ayam Karkas", Quantity: 10, Unit: "kg", PricePerUnit: 40000},
				{Name: "Tepung Terigu", Quantity: 2, Unit: "kg", PricePerUnit: 15000},
				{Name: "Minyak Goreng", Quantity: 3, Unit: "liter", PricePerUnit: 20000},
				{Name: "Bumbu Marinasi", Quantity: 500, Unit: "gram", PricePerUnit: 60},
			},
		},
		{
			name:                "Donat Kentang",
			outputUnits:         100,
			targetMarginPercent: 50,
			ingredients: []services.Ingredient{
				{Name: "Tepung Terigu", Quantity: 5, Unit: "kg", PricePerUnit: 14000},
				{Name: "Kentang", Quantity: 2, Unit: "kg", PricePerUnit: 18000},
				{Name: "Gula Pasir", Quantity: 1, Unit: "kg", PricePerUnit: 16000},
				{Name: "Mentega", Quantity: 500, Unit: "gram", PricePerUnit: 50},
				{Name: "Telur", Quantity: 10, Unit: "butir", PricePerUnit: 2500},
			},
		},
		{
			name:                "Es Kopi Susu Gula Aren",
			outputUnits:         40,
			targetMarginPercent: 60,
			ingredients: []services.Ingredient{
				{Name: "Biji Kopi Robusta", Quantity: 1, Unit: "kg", PricePerUnit: 120000},
				{Name: "Susu UHT Full Cream", Quantity: 6, Unit: "liter", PricePerUnit: 17000},
				{Name: "Gula Aren Cair", Quantity: 2, Unit: "liter", PricePerUnit: 35000},
				{Name: "Es Batu", Quantity: 8, Unit: "kg", PricePerUnit: 2000},
				{Name: "Cup + Tutup + Sedotan", Quantity: 40, Unit: "pcs", PricePerUnit: 1200},
			},
		},
	}

	for _, d := range defs {
		raw, err := json.Marshal(d.ingredients)
		if err != nil {
			return fmt.Errorf("seed: marshal ingredients for %q: %w", d.name, err)
		}

		r := core.NewRecord(templatesCol)
		r.Set("name", d.name)
		r.Set("ingredients", string(raw))
		r.Set("output_units", d.outputUnits)
		r.Set("target_margin_percent", d.targetMarginPercent)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save template %q: %w", d.name, err)
		}
	}

	log.Printf("seed: inserted %d starter templates", len(defs))
	return nil
}
