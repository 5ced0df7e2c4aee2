package collections_test

import (
	"encoding/json"
	"testing"

	"hppcalc/collections"
	"hppcalc/services"
	"hppcalc/testhelpers"
)

func TestSeed_CreatesTemplates(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	templatesCol, _ := app.FindCollectionByNameOrId("templates")
	templates, err := app.FindAllRecords(templatesCol)
	if err != nil {
		t.Fatalf("query templates error: %v", err)
	}
	if len(templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(templates))
	}

	names := make(map[string]bool)
	for _, tpl := range templates {
		names[tpl.GetString("name")] = true
	}
	for _, want := range []string{"Ayam Goreng Crispy", "Donat Kentang", "Es Kopi Susu Gula Aren"} {
		if !names[want] {
			t.Errorf("missing seeded template %q", want)
		}
	}
}

func TestSeed_TemplateIngredientsParse(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	records, err := app.FindRecordsByFilter("templates", "name = 'Ayam Goreng Crispy'", "", 1, 0, nil)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected seeded template, got %d records (err %v)", len(records), err)
	}

	var ingredients []services.Ingredient
	if err := json.Unmarshal([]byte(records[0].GetString("ingredients")), &ingredients); err != nil {
		t.Fatalf("template ingredients do not parse: %v", err)
	}
	if len(ingredients) != 4 {
		t.Fatalf("expected 4 ingredients, got %d", len(ingredients))
	}

	errs := services.ValidateIngredients(ingredients)
	if len(errs) != 0 {
		t.Errorf("seeded ingredients should validate, got %v", errs)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	templatesCol, _ := app.FindCollectionByNameOrId("templates")
	templates, _ := app.FindAllRecords(templatesCol)
	if len(templates) != 3 {
		t.Errorf("expected 3 templates after idempotent seed, got %d", len(templates))
	}
}
