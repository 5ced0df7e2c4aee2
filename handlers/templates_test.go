package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hppcalc/services"
	"hppcalc/testhelpers"
)

func TestHandleTemplateCreate_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleTemplateCreate(app)

	body := `{
		"name": "Bakso Sapi",
		"ingredients": [
			{"name": "Daging Sapi", "quantity": 5, "unit": "kg", "price_per_unit": 120000},
			{"name": "Tepung Tapioka", "quantity": 1, "unit": "kg", "price_per_unit": 12000}
		],
		"output_units": 200,
		"target_margin_percent": 45
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/templates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp templateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "Bakso Sapi" {
		t.Errorf("name = %q", resp.Name)
	}
	if len(resp.Ingredients) != 2 {
		t.Errorf("expected 2 ingredients, got %d", len(resp.Ingredients))
	}
	if resp.TargetMarginPercent != 45 {
		t.Errorf("target_margin_percent = %v, want 45", resp.TargetMarginPercent)
	}

	if _, err := app.FindRecordById("templates", resp.ID); err != nil {
		t.Errorf("template not persisted: %v", err)
	}
}

func TestHandleTemplateCreate_InvalidIngredients(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleTemplateCreate(app)

	body := `{"name": "Broken", "ingredients": [{"name": "X", "quantity": 0, "unit": "kg", "price_per_unit": 0}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/templates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleTemplateList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ingredients := []services.Ingredient{
		{Name: "Gula Pasir", Quantity: 1, Unit: "kg", PricePerUnit: 16000},
	}
	testhelpers.CreateTestTemplate(t, app, "Template A", ingredients)
	testhelpers.CreateTestTemplate(t, app, "Template B", ingredients)

	handler := HandleTemplateList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []templateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(resp))
	}
	for _, tpl := range resp {
		if len(tpl.Ingredients) != 1 {
			t.Errorf("template %q: expected 1 ingredient, got %d", tpl.Name, len(tpl.Ingredients))
		}
	}
}

func TestHandleTemplateView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleTemplateView(app)
	req := httptest.NewRequest(http.MethodGet, "/api/templates/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleTemplateDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	tpl := testhelpers.CreateTestTemplate(t, app, "Doomed Template", []services.Ingredient{
		{Name: "Garam", Quantity: 1, Unit: "kg", PricePerUnit: 8000},
	})

	handler := HandleTemplateDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/api/templates/"+tpl.Id, nil)
	req.SetPathValue("id", tpl.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("templates", tpl.Id); err == nil {
		t.Error("template should have been deleted")
	}
}
