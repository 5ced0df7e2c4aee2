package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"hppcalc/services"
)

// templateResponse is a recipe template as returned by the API.
type templateResponse struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	Ingredients         []services.Ingredient `json:"ingredients"`
	OutputUnits         int                   `json:"output_units"`
	TargetMarginPercent float64               `json:"target_margin_percent"`
	Created             string                `json:"created"`
}

// saveTemplateRequest is the body for creating or updating a template.
type saveTemplateRequest struct {
	Name                string                `json:"name"`
	Ingredients         []services.Ingredient `json:"ingredients"`
	OutputUnits         int                   `json:"output_units"`
	TargetMarginPercent float64               `json:"target_margin_percent"`
}

func templateFromRecord(rec *core.Record) templateResponse {
	resp := templateResponse{
		ID:                  rec.Id,
		Name:                rec.GetString("name"),
		OutputUnits:         rec.GetInt("output_units"),
		TargetMarginPercent: rec.GetFloat("target_margin_percent"),
		Created:             rec.GetDateTime("created").String(),
	}
	if raw := rec.GetString("ingredients"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &resp.Ingredients); err != nil {
			log.Printf("templates: record %s has unparsable ingredients: %v", rec.Id, err)
		}
	}
	return resp
}

// HandleTemplateList returns all recipe templates, newest first.
// Route: GET /api/templates
func HandleTemplateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("templates", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("template_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load templates")
		}

		templates := make([]templateResponse, 0, len(records))
		for _, rec := range records {
			templates = append(templates, templateFromRecord(rec))
		}
		return e.JSON(http.StatusOK, templates)
	}
}

// HandleTemplateView returns one recipe template.
// Route: GET /api/templates/{id}
func HandleTemplateView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("templates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Template not found")
		}
		return e.JSON(http.StatusOK, templateFromRecord(record))
	}
}

// HandleTemplateCreate validates and persists a recipe template.
// Route: POST /api/templates
func HandleTemplateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req saveTemplateRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return apiError(e, http.StatusBadRequest, "Template name is required")
		}
		if utf8.RuneCountInString(req.Name) > services.MaxIngredientNameLength {
			return apiError(e, http.StatusBadRequest, "Template name is too long")
		}
		if errs := services.ValidateIngredients(req.Ingredients); len(errs) > 0 {
			return validationError(e, http.StatusBadRequest, "Ingredient validation failed", errs)
		}

		raw, err := json.Marshal(req.Ingredients)
		if err != nil {
			log.Printf("template_create: marshal ingredients: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save template")
		}

		col, err := app.FindCollectionByNameOrId("templates")
		if err != nil {
			log.Printf("template_create: collection not found: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save template")
		}

		record := core.NewRecord(col)
		record.Set("name", req.Name)
		record.Set("ingredients", string(raw))
		record.Set("output_units", req.OutputUnits)
		record.Set("target_margin_percent", req.TargetMarginPercent)
		if err := app.Save(record); err != nil {
			log.Printf("template_create: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save template")
		}

		return e.JSON(http.StatusCreated, templateFromRecord(record))
	}
}

// HandleTemplateDelete removes a recipe template.
// Route: DELETE /api/templates/{id}
func HandleTemplateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("templates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Template not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("template_delete: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete template")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
