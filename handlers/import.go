package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"hppcalc/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleImportTemplateDownload serves the ingredient upload template with
// example rows and instructions.
// Route: GET /api/import/template
func HandleImportTemplateDownload(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateImportTemplate()
		if err != nil {
			log.Printf("import_template: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate template")
		}

		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition",
			`attachment; filename="Template_Bahan_Baku.xlsx"`)
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleImportValidate receives an uploaded ingredient file, parses and
// validates it, and returns the surviving rows plus all row errors.
// Route: POST /api/import
func HandleImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// max 10MB
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return apiError(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ParseIngredientFile(file, header.Filename)
		if err != nil {
			log.Printf("import_validate: %v", err)
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, result)
	}
}

// HandleImportErrorReport turns a posted list of row errors into a
// downloadable Excel report.
// Route: POST /api/import/errors
func HandleImportErrorReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var errs []services.ValidationError
		if err := json.NewDecoder(e.Request.Body).Decode(&errs); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid error data")
		}
		if len(errs) == 0 {
			return apiError(e, http.StatusBadRequest, "No errors to report")
		}

		xlsxBytes, err := services.GenerateErrorReport(errs)
		if err != nil {
			log.Printf("import_error_report: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate error report")
		}

		filename := fmt.Sprintf("Import_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
