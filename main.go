package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"hppcalc/collections"
	"hppcalc/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed templates and run migrations on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateLegacyCostBreakdown(app); err != nil {
			log.Printf("Warning: cost breakdown migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Calculation ──────────────────────────────────────────
		se.Router.POST("/api/hpp/calculate", handlers.HandleCalculate(app))

		// ── Saved calculation history ────────────────────────────
		se.Router.POST("/api/calculations", handlers.HandleCalculationCreate(app))
		se.Router.GET("/api/calculations", handlers.HandleCalculationList(app))
		se.Router.GET("/api/calculations/{id}", handlers.HandleCalculationView(app))
		se.Router.PATCH("/api/calculations/{id}", handlers.HandleCalculationRename(app))
		se.Router.DELETE("/api/calculations/{id}", handlers.HandleCalculationDelete(app))

		// ── Report downloads ─────────────────────────────────────
		se.Router.GET("/api/calculations/{id}/export/excel", handlers.HandleCalculationExportExcel(app))
		se.Router.GET("/api/calculations/{id}/export/pdf", handlers.HandleCalculationExportPDF(app))

		// ── Recipe templates ─────────────────────────────────────
		se.Router.GET("/api/templates", handlers.HandleTemplateList(app))
		se.Router.POST("/api/templates", handlers.HandleTemplateCreate(app))
		se.Router.GET("/api/templates/{id}", handlers.HandleTemplateView(app))
		se.Router.DELETE("/api/templates/{id}", handlers.HandleTemplateDelete(app))

		// ── Ingredient file import ───────────────────────────────
		se.Router.GET("/api/import/template", handlers.HandleImportTemplateDownload(app))
		se.Router.POST("/api/import", handlers.HandleImportValidate(app))
		se.Router.POST("/api/import/errors", handlers.HandleImportErrorReport(app))

		// Health probe
		se.Router.GET("/api/health", func(e *core.RequestEvent) error {
			return e.JSON(http.StatusOK, map[string]string{"status": "ok"})
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
