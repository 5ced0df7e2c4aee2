// Package collections creates and maintains the PocketBase collections the
// HPP calculator persists to: past calculations with their ingredient rows,
// and reusable ingredient templates.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the calculations, ingredients and
// templates collections exist.
func Setup(app *pocketbase.PocketBase) {
	calculations := ensureCollection(app, "calculations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true, Max: 100})
		c.Fields.Add(&core.NumberField{Name: "material_cost"})
		c.Fields.Add(&core.NumberField{Name: "operational_cost"})
		c.Fields.Add(&core.NumberField{Name: "other_cost"})
		c.Fields.Add(&core.NumberField{Name: "total_batch_cost", Required: true})
		c.Fields.Add(&core.NumberField{Name: "output_units", Required: true})
		c.Fields.Add(&core.NumberField{Name: "target_margin_percent"})
		c.Fields.Add(&core.NumberField{Name: "hpp_per_unit"})
		c.Fields.Add(&core.NumberField{Name: "suggested_selling_price"})
		c.Fields.Add(&core.NumberField{Name: "actual_selling_price"})
		c.Fields.Add(&core.NumberField{Name: "actual_margin_percent"})
		c.Fields.Add(&core.NumberField{Name: "gap_vs_target"})
		c.Fields.Add(&core.SelectField{
			Name:      "margin_status",
			Values:    []string{"success", "warning", "danger"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "ingredients", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "calculation",
			Required:      true,
			CollectionId:  calculations.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true, Max: 100})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "price_per_unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "line_cost"})
		c.Fields.Add(&core.NumberField{Name: "contribution_percent"})
	})

	ensureCollection(app, "templates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true, Max: 100})
		c.Fields.Add(&core.JSONField{Name: "ingredients"})
		c.Fields.Add(&core.NumberField{Name: "output_units"})
		c.Fields.Add(&core.NumberField{Name: "target_margin_percent"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it
// does, the existing collection is returned. Otherwise a new base
// collection is created, the addFields callback is invoked to populate its
// fields, and the collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
