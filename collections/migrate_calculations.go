package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateLegacyCostBreakdown backfills the material_cost field on
// calculation records saved before the cost breakdown existed. Those
// records only stored total_batch_cost; the material portion is
// reconstructed by subtracting the operational and other costs.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateLegacyCostBreakdown(app *pocketbase.PocketBase) error {
	calcCol, err := app.FindCollectionByNameOrId("calculations")
	if err != nil {
		return fmt.Errorf("migrate: could not find calculations collection: %w", err)
	}

	legacy, err := app.FindRecordsByFilter(
		calcCol,
		"material_cost = 0 && total_batch_cost > 0",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query legacy calculations: %w", err)
	}

	if len(legacy) == 0 {
		return nil
	}

	log.Printf("migrate: found %d calculation(s) without a cost breakdown -- backfilling...\n", len(legacy))

	for _, rec := range legacy {
		total := rec.GetFloat("total_batch_cost")
		operational := rec.GetFloat("operational_cost")
		other := rec.GetFloat("other_cost")

		material := total - operational - other
		if material < 0 {
			log.Printf("migrate: calculation %s has costs exceeding its total, skipping\n", rec.Id)
			continue
		}

		rec.Set("material_cost", material)
		if err := app.Save(rec); err != nil {
			log.Printf("migrate: failed to backfill calculation %s: %v\n", rec.Id, err)
			continue
		}
	}

	log.Println("migrate: cost breakdown backfill complete.")
	return nil
}
