package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"hppcalc/collections"
	"hppcalc/testhelpers"
)

func TestMigrateLegacyCostBreakdown_Backfills(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// A record saved before the cost breakdown existed: total only.
	col, _ := app.FindCollectionByNameOrId("calculations")
	legacy := core.NewRecord(col)
	legacy.Set("name", "Legacy Batch")
	legacy.Set("total_batch_cost", 450000.0)
	legacy.Set("operational_cost", 30000.0)
	legacy.Set("other_cost", 20000.0)
	legacy.Set("output_units", 50)
	if err := app.Save(legacy); err != nil {
		t.Fatalf("failed to save legacy record: %v", err)
	}

	if err := collections.MigrateLegacyCostBreakdown(app); err != nil {
		t.Fatalf("MigrateLegacyCostBreakdown() error: %v", err)
	}

	reloaded, err := app.FindRecordById("calculations", legacy.Id)
	if err != nil {
		t.Fatalf("failed to reload record: %v", err)
	}
	if got := reloaded.GetFloat("material_cost"); got != 400000 {
		t.Errorf("material_cost = %v, want 400000", got)
	}
}

func TestMigrateLegacyCostBreakdown_SkipsInconsistentRecords(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, _ := app.FindCollectionByNameOrId("calculations")
	bad := core.NewRecord(col)
	bad.Set("name", "Inconsistent Batch")
	bad.Set("total_batch_cost", 10000.0)
	bad.Set("operational_cost", 50000.0)
	bad.Set("output_units", 10)
	if err := app.Save(bad); err != nil {
		t.Fatalf("failed to save record: %v", err)
	}

	if err := collections.MigrateLegacyCostBreakdown(app); err != nil {
		t.Fatalf("MigrateLegacyCostBreakdown() error: %v", err)
	}

	reloaded, _ := app.FindRecordById("calculations", bad.Id)
	if got := reloaded.GetFloat("material_cost"); got != 0 {
		t.Errorf("material_cost = %v, want 0 (record should be skipped)", got)
	}
}

func TestMigrateLegacyCostBreakdown_LeavesMigratedRecordsAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	calc := testhelpers.CreateTestCalculation(t, app, "Modern Batch", testhelpers.SampleCalcInput())
	before := calc.GetFloat("material_cost")
	if before == 0 {
		t.Fatal("sample calculation should have a material cost")
	}

	if err := collections.MigrateLegacyCostBreakdown(app); err != nil {
		t.Fatalf("MigrateLegacyCostBreakdown() error: %v", err)
	}

	reloaded, _ := app.FindRecordById("calculations", calc.Id)
	if got := reloaded.GetFloat("material_cost"); got != before {
		t.Errorf("material_cost changed from %v to %v", before, got)
	}
}
