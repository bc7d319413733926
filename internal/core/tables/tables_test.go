package tables

import (
	"testing"

	"github.com/agrisurvey/portal/internal/core"
	db "github.com/agrisurvey/portal/internal/database"
)

var allKeys = []string{
	"farmers",
	"land_holdings",
	"assets",
	"crop_history",
	"cost_of_cultivation",
	"weed_records",
	"water_management",
	"pest_disease_records",
	"nutrient_management",
	"income_from_crops",
	"irrigated_rainfed",
	"enterprises",
	"annual_family_income",
	"consumption_patterns",
	"market_prices",
	"migration_records",
	"adaptation_strategies",
	"financial_records",
}

func TestAllTablesRegistered(t *testing.T) {
	for _, key := range allKeys {
		def, ok := core.Get(key)
		if !ok {
			t.Errorf("table %s not registered", key)
			continue
		}
		if def.BuildParams == nil || def.Insert == nil || def.Reset == nil {
			t.Errorf("table %s has missing operations", key)
		}
		if len(def.Info.Columns) == 0 {
			t.Errorf("table %s has no columns", key)
		}
	}
}

func TestOnlyFarmersIsRoot(t *testing.T) {
	for _, def := range core.All() {
		if def.Info.Key == "farmers" {
			if def.HasParent() {
				t.Error("farmers must not reference a parent")
			}
			continue
		}
		if def.Info.ParentRef != "farmer_id" {
			t.Errorf("table %s parentRef = %q, want farmer_id", def.Info.Key, def.Info.ParentRef)
		}
	}
}

func TestChildTablesRequireFarmerID(t *testing.T) {
	for _, key := range allKeys {
		if key == "farmers" {
			continue
		}
		def, _ := core.Get(key)

		var required bool
		for _, spec := range def.FieldSpecs {
			if spec.Name == "farmer_id" && spec.Required {
				required = true
			}
		}
		if !required {
			t.Errorf("table %s must require farmer_id", key)
		}
	}
}

func TestNormalizeSeason(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"kharif", "Kharif"},
		{"KHARIFF", "Kharif"},
		{" rabi ", "Rabi"},
		{"rabbi", "Rabi"},
		{"zaid", "Summer"},
		{"Whole Year", "Annual"},
		{"perennial", "perennial"}, // unknown values pass through
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeSeason(tt.input); got != tt.want {
			t.Errorf("NormalizeSeason(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIDOrNew(t *testing.T) {
	idx := core.MakeHeaderIndex([]string{"id", "farmer_id"})

	t.Run("blank id gets generated", func(t *testing.T) {
		id, err := idOrNew([]string{"", "x"}, idx, "id")
		if err != nil {
			t.Fatal(err)
		}
		if !id.Valid {
			t.Error("generated id must be valid")
		}
	})

	t.Run("supplied id is kept", func(t *testing.T) {
		supplied := "33333333-3333-4333-8333-333333333333"
		id, err := idOrNew([]string{supplied, "x"}, idx, "id")
		if err != nil {
			t.Fatal(err)
		}
		if core.PgUUIDToString(id) != supplied {
			t.Errorf("id = %s, want %s", core.PgUUIDToString(id), supplied)
		}
	})

	t.Run("malformed id rejects row", func(t *testing.T) {
		if _, err := idOrNew([]string{"ROW-7", "x"}, idx, "id"); err == nil {
			t.Error("expected error for non-UUID id")
		}
	})
}

func TestBuildParamsCropHistory(t *testing.T) {
	def, ok := core.Get("crop_history")
	if !ok {
		t.Fatal("crop_history not registered")
	}

	idx := core.MakeHeaderIndex(def.Info.Columns)
	row := make([]string, len(def.Info.Columns))
	for i, col := range def.Info.Columns {
		switch col {
		case "farmer_id":
			row[i] = "44444444-4444-4444-8444-444444444444"
		case "crop_name":
			row[i] = "Soybean"
		case "season":
			row[i] = "khariff"
		}
	}

	params, err := def.BuildParams(row, idx)
	if err != nil {
		t.Fatalf("BuildParams: %v", err)
	}

	p, ok := params.(db.InsertCropHistoryParams)
	if !ok {
		t.Fatalf("params type = %T", params)
	}
	if !p.CropHistID.Valid {
		t.Error("blank id must be auto-assigned")
	}
	if p.Season.String != "Kharif" {
		t.Errorf("season = %q, want normalized Kharif", p.Season.String)
	}
	if p.AreaHa.Valid {
		t.Error("blank numeric must map to NULL")
	}
}
