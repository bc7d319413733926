package core

import (
	"strings"
	"testing"
)

func testChildDef() TableDefinition {
	return TableDefinition{
		Info: TableInfo{
			Key:       "crop_history",
			Label:     "Crop History",
			IDColumn:  "id",
			ParentRef: "farmer_id",
			Columns:   []string{"id", "farmer_id", "crop_name", "season", "area_ha", "sowing_date"},
		},
		FieldSpecs: []FieldSpec{
			{Name: "id", Type: FieldText},
			{Name: "farmer_id", Type: FieldText, Required: true},
			{Name: "crop_name", Type: FieldText, Required: true},
			{Name: "season", Type: FieldEnum, EnumValues: []string{"kharif", "rabi", "summer", "annual"}},
			{Name: "area_ha", Type: FieldDecimal},
			{Name: "sowing_date", Type: FieldDate},
		},
	}
}

const (
	knownFarmer   = "11111111-1111-4111-8111-111111111111"
	unknownFarmer = "22222222-2222-4222-8222-222222222222"
)

func TestValidateCell(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		spec    FieldSpec
		wantErr bool
	}{
		{"valid decimal", "12.5", FieldSpec{Type: FieldDecimal}, false},
		{"invalid decimal", "abc", FieldSpec{Type: FieldDecimal}, true},
		{"valid integer", "7", FieldSpec{Type: FieldInteger}, false},
		{"fractional integer", "7.5", FieldSpec{Type: FieldInteger}, true},
		{"valid float", "18.52", FieldSpec{Type: FieldFloat}, false},
		{"invalid float", "north", FieldSpec{Type: FieldFloat}, true},
		{"valid date", "15-06-2024", FieldSpec{Type: FieldDate}, false},
		{"invalid date", "June sometime", FieldSpec{Type: FieldDate}, true},
		{"valid bool", "yes", FieldSpec{Type: FieldBool}, false},
		{"invalid bool", "maybe", FieldSpec{Type: FieldBool}, true},
		{"enum match", "Kharif", FieldSpec{Type: FieldEnum, EnumValues: []string{"kharif", "rabi"}}, false},
		{"enum mismatch", "monsoon", FieldSpec{Type: FieldEnum, EnumValues: []string{"kharif", "rabi"}}, true},
		{"text accepts anything", "whatever", FieldSpec{Type: FieldText}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCell(tt.value, tt.spec)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCell(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHeaders(t *testing.T) {
	specs := testChildDef().FieldSpecs

	t.Run("all present", func(t *testing.T) {
		idx, err := ValidateHeaders([]string{"id", "Farmer_ID", "crop_name", "season", "area_ha", "sowing_date"}, specs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if idx["farmer_id"] != 1 {
			t.Errorf("farmer_id index = %d, want 1", idx["farmer_id"])
		}
	})

	t.Run("missing required", func(t *testing.T) {
		_, err := ValidateHeaders([]string{"id", "season"}, specs)
		if err == nil {
			t.Fatal("expected error for missing required columns")
		}
		if !strings.Contains(err.Error(), "farmer_id") || !strings.Contains(err.Error(), "crop_name") {
			t.Errorf("error should name missing columns, got: %v", err)
		}
	})

	t.Run("optional may be absent", func(t *testing.T) {
		if _, err := ValidateHeaders([]string{"farmer_id", "crop_name"}, specs); err != nil {
			t.Errorf("optional columns must not be required: %v", err)
		}
	})
}

func TestValidateRow(t *testing.T) {
	def := testChildDef()
	headerIdx, err := ValidateHeaders(def.Info.Columns, def.FieldSpecs)
	if err != nil {
		t.Fatal(err)
	}
	parents := map[string]bool{knownFarmer: true}
	v := NewRowValidator(def, headerIdx, parents)

	tests := []struct {
		name       string
		row        []string
		wantValid  bool
		wantFields []string // fields expected in the errors
	}{
		{
			name:      "clean row",
			row:       []string{"", knownFarmer, "Wheat", "rabi", "2.5", "15-11-2024"},
			wantValid: true,
		},
		{
			name:       "empty required field",
			row:        []string{"", knownFarmer, "", "rabi", "2.5", ""},
			wantValid:  false,
			wantFields: []string{"crop_name"},
		},
		{
			name:       "unknown farmer",
			row:        []string{"", unknownFarmer, "Wheat", "", "", ""},
			wantValid:  false,
			wantFields: []string{"farmer_id"},
		},
		{
			name:       "malformed farmer id",
			row:        []string{"", "FARM-001", "Wheat", "", "", ""},
			wantValid:  false,
			wantFields: []string{"farmer_id"},
		},
		{
			name:       "multiple errors reported together",
			row:        []string{"", unknownFarmer, "Wheat", "monsoon", "lots", "someday"},
			wantValid:  false,
			wantFields: []string{"season", "area_ha", "sowing_date", "farmer_id"},
		},
		{
			name:      "placeholder treated as blank optional",
			row:       []string{"", knownFarmer, "Wheat", "NA", "-", "n/a"},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.ValidateRow(tt.row)
			if res.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", res.Valid, tt.wantValid, res.Errors)
			}
			if len(tt.wantFields) > 0 {
				got := make(map[string]bool)
				for _, e := range res.Errors {
					got[e.Field] = true
				}
				for _, f := range tt.wantFields {
					if !got[f] {
						t.Errorf("expected an error for field %q, got %v", f, res.Errors)
					}
				}
				if len(res.Errors) != len(tt.wantFields) {
					t.Errorf("got %d errors, want %d: %v", len(res.Errors), len(tt.wantFields), res.Errors)
				}
			}
		})
	}
}

func TestValidateRowFirst(t *testing.T) {
	def := testChildDef()
	headerIdx, _ := ValidateHeaders(def.Info.Columns, def.FieldSpecs)
	v := NewRowValidator(def, headerIdx, map[string]bool{knownFarmer: true})

	if err := v.ValidateRowFirst([]string{"", knownFarmer, "Wheat", "", "", ""}); err != nil {
		t.Errorf("clean row: unexpected error %v", err)
	}

	err := v.ValidateRowFirst([]string{"", knownFarmer, "", "monsoon", "", ""})
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Field != "crop_name" {
		t.Errorf("first error field = %q, want crop_name", err.Field)
	}
}

func TestRowValidatorRootTable(t *testing.T) {
	def := TableDefinition{
		Info: TableInfo{Key: "farmers_t", IDColumn: "farmer_id"},
		FieldSpecs: []FieldSpec{
			{Name: "farmer_id", Type: FieldText},
			{Name: "name", Type: FieldText, Required: true},
		},
	}
	headerIdx, _ := ValidateHeaders([]string{"farmer_id", "name"}, def.FieldSpecs)

	// nil parents: no reference check for the root table
	v := NewRowValidator(def, headerIdx, nil)
	if res := v.ValidateRow([]string{"", "Ramesh Patil"}); !res.Valid {
		t.Errorf("root row should be valid, got %v", res.Errors)
	}
}
