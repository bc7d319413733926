package core

import (
	"testing"
	"time"
)

func TestToPgDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantDate  string // YYYY-MM-DD
	}{
		{"ISO format", "2024-06-15", true, "2024-06-15"},
		{"day-first dashes", "15-06-2024", true, "2024-06-15"},
		{"day-first slashes", "15/06/2024", true, "2024-06-15"},
		{"day-first single digits", "5/6/2024", true, "2024-06-05"},
		{"day-first dots", "15.06.2024", true, "2024-06-15"},
		{"textual", "15 Jun 2024", true, "2024-06-15"},
		{"compact", "20240615", true, "2024-06-15"},
		{"empty", "", false, ""},
		{"whitespace only", "   ", false, ""},
		{"garbage", "not-a-date", false, ""},
		{"day out of range", "32-01-2024", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPgDate(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ToPgDate(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if tt.wantValid {
				if gotStr := got.Time.Format(time.DateOnly); gotStr != tt.wantDate {
					t.Errorf("ToPgDate(%q) = %s, want %s", tt.input, gotStr, tt.wantDate)
				}
			}
		})
	}
}

func TestToPgDateDayFirstPrecedence(t *testing.T) {
	// 04/05/2024 must parse as 4 May, not 5 April
	got := ToPgDate("04/05/2024")
	if !got.Valid {
		t.Fatal("expected valid date")
	}
	if got.Time.Day() != 4 || got.Time.Month() != time.May {
		t.Errorf("04/05/2024 parsed as %s, want 4 May 2024", got.Time.Format(time.DateOnly))
	}
}

func TestToPgNumeric(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		{"plain integer", "1500", true},
		{"decimal", "1500.75", true},
		{"negative", "-250", true},
		{"rupee symbol", "₹12,500", true},
		{"Rs prefix", "Rs. 4500", true},
		{"thousands separators", "1,25,000", true},
		{"accounting negative", "(500)", true},
		{"scientific", "1.5e3", true},
		{"empty", "", false},
		{"text", "five hundred", false},
		{"double decimal", "1.2.3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPgNumeric(tt.input)
			if got.Valid != tt.wantValid {
				t.Errorf("ToPgNumeric(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
		})
	}
}

func TestToPgNumericAccountingNegative(t *testing.T) {
	got := ToPgNumeric("(500)")
	if !got.Valid {
		t.Fatal("expected valid numeric")
	}
	f, err := got.Float64Value()
	if err != nil {
		t.Fatal(err)
	}
	if f.Float64 != -500 {
		t.Errorf("(500) = %v, want -500", f.Float64)
	}
}

func TestToPgBool(t *testing.T) {
	tests := []struct {
		input     string
		wantValid bool
		wantBool  bool
	}{
		{"yes", true, true},
		{"Y", true, true},
		{"TRUE", true, true},
		{"1", true, true},
		{"no", true, false},
		{"n", true, false},
		{"false", true, false},
		{"0", true, false},
		{"", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		got := ToPgBool(tt.input)
		if got.Valid != tt.wantValid || (got.Valid && got.Bool != tt.wantBool) {
			t.Errorf("ToPgBool(%q) = {%v %v}, want {%v %v}",
				tt.input, got.Bool, got.Valid, tt.wantBool, tt.wantValid)
		}
	}
}

func TestToPgInt4(t *testing.T) {
	tests := []struct {
		input     string
		wantValid bool
		wantInt   int32
	}{
		{"42", true, 42},
		{"1,500", true, 1500},
		{"-7", true, -7},
		{"", false, 0},
		{"3.5", false, 0},
		{"many", false, 0},
	}

	for _, tt := range tests {
		got := ToPgInt4(tt.input)
		if got.Valid != tt.wantValid || (got.Valid && got.Int32 != tt.wantInt) {
			t.Errorf("ToPgInt4(%q) = {%d %v}, want {%d %v}",
				tt.input, got.Int32, got.Valid, tt.wantInt, tt.wantValid)
		}
	}
}

func TestToPgUUID(t *testing.T) {
	valid := "a2f1c7de-9b6e-4f3a-8c2d-1e5b7a9c3d4f"

	if got := ToPgUUID(valid); !got.Valid {
		t.Errorf("ToPgUUID(%q) invalid, want valid", valid)
	}
	if got := ToPgUUID("not-a-uuid"); got.Valid {
		t.Error("ToPgUUID(not-a-uuid) valid, want invalid")
	}
	if got := ToPgUUID(""); got.Valid {
		t.Error("ToPgUUID(empty) valid, want invalid")
	}

	// Round trip through the string form
	if s := PgUUIDToString(ToPgUUID(valid)); s != valid {
		t.Errorf("round trip = %q, want %q", s, valid)
	}
}

func TestNewPgUUID(t *testing.T) {
	a, b := NewPgUUID(), NewPgUUID()
	if !a.Valid || !b.Valid {
		t.Fatal("generated UUIDs must be valid")
	}
	if a.Bytes == b.Bytes {
		t.Error("two generated UUIDs are equal")
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Wheat", "Wheat"},
		{"surrounding space", "  Wheat  ", "Wheat"},
		{"excel formula quote", `="FARM-001"`, "FARM-001"},
		{"leading equals", "=SUM", "SUM"},
		{"quoted", `"Kharif"`, "Kharif"},
		{"NA placeholder", "NA", ""},
		{"n/a placeholder", "n/a", ""},
		{"dash placeholder", "-", ""},
		{"nil placeholder", "nil", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{"Farmer_ID", " Crop_Name ", "AREA"})

	want := map[string]int{"farmer_id": 0, "crop_name": 1, "area": 2}
	for key, pos := range want {
		if got, ok := idx[key]; !ok || got != pos {
			t.Errorf("idx[%q] = %d (%v), want %d", key, got, ok, pos)
		}
	}
}

func TestSanitizeUTF8(t *testing.T) {
	clean := []byte("farmer,village\n")
	if got := SanitizeUTF8(clean); string(got) != string(clean) {
		t.Error("valid input must pass through unchanged")
	}

	dirty := []byte{'a', 0xff, 'b'}
	got := SanitizeUTF8(dirty)
	if string(got) != "a�b" {
		t.Errorf("SanitizeUTF8 = %q, want a�b", got)
	}
}
