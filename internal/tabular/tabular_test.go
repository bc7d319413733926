package tabular

import (
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	data := []byte("farmer_id,name,village\nF1,Ramesh,Wardha\nF2,Sita,Amravati\n")

	rows, err := Parse("farmers.csv", data)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][1] != "name" || rows[2][2] != "Amravati" {
		t.Errorf("unexpected cells: %v", rows)
	}
}

func TestParseTSV(t *testing.T) {
	data := []byte("farmer_id\tname\nF1\tRamesh, Jr.\n")

	rows, err := Parse("farmers.tsv", data)
	if err != nil {
		t.Fatal(err)
	}
	// The comma inside a cell must not split it
	if rows[1][1] != "Ramesh, Jr." {
		t.Errorf("cell = %q, want %q", rows[1][1], "Ramesh, Jr.")
	}
}

func TestParseStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name\nRamesh\n")...)

	rows, err := Parse("farmers.csv", data)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][0] != "name" {
		t.Errorf("header = %q, BOM not stripped", rows[0][0])
	}
}

func TestParseRaggedRows(t *testing.T) {
	data := []byte("a,b,c\n1,2\n1,2,3,4\n")

	rows, err := Parse("data.csv", data)
	if err != nil {
		t.Fatalf("ragged rows must be tolerated: %v", err)
	}
	if len(rows[1]) != 2 || len(rows[2]) != 4 {
		t.Errorf("row widths = %d/%d, want 2/4", len(rows[1]), len(rows[2]))
	}
}

func TestParseSniffsDelimiter(t *testing.T) {
	tsv := []byte("a\tb\tc\n1\t2\t3\n")
	rows, err := Parse("export", tsv)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows[0]) != 3 {
		t.Errorf("sniffed TSV columns = %d, want 3", len(rows[0]))
	}

	csvData := []byte("a,b,c\n1,2,3\n")
	rows, err = Parse("export", csvData)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows[0]) != 3 {
		t.Errorf("sniffed CSV columns = %d, want 3", len(rows[0]))
	}
}

func TestTemplateCSV(t *testing.T) {
	data, err := TemplateCSV([]string{"farmer_id", "crop_name", "season"})
	if err != nil {
		t.Fatal(err)
	}
	got := strings.TrimSpace(string(data))
	if got != "farmer_id,crop_name,season" {
		t.Errorf("template = %q", got)
	}
}

func TestTemplateXLSXRoundTrip(t *testing.T) {
	columns := []string{"farmer_id", "item_name", "quantity"}
	data, err := TemplateXLSX("Assets", columns, map[string]bool{"farmer_id": true, "item_name": true})
	if err != nil {
		t.Fatal(err)
	}

	rows, err := Parse("assets_template.xlsx", data)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("template rows = %d, want 1 header row", len(rows))
	}
	for i, col := range columns {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
}

func TestTemplateXLSXLongSheetName(t *testing.T) {
	name := strings.Repeat("x", 40) // Excel caps sheet names at 31 chars
	if _, err := TemplateXLSX(name, []string{"a"}, nil); err != nil {
		t.Errorf("long sheet name: %v", err)
	}
}

func TestParseXLSXRejectsGarbage(t *testing.T) {
	if _, err := Parse("data.xlsx", []byte("not a zip archive")); err == nil {
		t.Error("expected error for invalid workbook")
	}
}
