package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeTx records Exec calls so tests can assert on savepoint handling. The
// import pipeline only uses Exec directly; inserts go through the table
// definition's Insert func.
type fakeTx struct {
	execs []string
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.NewCommandTag(""), nil
}

func (f *fakeTx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return nil
}

// fakeResolver resolves farmer references against a fixed set.
type fakeResolver struct {
	known map[string]bool
}

func (r *fakeResolver) FilterExisting(ctx context.Context, ids []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	for _, id := range ids {
		if r.known[strings.ToLower(id)] {
			existing[strings.ToLower(id)] = true
		}
	}
	return existing, nil
}

// importFixture returns a child-table definition whose inserts are driven
// by the supplied func, plus a resolver that knows one farmer.
func importFixture(insert InsertFunc) (TableDefinition, *fakeResolver) {
	def := testChildDef()
	def.Info.Columns = []string{"id", "farmer_id", "crop_name", "season", "area_ha", "sowing_date"}
	def.BuildParams = func(row []string, headerIdx HeaderIndex) (any, error) {
		return row, nil
	}
	def.Insert = insert
	return def, &fakeResolver{known: map[string]bool{knownFarmer: true}}
}

func header() []string {
	return []string{"id", "farmer_id", "crop_name", "season", "area_ha", "sowing_date"}
}

func TestRunImportCleanFile(t *testing.T) {
	var inserted int
	def, resolver := importFixture(func(ctx context.Context, db DBTX, params any) (bool, error) {
		inserted++
		return true, nil
	})

	records := [][]string{
		header(),
		{"", knownFarmer, "Wheat", "rabi", "2.5", "15-11-2024"},
		{"", knownFarmer, "Cotton", "kharif", "1.2", "10-06-2024"},
	}

	tx := &fakeTx{}
	result := runImport(context.Background(), tx, def, records, resolver, nil)

	if result.Error != "" {
		t.Fatalf("unexpected batch error: %s", result.Error)
	}
	if result.Inserted != 2 || inserted != 2 {
		t.Errorf("Inserted = %d (calls %d), want 2", result.Inserted, inserted)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected row errors: %v", result.Errors)
	}

	// Each inserted row gets a savepoint and a release
	var savepoints, releases int
	for _, sql := range tx.execs {
		if strings.HasPrefix(sql, "SAVEPOINT") {
			savepoints++
		}
		if strings.HasPrefix(sql, "RELEASE") {
			releases++
		}
	}
	if savepoints != 2 || releases != 2 {
		t.Errorf("savepoints = %d, releases = %d, want 2 each", savepoints, releases)
	}
}

func TestRunImportBadRowDoesNotAbortBatch(t *testing.T) {
	var inserted int
	def, resolver := importFixture(func(ctx context.Context, db DBTX, params any) (bool, error) {
		inserted++
		return true, nil
	})

	records := [][]string{
		header(),
		{"", knownFarmer, "Wheat", "rabi", "2.5", "15-11-2024"},
		{"", knownFarmer, "Cotton", "kharif", "1.2", "someday"}, // bad date
		{"", knownFarmer, "Maize", "kharif", "0.8", ""},
		{"", knownFarmer, "Gram", "rabi", "", "01-12-2024"},
		{"", knownFarmer, "Jowar", "kharif", "1.0", "20-06-2024"},
	}

	result := runImport(context.Background(), &fakeTx{}, def, records, resolver, nil)

	if result.Error != "" {
		t.Fatalf("unexpected batch error: %s", result.Error)
	}
	if result.Inserted != 4 {
		t.Errorf("Inserted = %d, want 4", result.Inserted)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", result.Errors)
	}

	e := result.Errors[0]
	if e.Line != 3 {
		t.Errorf("error line = %d, want 3", e.Line)
	}
	if e.Column != "sowing_date" {
		t.Errorf("error column = %q, want sowing_date", e.Column)
	}
}

func TestRunImportUnresolvedFarmer(t *testing.T) {
	def, resolver := importFixture(func(ctx context.Context, db DBTX, params any) (bool, error) {
		return true, nil
	})

	records := [][]string{
		header(),
		{"", unknownFarmer, "Wheat", "", "", ""},
	}

	result := runImport(context.Background(), &fakeTx{}, def, records, resolver, nil)

	if result.Inserted != 0 || result.Skipped != 1 {
		t.Errorf("inserted=%d skipped=%d, want 0/1", result.Inserted, result.Skipped)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want one", result.Errors)
	}
	if result.Errors[0].Column != "farmer_id" {
		t.Errorf("error column = %q, want farmer_id", result.Errors[0].Column)
	}
	if !strings.Contains(result.Errors[0].Message, "no farmer exists") {
		t.Errorf("unexpected message: %s", result.Errors[0].Message)
	}
}

func TestRunImportStorageFailureRollsBackRow(t *testing.T) {
	call := 0
	def, resolver := importFixture(func(ctx context.Context, db DBTX, params any) (bool, error) {
		call++
		if call == 2 {
			return false, &pgconn.PgError{Code: "23502", Message: "null value in column"}
		}
		return true, nil
	})

	records := [][]string{
		header(),
		{"", knownFarmer, "Wheat", "", "", ""},
		{"", knownFarmer, "Cotton", "", "", ""},
		{"", knownFarmer, "Maize", "", "", ""},
	}

	tx := &fakeTx{}
	result := runImport(context.Background(), tx, def, records, resolver, nil)

	if result.Error != "" {
		t.Fatalf("one bad insert must not fail the batch: %s", result.Error)
	}
	if result.Inserted != 2 || result.Skipped != 1 {
		t.Errorf("inserted=%d skipped=%d, want 2/1", result.Inserted, result.Skipped)
	}

	var rolledBack bool
	for _, sql := range tx.execs {
		if strings.HasPrefix(sql, "ROLLBACK TO SAVEPOINT") {
			rolledBack = true
		}
	}
	if !rolledBack {
		t.Error("expected a rollback to the row's savepoint")
	}
	if len(result.Errors) != 1 || result.Errors[0].Line != 3 {
		t.Errorf("errors = %v, want one at line 3", result.Errors)
	}
}

func TestRunImportDuplicateCountsSeparately(t *testing.T) {
	call := 0
	def, resolver := importFixture(func(ctx context.Context, db DBTX, params any) (bool, error) {
		call++
		return call != 1, nil // first row is a duplicate skip
	})

	records := [][]string{
		header(),
		{"", knownFarmer, "Wheat", "", "", ""},
		{"", knownFarmer, "Cotton", "", "", ""},
	}

	result := runImport(context.Background(), &fakeTx{}, def, records, resolver, nil)

	if result.Duplicates != 1 || result.Inserted != 1 {
		t.Errorf("duplicates=%d inserted=%d, want 1/1", result.Duplicates, result.Inserted)
	}
	if len(result.Errors) != 0 {
		t.Errorf("duplicates are not errors: %v", result.Errors)
	}
}

func TestRunImportHeaderBelowTitleRows(t *testing.T) {
	def, resolver := importFixture(func(ctx context.Context, db DBTX, params any) (bool, error) {
		return true, nil
	})

	records := [][]string{
		{"Socio-Economic Survey 2024", "", "", "", "", ""},
		{"", "", "", "", "", ""},
		header(),
		{"", knownFarmer, "Wheat", "", "", ""},
	}

	result := runImport(context.Background(), &fakeTx{}, def, records, resolver, nil)

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", result.Inserted)
	}
	// Line numbers still count from the top of the file
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestRunImportEmptyRowsIgnored(t *testing.T) {
	def, resolver := importFixture(func(ctx context.Context, db DBTX, params any) (bool, error) {
		return true, nil
	})

	records := [][]string{
		header(),
		{"", knownFarmer, "Wheat", "", "", ""},
		{"", "", "", "", "", ""},
		{"", knownFarmer, "Cotton", "", "", ""},
	}

	result := runImport(context.Background(), &fakeTx{}, def, records, resolver, nil)

	if result.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2 after dropping the blank row", result.TotalRows)
	}
	if result.Inserted != 2 {
		t.Errorf("Inserted = %d, want 2", result.Inserted)
	}
}

func TestRunImportFailsOnMissingHeader(t *testing.T) {
	def, resolver := importFixture(func(ctx context.Context, db DBTX, params any) (bool, error) {
		return true, nil
	})

	records := [][]string{
		{"completely", "unrelated", "columns"},
		{"1", "2", "3"},
	}

	result := runImport(context.Background(), &fakeTx{}, def, records, resolver, nil)

	if result.Error == "" {
		t.Fatal("expected a batch error for missing header")
	}
	if !strings.Contains(result.Error, "header not found") {
		t.Errorf("unexpected error: %s", result.Error)
	}
}

func TestRunImportEmptyFile(t *testing.T) {
	def, resolver := importFixture(nil)

	result := runImport(context.Background(), &fakeTx{}, def, nil, resolver, nil)
	if result.Error != "empty file" {
		t.Errorf("Error = %q, want empty file", result.Error)
	}
}

func TestRunImportCancellation(t *testing.T) {
	def, resolver := importFixture(func(ctx context.Context, db DBTX, params any) (bool, error) {
		return true, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := [][]string{
		header(),
		{"", knownFarmer, "Wheat", "", "", ""},
	}

	result := runImport(ctx, &fakeTx{}, def, records, resolver, nil)
	if result.Error != "cancelled" {
		t.Errorf("Error = %q, want cancelled", result.Error)
	}
}

func TestRunImportProgressNotifications(t *testing.T) {
	def, resolver := importFixture(func(ctx context.Context, db DBTX, params any) (bool, error) {
		return true, nil
	})

	records := [][]string{
		header(),
		{"", knownFarmer, "Wheat", "", "", ""},
	}

	var phases []ImportPhase
	result := runImport(context.Background(), &fakeTx{}, def, records, resolver, func(p ImportProgress) {
		phases = append(phases, p.Phase)
	})

	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if len(phases) == 0 || phases[len(phases)-1] != PhaseComplete {
		t.Errorf("phases = %v, want to end with complete", phases)
	}
}

func TestApplyHeaderMapping(t *testing.T) {
	expected := header()

	t.Run("renames matching header row", func(t *testing.T) {
		records := [][]string{
			{"ID", "Farmer Code", "Crop", "season", "area_ha", "sowing_date"},
			{"", knownFarmer, "Wheat", "rabi", "2.5", "15-11-2024"},
		}
		mapping := map[string]string{
			"Farmer Code": "farmer_id",
			"Crop":        "crop_name",
		}

		out := ApplyHeaderMapping(records, mapping, expected)
		if out[0][1] != "farmer_id" || out[0][2] != "crop_name" {
			t.Errorf("header = %v, want renamed columns", out[0])
		}
		// Data rows stay untouched
		if out[1][2] != "Wheat" {
			t.Errorf("data row changed: %v", out[1])
		}
	})

	t.Run("nil mapping is a no-op", func(t *testing.T) {
		records := [][]string{header()}
		out := ApplyHeaderMapping(records, nil, expected)
		if &out[0][0] != &records[0][0] {
			t.Error("records were copied for a nil mapping")
		}
	})

	t.Run("no rename when result is not a valid header", func(t *testing.T) {
		records := [][]string{
			{"ID", "Owner", "Crop", "season", "area_ha", "sowing_date"},
		}
		// Renaming Crop alone still leaves Owner unmatched
		out := ApplyHeaderMapping(records, map[string]string{"Crop": "crop_name"}, expected)
		if out[0][2] != "Crop" {
			t.Errorf("header = %v, want original left alone", out[0])
		}
	})
}
