package core

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxFileSize is the maximum allowed upload size (50MB).
var MaxFileSize int64 = 50 * 1024 * 1024

// MaxHeaderSearchRows is the maximum number of rows to scan for the header.
var MaxHeaderSearchRows = 20

// ContextCheckInterval is how often to check for context cancellation.
var ContextCheckInterval = 100

// progressInterval is how often row-level progress is reported.
var progressInterval = 100

// runImport validates and inserts the parsed records within tx. The caller
// owns the transaction: runImport never commits or rolls it back, only
// reports through the result whether a commit makes sense (Error == "").
//
// Each row gets its own savepoint so a storage failure on one row leaves
// the rest of the batch intact. Rows rejected by validation never reach
// the database at all.
func runImport(ctx context.Context, tx DBTX, def TableDefinition, records [][]string, resolver ParentResolver, notify func(ImportProgress)) *ImportResult {
	startTime := time.Now()
	result := &ImportResult{TableKey: def.Info.Key}

	progress := ImportProgress{TableKey: def.Info.Key}
	report := func(phase ImportPhase) {
		if notify == nil {
			return
		}
		progress.Phase = phase
		progress.Inserted = result.Inserted
		progress.Skipped = result.Skipped
		progress.Error = result.Error
		notify(progress)
	}

	fail := func(msg string) *ImportResult {
		result.Error = msg
		result.Duration = time.Since(startTime)
		report(PhaseFailed)
		return result
	}

	if len(records) == 0 {
		return fail("empty file")
	}

	// Find header row
	headerLine := findHeaderRow(records, def.Info.Columns)
	if headerLine < 0 {
		return fail(fmt.Sprintf("header not found (expected columns: %s)", strings.Join(def.Info.Columns, ", ")))
	}

	headerIdx, err := ValidateHeaders(records[headerLine], def.FieldSpecs)
	if err != nil {
		return fail(err.Error())
	}

	dataRows := records[headerLine+1:]
	if len(dataRows) == 0 {
		return fail("no data rows after header")
	}

	result.TotalRows = len(dataRows)
	progress.TotalRows = len(dataRows)

	// Resolve farmer references for the whole file in one query, on the
	// import transaction so validation sees the same snapshot the inserts
	// will run against.
	var parents map[string]bool
	if def.HasParent() {
		report(PhaseValidating)
		ids := collectParentIDs(dataRows, headerIdx, def.Info.ParentRef)
		parents, err = resolver.FilterExisting(ctx, ids)
		if err != nil {
			return fail(fmt.Sprintf("resolve farmer references: %v", err))
		}
	}

	validator := NewRowValidator(def, headerIdx, parents)

	report(PhaseInserting)

	for i, row := range dataRows {
		lineNum := headerLine + i + 2 // 1-indexed, after header

		if i%ContextCheckInterval == 0 {
			if ctx.Err() != nil {
				result.Error = "cancelled"
				result.Duration = time.Since(startTime)
				report(PhaseCancelled)
				return result
			}
		}

		if isEmptyRow(row) {
			result.TotalRows--
			progress.TotalRows = result.TotalRows
			continue
		}

		if vres := validator.ValidateRow(row); !vres.Valid {
			for _, verr := range vres.Errors {
				result.Errors = append(result.Errors, RowError{
					Line:    lineNum,
					Column:  verr.Field,
					Message: verr.Message,
					Data:    row,
				})
			}
			result.Skipped++
			continue
		}

		params, err := def.BuildParams(row, headerIdx)
		if err != nil {
			result.Errors = append(result.Errors, RowError{
				Line:    lineNum,
				Message: err.Error(),
				Data:    row,
			})
			result.Skipped++
			continue
		}

		// Savepoint per row: a rejected insert must not poison the
		// transaction for the rows that follow.
		savepoint := fmt.Sprintf("sp_%d", i)
		if _, err := tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
			return fail(fmt.Sprintf("create savepoint: %v", err))
		}

		inserted, err := def.Insert(ctx, tx, params)
		if err != nil {
			_, _ = tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint)
			result.Errors = append(result.Errors, RowError{
				Line:    lineNum,
				Message: MapError(err).Message,
				Data:    row,
			})
			result.Skipped++
			continue
		}
		_, _ = tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint)

		if inserted {
			result.Inserted++
		} else {
			result.Duplicates++
		}

		progress.CurrentRow = i + 1
		if i%progressInterval == 0 {
			report(PhaseInserting)
		}
	}

	result.Duration = time.Since(startTime)
	progress.CurrentRow = result.TotalRows
	report(PhaseComplete)
	return result
}

// ApplyHeaderMapping renames file headers to the table's column names
// using a caller-supplied mapping of file header to table column. Keys
// match case-insensitively. Only the row that becomes a valid header after
// renaming is rewritten, so data cells that happen to equal a mapped
// header are left alone. A nil or empty mapping returns records unchanged.
func ApplyHeaderMapping(records [][]string, mapping map[string]string, expected []string) [][]string {
	if len(mapping) == 0 || len(records) == 0 {
		return records
	}

	norm := make(map[string]string, len(mapping))
	for from, to := range mapping {
		norm[strings.ToLower(CleanCell(from))] = to
	}

	maxRows := MaxHeaderSearchRows
	if len(records) < maxRows {
		maxRows = len(records)
	}

	for i := 0; i < maxRows; i++ {
		renamed := false
		row := make([]string, len(records[i]))
		copy(row, records[i])
		for j, cell := range row {
			if to, ok := norm[strings.ToLower(CleanCell(cell))]; ok {
				row[j] = to
				renamed = true
			}
		}
		if renamed && headersMatch(row, expected) {
			out := make([][]string, len(records))
			copy(out, records)
			out[i] = row
			return out
		}
	}
	return records
}

// findHeaderRow scans the first MaxHeaderSearchRows records for a row whose
// leading cells match the expected column names. Survey enumerators often
// leave title or notes rows above the real header.
func findHeaderRow(records [][]string, expected []string) int {
	maxRows := MaxHeaderSearchRows
	if len(records) < maxRows {
		maxRows = len(records)
	}

	for i := 0; i < maxRows; i++ {
		if headersMatch(records[i], expected) {
			return i
		}
	}
	return -1
}

func headersMatch(row, expected []string) bool {
	if len(row) < len(expected) {
		return false
	}
	for i := range expected {
		if !strings.EqualFold(CleanCell(row[i]), CleanCell(expected[i])) {
			return false
		}
	}
	return true
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// SanitizeUTF8 replaces invalid byte sequences with the Unicode
// replacement character. Field exports occasionally arrive in mixed
// encodings.
func SanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
