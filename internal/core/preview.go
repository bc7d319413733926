package core

// preview.go performs read-only analysis of an upload before anything is
// committed. Enumerators use it to see how many rows will land, which
// rows are repeats of earlier imports, and which will be rejected.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agrisurvey/portal/internal/tabular"
	"github.com/jackc/pgx/v5/pgtype"
)

// PreviewSummary contains the summary counts for an import preview.
type PreviewSummary struct {
	TotalRows       int `json:"totalRows"`
	NewRows         int `json:"newRows"`
	DuplicateRows   int `json:"duplicateRows"` // Already present, will be skipped
	ErrorRows       int `json:"errorRows"`
	DuplicateInFile int `json:"duplicateInFile"`
	UnresolvedRefs  int `json:"unresolvedRefs"` // Rows naming an unknown farmer
}

// RowPreview represents a single row for preview display.
type RowPreview struct {
	LineNumber int               `json:"lineNumber"`
	RowID      string            `json:"rowId,omitempty"`
	Values     map[string]string `json:"values"`
}

// ErrorPreview represents a row with validation errors.
type ErrorPreview struct {
	LineNumber int               `json:"lineNumber"`
	Values     map[string]string `json:"values"`
	Errors     []string          `json:"errors"`
}

// DuplicatePreview lists ids that appear on multiple lines of the file.
type DuplicatePreview struct {
	RowID       string `json:"rowId"`
	LineNumbers []int  `json:"lineNumbers"`
}

// PreviewResponse is the complete result of import preview analysis.
type PreviewResponse struct {
	TableKey         string             `json:"tableKey"`
	Summary          PreviewSummary     `json:"summary"`
	NewRowSamples    []RowPreview       `json:"newRowSamples"`
	ErrorSamples     []ErrorPreview     `json:"errorSamples"`
	DuplicateSamples []DuplicatePreview `json:"duplicateSamples"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
}

// Sample limits
const (
	maxNewRowSamples    = 10
	maxErrorSamples     = 20
	maxDuplicateSamples = 10
)

// AnalyzeImport validates every row of the file without writing anything
// and reports what an import would do. mapping optionally renames file
// headers to table columns, the same way StartImport applies it.
func (s *Service) AnalyzeImport(ctx context.Context, tableKey, fileName string, fileData []byte, mapping map[string]string) (*PreviewResponse, error) {
	startTime := time.Now()

	def, ok := Get(tableKey)
	if !ok {
		return nil, fmt.Errorf("unknown table: %s", tableKey)
	}

	records, err := tabular.Parse(fileName, SanitizeUTF8(fileData))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", fileName, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	records = ApplyHeaderMapping(records, mapping, def.Info.Columns)

	headerLine := findHeaderRow(records, def.Info.Columns)
	if headerLine < 0 {
		return nil, fmt.Errorf("header not found (expected columns: %s)", strings.Join(def.Info.Columns, ", "))
	}

	headerIdx, err := ValidateHeaders(records[headerLine], def.FieldSpecs)
	if err != nil {
		return nil, err
	}

	dataRows := records[headerLine+1:]
	if len(dataRows) == 0 {
		return nil, fmt.Errorf("no data rows after header")
	}

	var parents map[string]bool
	if def.HasParent() {
		ids := collectParentIDs(dataRows, headerIdx, def.Info.ParentRef)
		parents, err = NewParentResolver(s.pool).FilterExisting(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve farmer references: %w", err)
		}
	}

	validator := NewRowValidator(def, headerIdx, parents)
	parentCol := strings.ToLower(def.Info.ParentRef)

	resp := &PreviewResponse{TableKey: tableKey}

	type goodRow struct {
		lineNumber int
		rowID      string
		values     map[string]string
	}
	var goodRows []goodRow
	seenIDs := make(map[string][]int)

	for i, row := range dataRows {
		lineNum := headerLine + i + 2

		if isEmptyRow(row) {
			continue
		}
		resp.Summary.TotalRows++

		values := extractRowValues(row, headerIdx, def)

		vres := validator.ValidateRow(row)
		if !vres.Valid {
			resp.Summary.ErrorRows++
			msgs := make([]string, 0, len(vres.Errors))
			for _, verr := range vres.Errors {
				msgs = append(msgs, verr.Error())
				if verr.Field != "" && strings.EqualFold(verr.Field, parentCol) {
					resp.Summary.UnresolvedRefs++
				}
			}
			if len(resp.ErrorSamples) < maxErrorSamples {
				resp.ErrorSamples = append(resp.ErrorSamples, ErrorPreview{
					LineNumber: lineNum,
					Values:     values,
					Errors:     msgs,
				})
			}
			continue
		}

		rowID := extractRowID(row, headerIdx, def.Info.IDColumn)
		if rowID != "" {
			seenIDs[rowID] = append(seenIDs[rowID], lineNum)
		}

		goodRows = append(goodRows, goodRow{lineNumber: lineNum, rowID: rowID, values: values})
	}

	for id, lines := range seenIDs {
		if len(lines) > 1 {
			resp.Summary.DuplicateInFile += len(lines) - 1
			if len(resp.DuplicateSamples) < maxDuplicateSamples {
				resp.DuplicateSamples = append(resp.DuplicateSamples, DuplicatePreview{
					RowID:       id,
					LineNumbers: lines,
				})
			}
		}
	}

	// Batch check which supplied ids already exist in the target table.
	existing := make(map[string]bool)
	if len(seenIDs) > 0 {
		ids := make([]pgtype.UUID, 0, len(seenIDs))
		for id := range seenIDs {
			if u := ToPgUUID(id); u.Valid {
				ids = append(ids, u)
			}
		}
		existing, err = s.filterExistingIDs(ctx, def.Info.Key, def.Info.IDColumn, ids)
		if err != nil {
			return nil, fmt.Errorf("check existing ids: %w", err)
		}
	}

	for _, gr := range goodRows {
		if gr.rowID != "" && existing[strings.ToLower(gr.rowID)] {
			resp.Summary.DuplicateRows++
			continue
		}
		resp.Summary.NewRows++
		if len(resp.NewRowSamples) < maxNewRowSamples {
			resp.NewRowSamples = append(resp.NewRowSamples, RowPreview{
				LineNumber: gr.lineNumber,
				RowID:      gr.rowID,
				Values:     gr.values,
			})
		}
	}

	resp.ProcessingTimeMs = time.Since(startTime).Milliseconds()
	return resp, nil
}

// filterExistingIDs returns the subset of ids already present in the
// table, lowercased for case-insensitive lookup.
func (s *Service) filterExistingIDs(ctx context.Context, tableKey, idColumn string, ids []pgtype.UUID) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(ids) == 0 {
		return existing, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ANY($1)",
		quoteIdentifier(idColumn), quoteIdentifier(tableKey), quoteIdentifier(idColumn))

	rows, err := s.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[strings.ToLower(PgUUIDToString(id))] = true
	}
	return existing, rows.Err()
}

// extractRowValues extracts column values as a string map for display.
func extractRowValues(row []string, headerIdx HeaderIndex, def TableDefinition) map[string]string {
	values := make(map[string]string)
	for _, col := range def.Info.Columns {
		pos, ok := headerIdx[strings.ToLower(col)]
		if ok && pos < len(row) {
			values[col] = CleanCell(row[pos])
		}
	}
	return values
}

func extractRowID(row []string, headerIdx HeaderIndex, idColumn string) string {
	pos, ok := headerIdx[strings.ToLower(idColumn)]
	if !ok || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}
