package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// FieldType represents the expected data type for an imported column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
	FieldDecimal
	FieldInteger
	FieldFloat
	FieldBool
)

// FieldSpec defines validation rules for a single column.
type FieldSpec struct {
	Name       string              // Column header name, matched case-insensitively
	Type       FieldType           // Expected data type
	Required   bool                // Value must be present in every row
	EnumValues []string            // Valid values for FieldEnum type
	Normalizer func(string) string // Optional transformation applied before validation
}

// TableInfo contains identity and display information about a table.
type TableInfo struct {
	Key         string   // Unique identifier: "land_holdings"
	Label       string   // Display name: "Land Holdings"
	Description string   // One-line description shown in table listings
	Columns     []string // Expected header column names, in order
	IDColumn    string   // Primary-key column; auto-assigned when absent from a row
	ParentRef   string   // Farmer-reference column, empty for the root table
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// BuildParamsFunc builds database insert parameters from a validated row.
type BuildParamsFunc func(row []string, headerIdx HeaderIndex) (any, error)

// InsertFunc inserts a row. The bool result is false when the insert was
// skipped because a row with the same identifier already exists.
type InsertFunc func(ctx context.Context, db DBTX, params any) (bool, error)

// ResetFunc deletes all data from a table and returns the rows removed.
type ResetFunc func(ctx context.Context, db DBTX) (int64, error)

// TableDefinition contains everything needed to import into one table.
type TableDefinition struct {
	Info        TableInfo
	FieldSpecs  []FieldSpec
	BuildParams BuildParamsFunc
	Insert      InsertFunc
	Reset       ResetFunc
}

// HasParent reports whether rows of this table reference a farmer.
func (t TableDefinition) HasParent() bool {
	return t.Info.ParentRef != ""
}

// ImportPhase indicates the current stage of import processing.
type ImportPhase string

const (
	PhaseStarting   ImportPhase = "starting"
	PhaseReading    ImportPhase = "reading"
	PhaseValidating ImportPhase = "validating"
	PhaseInserting  ImportPhase = "inserting"
	PhaseComplete   ImportPhase = "complete"
	PhaseFailed     ImportPhase = "failed"
	PhaseCancelled  ImportPhase = "cancelled"
)

// ImportProgress represents the current state of an import operation.
type ImportProgress struct {
	ImportID   string      `json:"importId"`
	TableKey   string      `json:"tableKey"`
	Phase      ImportPhase `json:"phase"`
	FileName   string      `json:"fileName"`
	TotalRows  int         `json:"totalRows"`
	CurrentRow int         `json:"currentRow"`
	Inserted   int         `json:"inserted"`
	Skipped    int         `json:"skipped"`
	Error      string      `json:"error,omitempty"` // Non-empty if Phase is PhaseFailed
}

// Percent returns the progress as a percentage (0-100).
func (p ImportProgress) Percent() int {
	if p.TotalRows > 0 {
		return (p.CurrentRow * 100) / p.TotalRows
	}
	return 0
}

// RowError describes a rejected row: the 1-based line number in the source
// file, the offending column (empty for row-level failures such as an
// unresolved farmer reference), and the reason.
type RowError struct {
	Line    int      `json:"line"`
	Column  string   `json:"column,omitempty"`
	Message string   `json:"message"`
	Data    []string `json:"-"` // Raw row values, for the error-report export
}

// ImportResult contains the final result of an import operation.
type ImportResult struct {
	ImportID   string        `json:"importId"`
	TableKey   string        `json:"tableKey"`
	FileName   string        `json:"fileName"`
	TotalRows  int           `json:"totalRows"`
	Inserted   int           `json:"inserted"`
	Skipped    int           `json:"skipped"`
	Duplicates int           `json:"duplicates"`
	Errors     []RowError    `json:"errors"`
	Duration   time.Duration `json:"-"`
	Error      string        `json:"error,omitempty"` // Non-empty if the whole batch failed
}
