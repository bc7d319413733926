package core

import (
	"context"
	"time"

	db "github.com/agrisurvey/portal/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionImport       AuditAction = "import"
	ActionTableReset   AuditAction = "table_reset"
	ActionFarmerDelete AuditAction = "farmer_delete"
)

// AuditEntry is a single audit trail entry.
type AuditEntry struct {
	ID           int64     `json:"id"`
	Action       string    `json:"action"`
	TableKey     string    `json:"tableKey"`
	Detail       string    `json:"detail,omitempty"`
	RowsAffected int       `json:"rowsAffected"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	UserAgent    string    `json:"userAgent,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit entry.
type AuditLogParams struct {
	Action       AuditAction
	TableKey     string
	Detail       string
	RowsAffected int
	IPAddress    string
	UserAgent    string
}

// LogAudit records an audit entry. Audit failures are logged but never
// fail the operation that triggered them.
func (s *Service) LogAudit(ctx context.Context, params AuditLogParams) {
	err := db.New(s.pool).InsertAuditEntry(ctx, db.InsertAuditEntryParams{
		Action:       ToPgText(string(params.Action)),
		TableKey:     ToPgText(params.TableKey),
		Detail:       ToPgText(params.Detail),
		RowsAffected: pgtype.Int4{Int32: int32(params.RowsAffected), Valid: true},
		IPAddress:    ToPgText(params.IPAddress),
		UserAgent:    ToPgText(params.UserAgent),
	})
	if err != nil {
		s.logger.Warn("audit entry not recorded",
			"action", params.Action,
			"table", params.TableKey,
			"error", err)
	}
}

// ImportRun summarizes one completed import for the history listing.
type ImportRun struct {
	ImportID   string    `json:"importId"`
	TableKey   string    `json:"tableKey"`
	FileName   string    `json:"fileName,omitempty"`
	TotalRows  int       `json:"totalRows"`
	Inserted   int       `json:"inserted"`
	Skipped    int       `json:"skipped"`
	Duplicates int       `json:"duplicates"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ImportHistory returns past import runs, newest first. An empty tableKey
// returns runs across all tables.
func (s *Service) ImportHistory(ctx context.Context, tableKey string, limit int) ([]ImportRun, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := db.New(s.pool).ListImportRuns(ctx, db.ListImportRunsParams{
		TableKey: ToPgText(tableKey),
		Limit:    int32(limit),
	})
	if err != nil {
		return nil, err
	}

	runs := make([]ImportRun, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, ImportRun{
			ImportID:   PgUUIDToString(row.ImportID),
			TableKey:   row.TableKey.String,
			FileName:   row.FileName.String,
			TotalRows:  int(row.TotalRows.Int32),
			Inserted:   int(row.Inserted.Int32),
			Skipped:    int(row.Skipped.Int32),
			Duplicates: int(row.Duplicates.Int32),
			Error:      row.Error.String,
			CreatedAt:  row.CreatedAt.Time,
		})
	}
	return runs, nil
}

// AuditTrail returns the most recent audit entries, newest first.
func (s *Service) AuditTrail(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := db.New(s.pool).ListAuditEntries(ctx, int32(limit))
	if err != nil {
		return nil, err
	}

	entries := make([]AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, AuditEntry{
			ID:           row.ID,
			Action:       row.Action.String,
			TableKey:     row.TableKey.String,
			Detail:       row.Detail.String,
			RowsAffected: int(row.RowsAffected.Int32),
			IPAddress:    row.IPAddress.String,
			UserAgent:    row.UserAgent.String,
			CreatedAt:    row.CreatedAt.Time,
		})
	}
	return entries, nil
}
