package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type AuditEntry struct {
	ID           int64
	Action       pgtype.Text
	TableKey     pgtype.Text
	Detail       pgtype.Text
	RowsAffected pgtype.Int4
	IPAddress    pgtype.Text
	UserAgent    pgtype.Text
	CreatedAt    pgtype.Timestamptz
}

type InsertAuditEntryParams struct {
	Action       pgtype.Text
	TableKey     pgtype.Text
	Detail       pgtype.Text
	RowsAffected pgtype.Int4
	IPAddress    pgtype.Text
	UserAgent    pgtype.Text
}

const insertAuditEntry = `
INSERT INTO audit_log (action, table_key, detail, rows_affected, ip_address, user_agent)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (q *Queries) InsertAuditEntry(ctx context.Context, arg InsertAuditEntryParams) error {
	_, err := q.db.Exec(ctx, insertAuditEntry,
		arg.Action, arg.TableKey, arg.Detail, arg.RowsAffected, arg.IPAddress, arg.UserAgent,
	)
	return err
}

const listAuditEntries = `
SELECT id, action, table_key, detail, rows_affected, ip_address, user_agent, created_at
FROM audit_log
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) ListAuditEntries(ctx context.Context, limit int32) ([]AuditEntry, error) {
	rows, err := q.db.Query(ctx, listAuditEntries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(
			&e.ID, &e.Action, &e.TableKey, &e.Detail,
			&e.RowsAffected, &e.IPAddress, &e.UserAgent, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type InsertImportRunParams struct {
	ImportID   pgtype.UUID
	TableKey   pgtype.Text
	FileName   pgtype.Text
	TotalRows  pgtype.Int4
	Inserted   pgtype.Int4
	Skipped    pgtype.Int4
	Duplicates pgtype.Int4
	Error      pgtype.Text
}

const insertImportRun = `
INSERT INTO import_runs (
    import_id, table_key, file_name, total_rows, inserted, skipped,
    duplicates, error
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (import_id) DO NOTHING
`

func (q *Queries) InsertImportRun(ctx context.Context, arg InsertImportRunParams) error {
	_, err := q.db.Exec(ctx, insertImportRun,
		arg.ImportID, arg.TableKey, arg.FileName, arg.TotalRows,
		arg.Inserted, arg.Skipped, arg.Duplicates, arg.Error,
	)
	return err
}

type ImportRun struct {
	ImportID   pgtype.UUID
	TableKey   pgtype.Text
	FileName   pgtype.Text
	TotalRows  pgtype.Int4
	Inserted   pgtype.Int4
	Skipped    pgtype.Int4
	Duplicates pgtype.Int4
	Error      pgtype.Text
	CreatedAt  pgtype.Timestamptz
}

type ListImportRunsParams struct {
	TableKey pgtype.Text
	Limit    int32
}

const listImportRuns = `
SELECT import_id, table_key, file_name, total_rows, inserted, skipped,
       duplicates, error, created_at
FROM import_runs
WHERE ($1::text IS NULL OR table_key = $1)
ORDER BY created_at DESC
LIMIT $2
`

func (q *Queries) ListImportRuns(ctx context.Context, arg ListImportRunsParams) ([]ImportRun, error) {
	rows, err := q.db.Query(ctx, listImportRuns, arg.TableKey, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(
			&r.ImportID, &r.TableKey, &r.FileName, &r.TotalRows,
			&r.Inserted, &r.Skipped, &r.Duplicates, &r.Error, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
