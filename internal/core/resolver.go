package core

import (
	"context"
	"strings"

	"github.com/agrisurvey/portal/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
)

// ParentResolver resolves farmer identifiers to existing records. The
// import pipeline batches all identifiers in a file into one call so
// validation observes a single consistent snapshot.
type ParentResolver interface {
	// FilterExisting returns the subset of ids that refer to existing
	// farmers. Keys of the result are lowercased identifier strings.
	FilterExisting(ctx context.Context, ids []string) (map[string]bool, error)
}

// dbParentResolver resolves farmer references against the database.
type dbParentResolver struct {
	db DBTX
}

// NewParentResolver returns a resolver backed by the given connection or
// transaction. Resolving on the import transaction keeps reference checks
// consistent with the commit.
func NewParentResolver(db DBTX) ParentResolver {
	return &dbParentResolver{db: db}
}

func (r *dbParentResolver) FilterExisting(ctx context.Context, ids []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	// Malformed identifiers can never resolve; only valid UUIDs hit the
	// database.
	uuids := make([]pgtype.UUID, 0, len(ids))
	for _, id := range ids {
		if u := ToPgUUID(id); u.Valid {
			uuids = append(uuids, u)
		}
	}
	if len(uuids) == 0 {
		return existing, nil
	}

	found, err := database.New(r.db).FilterExistingFarmers(ctx, uuids)
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		existing[strings.ToLower(PgUUIDToString(u))] = true
	}
	return existing, nil
}

// collectParentIDs gathers the distinct farmer identifiers appearing in
// the reference column of the given rows.
func collectParentIDs(rows [][]string, headerIdx HeaderIndex, parentRef string) []string {
	pos, ok := headerIdx[strings.ToLower(parentRef)]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var ids []string
	for _, row := range rows {
		if pos >= len(row) {
			continue
		}
		id := CleanCell(row[pos])
		if id == "" {
			continue
		}
		key := strings.ToLower(id)
		if !seen[key] {
			seen[key] = true
			ids = append(ids, id)
		}
	}
	return ids
}
