package core

import (
	"context"
	"fmt"
	"strings"
)

// CreateChildRecord inserts one row into a child survey table for an
// existing farmer. values maps column names (case-insensitive) to cell
// values, the same strings a bulk-import row carries, so coercion and
// validation match the file path exactly. The farmer-reference column is
// filled from farmerID regardless of what values contains.
//
// Validation problems are returned with a nil error so callers can report
// them field by field.
func (s *Service) CreateChildRecord(ctx context.Context, farmerID, tableKey string, values map[string]string) ([]ValidationError, error) {
	def, ok := Get(tableKey)
	if !ok {
		return nil, fmt.Errorf("unknown table: %s", tableKey)
	}
	if !def.HasParent() {
		return nil, fmt.Errorf("table %s is not a per-farmer table", tableKey)
	}

	headerIdx := MakeHeaderIndex(def.Info.Columns)
	row := make([]string, len(def.Info.Columns))
	for name, value := range values {
		if pos, ok := headerIdx[strings.ToLower(CleanCell(name))]; ok {
			row[pos] = value
		}
	}
	row[headerIdx[strings.ToLower(def.Info.ParentRef)]] = farmerID

	parents, err := NewParentResolver(s.pool).FilterExisting(ctx, []string{farmerID})
	if err != nil {
		return nil, fmt.Errorf("resolve farmer reference: %w", err)
	}

	if vres := NewRowValidator(def, headerIdx, parents).ValidateRow(row); !vres.Valid {
		return vres.Errors, nil
	}

	params, err := def.BuildParams(row, headerIdx)
	if err != nil {
		return nil, err
	}

	inserted, err := def.Insert(ctx, s.pool, params)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("record already exists")
	}

	s.logger.Info("record created", "table", tableKey, "farmerId", farmerID)
	return nil, nil
}
