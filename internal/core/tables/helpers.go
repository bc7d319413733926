package tables

import (
	"fmt"
	"strings"

	"github.com/agrisurvey/portal/internal/core"
	"github.com/jackc/pgx/v5/pgtype"
)

func getCell(row []string, idx core.HeaderIndex, name string) string {
	pos, ok := idx[strings.ToLower(name)]
	if !ok || pos >= len(row) {
		return ""
	}
	return core.CleanCell(row[pos])
}

// idOrNew returns the row's own identifier. Files exported from the old
// system carry ids, fresh field data leaves the column blank and gets one
// assigned. A supplied id that is not a UUID rejects the row.
func idOrNew(row []string, idx core.HeaderIndex, name string) (pgtype.UUID, error) {
	raw := getCell(row, idx, name)
	if raw == "" {
		return core.NewPgUUID(), nil
	}
	id := core.ToPgUUID(raw)
	if !id.Valid {
		return id, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// farmerRef parses the farmer_id cell. Existence is validated earlier
// against the resolved farmer set; here the value only has to be a UUID.
func farmerRef(row []string, idx core.HeaderIndex) (pgtype.UUID, error) {
	raw := getCell(row, idx, "farmer_id")
	id := core.ToPgUUID(raw)
	if !id.Valid {
		return id, fmt.Errorf("invalid farmer_id: %q", raw)
	}
	return id, nil
}

// canonicalSeasons maps loose season spellings to the forms used across
// reports. Unrecognized values pass through unchanged.
var canonicalSeasons = map[string]string{
	"kharif":     "Kharif",
	"khariff":    "Kharif",
	"rabi":       "Rabi",
	"rabbi":      "Rabi",
	"summer":     "Summer",
	"zaid":       "Summer",
	"annual":     "Annual",
	"whole year": "Annual",
}

// NormalizeSeason canonicalizes season names.
func NormalizeSeason(s string) string {
	if v, ok := canonicalSeasons[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v
	}
	return s
}
