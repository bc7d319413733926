package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapErrorSQLState(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		wantCode string
	}{
		{"unique violation", "23505", "DB001"},
		{"foreign key violation", "23503", "DB002"},
		{"not null violation", "23502", "DB005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.code, Message: "constraint failed"}
			got := MapError(pgErr)
			if got.Code != tt.wantCode {
				t.Errorf("MapError code = %s, want %s", got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapErrorWrappedPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	wrapped := fmt.Errorf("insert row: %w", pgErr)

	got := MapError(wrapped)
	if got.Code != "DB001" {
		t.Errorf("wrapped PgError code = %s, want DB001", got.Code)
	}
}

func TestMapErrorPatterns(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"duplicate key", errors.New("ERROR: duplicate key value violates unique constraint"), "DB001"},
		{"foreign key", errors.New("violates foreign key constraint farmers_fk"), "DB002"},
		{"connection", errors.New("dial tcp: connection refused"), "DB003"},
		{"deadlock", errors.New("deadlock detected"), "DB004"},
		{"invalid date", errors.New("invalid date format (use YYYY-MM-DD or DD-MM-YYYY)"), "VAL001"},
		{"invalid number", errors.New("invalid whole number"), "VAL002"},
		{"required empty", errors.New("required field is empty"), "VAL003"},
		{"missing column", errors.New("missing required column"), "VAL004"},
		{"enum", errors.New("value must be one of: kharif, rabi"), "VAL005"},
		{"unknown farmer", errors.New("no farmer exists with this identifier"), "VAL006"},
		{"bool", errors.New("must be yes/no, true/false, or 1/0"), "VAL007"},
		{"file size", errors.New("file exceeds 50MB limit"), "FILE001"},
		{"header missing", errors.New("header not found (expected columns: x)"), "FILE003"},
		{"empty file", errors.New("empty file"), "FILE005"},
		{"cancelled", errors.New("context canceled"), "IMP001"},
		{"busy", ErrTooManyImports, "IMP002"},
		{"not found", errors.New("import not found"), "IMP003"},
		{"unknown", errors.New("something completely novel"), "GEN001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%q) code = %s, want %s", tt.err, got.Code, tt.wantCode)
			}
			if got.Message == "" {
				t.Error("mapped message must not be empty")
			}
		})
	}
}

func TestUserErrorError(t *testing.T) {
	e := UserError{Code: "DB001", Message: "A record with this identifier already exists"}
	want := "DB001: A record with this identifier already exists"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}
