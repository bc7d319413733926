package core

// errors.go maps technical errors to user-facing messages with support
// codes. Enumerators quote the code to support staff for faster diagnosis.
//
// Codes are grouped by category:
//
//	DB001-DB006   database errors (duplicates, constraints, connections)
//	VAL001-VAL007 validation errors (formats, missing columns, references)
//	FILE001-FILE005 file errors (size, format, headers)
//	IMP001-IMP004 import session errors (cancelled, busy, not found)

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserError is a user-facing error message with a support code and a
// suggested corrective action.
type UserError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

func (e UserError) Error() string {
	return e.Code + ": " + e.Message
}

// errorPattern maps a substring of a technical error to a UserError.
type errorPattern struct {
	patterns []string
	result   UserError
}

var errorPatterns = []errorPattern{
	// Database errors
	{[]string{"duplicate key", "violates unique"}, UserError{
		Code:    "DB001",
		Message: "A record with this identifier already exists",
		Action:  "Download the error report to review duplicates",
	}},
	{[]string{"violates foreign key", "foreign key constraint"}, UserError{
		Code:    "DB002",
		Message: "Referenced farmer does not exist",
		Action:  "Import the farmer profiles file first",
	}},
	{[]string{"connection refused", "connection reset", "broken pipe"}, UserError{
		Code:    "DB003",
		Message: "Unable to reach the database",
		Action:  "Please try again in a few moments",
	}},
	{[]string{"deadlock"}, UserError{
		Code:    "DB004",
		Message: "The database was busy with conflicting operations",
		Action:  "Please try again",
	}},
	{[]string{"violates not-null"}, UserError{
		Code:    "DB005",
		Message: "A required value was missing",
		Action:  "Ensure all required columns have values",
	}},
	{[]string{"timeout", "timed out"}, UserError{
		Code:    "DB006",
		Message: "The operation timed out",
		Action:  "Try a smaller file or try again later",
	}},

	// Validation errors
	{[]string{"invalid date"}, UserError{
		Code:    "VAL001",
		Message: "Invalid date format detected",
		Action:  "Use YYYY-MM-DD or DD-MM-YYYY",
	}},
	{[]string{"invalid number", "invalid whole number", "invalid decimal"}, UserError{
		Code:    "VAL002",
		Message: "Invalid number format detected",
		Action:  "Remove currency symbols and use plain digits",
	}},
	{[]string{"required field is empty"}, UserError{
		Code:    "VAL003",
		Message: "A required field is empty",
		Action:  "Ensure all required columns have values",
	}},
	{[]string{"missing required column"}, UserError{
		Code:    "VAL004",
		Message: "A required column is missing from the file",
		Action:  "Download the template to see the expected headers",
	}},
	{[]string{"must be one of"}, UserError{
		Code:    "VAL005",
		Message: "Value is not in the allowed list",
		Action:  "Check the allowed codes for this column",
	}},
	{[]string{"no farmer exists", "not a valid farmer identifier"}, UserError{
		Code:    "VAL006",
		Message: "Row references a farmer that is not registered",
		Action:  "Import or create the farmer record first",
	}},
	{[]string{"must be yes/no"}, UserError{
		Code:    "VAL007",
		Message: "Invalid yes/no value",
		Action:  "Use yes/no, true/false, or 1/0",
	}},

	// File errors
	{[]string{"file too large", "exceeds"}, UserError{
		Code:    "FILE001",
		Message: "The file exceeds the size limit",
		Action:  "Split the file into smaller chunks",
	}},
	{[]string{"parse", "unsupported file"}, UserError{
		Code:    "FILE002",
		Message: "The file could not be read",
		Action:  "Upload a CSV, TSV, or XLSX file with a header row",
	}},
	{[]string{"header not found", "missing required columns"}, UserError{
		Code:    "FILE003",
		Message: "The expected column headers were not found",
		Action:  "Download the template and match its headers",
	}},
	{[]string{"no file provided"}, UserError{
		Code:    "FILE004",
		Message: "No file was selected",
		Action:  "Choose a file to upload",
	}},
	{[]string{"empty file", "no data rows"}, UserError{
		Code:    "FILE005",
		Message: "The uploaded file has no data rows",
		Action:  "Upload a file with at least one data row below the header",
	}},

	// Import session errors
	{[]string{"cancelled", "context canceled"}, UserError{
		Code:    "IMP001",
		Message: "The import was cancelled",
		Action:  "Start a new import when ready",
	}},
	{[]string{"too many concurrent imports", "busy"}, UserError{
		Code:    "IMP002",
		Message: "Too many imports are in progress",
		Action:  "Wait a moment and try again",
	}},
	{[]string{"import not found"}, UserError{
		Code:    "IMP003",
		Message: "Import session not found",
		Action:  "The session may have expired; start a new import",
	}},
	{[]string{"context deadline exceeded"}, UserError{
		Code:    "IMP004",
		Message: "The import timed out",
		Action:  "Try a smaller file or check your connection",
	}},
}

// pgErrorCodes maps PostgreSQL SQLSTATE codes straight to user errors,
// ahead of substring matching.
var pgErrorCodes = map[string]UserError{
	"23505": {
		Code:    "DB001",
		Message: "A record with this identifier already exists",
		Action:  "Download the error report to review duplicates",
	},
	"23503": {
		Code:    "DB002",
		Message: "Referenced farmer does not exist",
		Action:  "Import the farmer profiles file first",
	},
	"23502": {
		Code:    "DB005",
		Message: "A required value was missing",
		Action:  "Ensure all required columns have values",
	},
}

// MapError converts a technical error into a user-facing UserError.
// Unrecognized errors get a generic message with code GEN001.
func MapError(err error) UserError {
	if err == nil {
		return UserError{}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if ue, ok := pgErrorCodes[pgErr.Code]; ok {
			return ue
		}
	}

	msg := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		for _, p := range ep.patterns {
			if strings.Contains(msg, p) {
				return ep.result
			}
		}
	}

	return UserError{
		Code:    "GEN001",
		Message: "An unexpected error occurred",
		Action:  "Please try again; quote code GEN001 if it persists",
	}
}
