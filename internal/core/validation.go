package core

// validation.go provides row-level validation before insertion.
//
// Validation happens at three levels:
//  1. Header validation: required columns must be present
//  2. Cell validation: each value is checked against its FieldSpec
//  3. Reference validation: the farmer-reference column must name an
//     existing farmer (resolved in a batched lookup beforehand)
//
// The RowValidator can return all errors (for preview UI) or just the
// first error (for efficient batch commits). Errors carry the field name,
// invalid value, and a human-readable message.

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field/column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult contains the result of validating a row.
type ValidationResult struct {
	Valid  bool              // True if all validations passed
	Errors []ValidationError // List of validation errors (empty if Valid)
}

// RowValidator validates rows against a table's field specifications and,
// for child tables, against the set of known farmer identifiers.
type RowValidator struct {
	specs     []FieldSpec
	headerIdx HeaderIndex
	parentRef string
	parents   map[string]bool // Lowercased farmer ids that exist; nil disables the check
}

// NewRowValidator creates a validator for the given table definition and
// header index. parents holds resolved farmer identifiers for the file's
// reference column; pass nil for the root table.
func NewRowValidator(def TableDefinition, headerIdx HeaderIndex, parents map[string]bool) *RowValidator {
	return &RowValidator{
		specs:     def.FieldSpecs,
		headerIdx: headerIdx,
		parentRef: def.Info.ParentRef,
		parents:   parents,
	}
}

// ValidateRow validates a single row and returns all validation errors.
// This is useful for preview UI that shows every problem at once.
func (v *RowValidator) ValidateRow(row []string) ValidationResult {
	result := ValidationResult{Valid: true}

	for _, spec := range v.specs {
		if err := v.checkSpec(row, spec); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, *err)
		}
	}

	if err := v.checkParent(row); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, *err)
	}

	return result
}

// ValidateRowFirst validates a row and returns the first error only.
// More efficient for batch commits where one failure rejects the row.
func (v *RowValidator) ValidateRowFirst(row []string) *ValidationError {
	for _, spec := range v.specs {
		if err := v.checkSpec(row, spec); err != nil {
			return err
		}
	}
	return v.checkParent(row)
}

// checkSpec validates one cell against its spec. Returns nil when valid.
func (v *RowValidator) checkSpec(row []string, spec FieldSpec) *ValidationError {
	pos, ok := v.headerIdx[strings.ToLower(spec.Name)]
	if !ok || pos >= len(row) {
		if spec.Required {
			return &ValidationError{Field: spec.Name, Message: "missing required column"}
		}
		return nil
	}

	raw := CleanCell(row[pos])

	if raw == "" {
		if spec.Required {
			return &ValidationError{Field: spec.Name, Message: "required field is empty"}
		}
		return nil
	}

	if spec.Normalizer != nil {
		raw = spec.Normalizer(raw)
	}

	if err := ValidateCell(raw, spec); err != nil {
		return &ValidationError{Field: spec.Name, Value: raw, Message: err.Error()}
	}
	return nil
}

// checkParent validates the farmer-reference cell against the resolved
// parent set. Returns nil for root tables or when the reference resolves.
func (v *RowValidator) checkParent(row []string) *ValidationError {
	if v.parentRef == "" || v.parents == nil {
		return nil
	}

	pos, ok := v.headerIdx[strings.ToLower(v.parentRef)]
	if !ok || pos >= len(row) {
		// Missing reference column is reported by the required-field check.
		return nil
	}

	raw := CleanCell(row[pos])
	if raw == "" {
		return nil
	}

	if !ToPgUUID(raw).Valid {
		return &ValidationError{
			Field:   v.parentRef,
			Value:   raw,
			Message: "not a valid farmer identifier",
		}
	}

	if !v.parents[strings.ToLower(raw)] {
		return &ValidationError{
			Field:   v.parentRef,
			Value:   raw,
			Message: "no farmer exists with this identifier",
		}
	}
	return nil
}

// ValidateCell validates a single non-empty cell value against a field
// specification. Returns nil if valid, or an error describing the problem.
func ValidateCell(value string, spec FieldSpec) error {
	switch spec.Type {
	case FieldDecimal:
		if !ToPgNumeric(value).Valid {
			return fmt.Errorf("invalid number format")
		}
	case FieldInteger:
		if !ToPgInt4(value).Valid {
			return fmt.Errorf("invalid whole number")
		}
	case FieldFloat:
		if !ToPgFloat8(value).Valid {
			return fmt.Errorf("invalid decimal value")
		}
	case FieldDate:
		if !ToPgDate(value).Valid {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD or DD-MM-YYYY)")
		}
	case FieldBool:
		if !ToPgBool(value).Valid {
			return fmt.Errorf("must be yes/no, true/false, or 1/0")
		}
	case FieldEnum:
		if len(spec.EnumValues) > 0 {
			for _, ev := range spec.EnumValues {
				if strings.EqualFold(ev, value) {
					return nil
				}
			}
			return fmt.Errorf("value must be one of: %s", strings.Join(spec.EnumValues, ", "))
		}
	}
	return nil
}

// ValidateHeaders validates that all required columns exist in the file's
// headers. Returns a mapping from column name to index, or an error
// listing the missing columns.
func ValidateHeaders(headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if spec.Required {
			key := strings.ToLower(spec.Name)
			if _, ok := idx[key]; !ok {
				missing = append(missing, spec.Name)
			}
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

// FieldTypeName returns a human-readable name for a field type, used in
// table listings and template descriptions.
func FieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldEnum:
		return "code"
	case FieldDate:
		return "date"
	case FieldDecimal:
		return "number"
	case FieldInteger:
		return "whole number"
	case FieldFloat:
		return "decimal"
	case FieldBool:
		return "yes/no"
	default:
		return "value"
	}
}
