// Package core provides the business logic for survey data imports.
//
// This package is the heart of the portal, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// the surveyctl CLI, or tests without modification.
//
// # Table Registry
//
// Importable tables are registered at init time using [Register]. Each
// [TableDefinition] contains everything needed to process one target table:
// field specs for validation, the parent-reference column (every child table
// references a farmer), and the database operations.
//
//	core.Register(TableDefinition{
//	    Info: TableInfo{Key: "assets", Label: "Assets", ParentRef: "farmer_id"},
//	    FieldSpecs: []FieldSpec{
//	        {Name: "farmer_id", Required: true, Type: FieldText},
//	        {Name: "item_name", Required: true, Type: FieldText},
//	        {Name: "quantity", Type: FieldInteger},
//	    },
//	    BuildParams: buildAssetParams,
//	    Insert: insertAsset,
//	})
//
// # Import Pipeline
//
// An uploaded file flows through parse, validate, and commit stages:
//
//  1. The file is parsed into rows (internal/tabular).
//  2. Headers are matched case-insensitively against the table's specs.
//  3. Farmer references are resolved in one batched query.
//  4. Each row is validated and inserted inside a single transaction per
//     file, with a savepoint per row so one bad row never aborts its
//     siblings. Validation failures and rejected inserts are collected as
//     (row, column, message) entries; only the failing row is rolled back.
//
// Rows that supply their own identifier are inserted with
// ON CONFLICT DO NOTHING, so re-importing the same file does not duplicate
// records. Rows without an identifier are assigned a fresh UUID.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with support codes
// using [MapError]: DB001-DB006 for database errors, VAL001-VAL007 for
// validation, FILE001-FILE005 for file problems, IMP001-IMP004 for import
// session issues.
package core
