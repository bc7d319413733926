// Package tables registers all survey table definitions with the core
// registry. Import this package for its side effects to make every table
// available to the import service.
//
// The farmers table is the root of the schema; every other table hangs off
// it through a farmer_id column. Files therefore import cleanly only after
// the farmer profiles they reference are in place.
package tables

// Each table file uses init() to register its tables. This file exists to
// document the package.
