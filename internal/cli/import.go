package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agrisurvey/portal/internal/core"
	_ "github.com/agrisurvey/portal/internal/core/tables" // Register all tables
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var showErrors bool
	var mapFlags []string

	cmd := &cobra.Command{
		Use:   "import <table> <file>",
		Short: "Bulk-import a CSV, TSV, or XLSX file into a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapping, err := parseMapFlags(mapFlags)
			if err != nil {
				return err
			}
			return runImportCmd(cmd.Context(), args[0], args[1], mapping, showErrors)
		},
	}

	cmd.Flags().BoolVar(&showErrors, "show-errors", true, "Print per-row errors")
	cmd.Flags().StringArrayVar(&mapFlags, "map", nil, "Rename a file header to a table column, as header=column (repeatable)")
	return cmd
}

// parseMapFlags turns repeated header=column flags into a mapping.
func parseMapFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}

	mapping := make(map[string]string, len(flags))
	for _, f := range flags {
		from, to, ok := strings.Cut(f, "=")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("invalid --map value %q, expected header=column", f)
		}
		mapping[from] = to
	}
	return mapping, nil
}

func runImportCmd(ctx context.Context, tableKey, filePath string, mapping map[string]string, showErrors bool) error {
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DB_URL")
	}
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	service := core.NewService(pool, nil, 1)

	importID, err := service.StartImport(ctx, tableKey, filepath.Base(filePath), fileData, mapping)
	if err != nil {
		return err
	}

	result, err := service.ImportResult(importID)
	if err != nil {
		return err
	}

	if result.Error != "" {
		return fmt.Errorf("import failed: %s", result.Error)
	}

	fmt.Printf("rows: %d  inserted: %d  duplicates: %d  errors: %d\n",
		result.TotalRows, result.Inserted, result.Duplicates, len(result.Errors))

	if showErrors {
		for _, rowErr := range result.Errors {
			if rowErr.Column != "" {
				fmt.Printf("  line %d, %s: %s\n", rowErr.Line, rowErr.Column, rowErr.Message)
			} else {
				fmt.Printf("  line %d: %s\n", rowErr.Line, rowErr.Message)
			}
		}
	}

	return nil
}
