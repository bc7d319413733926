package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agrisurvey/portal/internal/core"
	_ "github.com/agrisurvey/portal/internal/core/tables" // Register all tables
	"github.com/agrisurvey/portal/internal/tabular"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newTablesCmd() *cobra.Command {
	var counts bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List importable tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			var service *core.Service
			if counts {
				dbURL := os.Getenv("DATABASE_URL")
				if dbURL == "" {
					dbURL = os.Getenv("DB_URL")
				}
				if dbURL == "" {
					return fmt.Errorf("--counts needs DATABASE_URL")
				}
				pool, err := pgxpool.New(cmd.Context(), dbURL)
				if err != nil {
					return fmt.Errorf("connect: %w", err)
				}
				defer pool.Close()
				service = core.NewService(pool, nil, 1)
			}

			for _, def := range core.All() {
				ref := ""
				if def.HasParent() {
					ref = fmt.Sprintf(" (references farmers via %s)", def.Info.ParentRef)
				}
				line := fmt.Sprintf("%-28s %s%s", def.Info.Key, def.Info.Label, ref)
				if service != nil {
					n, err := service.TableRowCount(cmd.Context(), def.Info.Key)
					if err != nil {
						return err
					}
					line += fmt.Sprintf("  [%d rows]", n)
				}
				fmt.Println(line)
				fmt.Printf("%-28s %s\n", "", def.Info.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&counts, "counts", false, "Include current row counts (needs DATABASE_URL)")
	return cmd
}

func newTemplateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template <table>",
		Short: "Write an empty entry template for a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tableKey := args[0]
			def, ok := core.Get(tableKey)
			if !ok {
				return fmt.Errorf("unknown table: %s", tableKey)
			}

			if output == "" {
				output = tableKey + "_template.csv"
			}

			var data []byte
			var err error
			if strings.EqualFold(filepath.Ext(output), ".xlsx") {
				required := make(map[string]bool)
				for _, spec := range def.FieldSpecs {
					if spec.Required {
						required[spec.Name] = true
					}
				}
				data, err = tabular.TemplateXLSX(def.Info.Label, def.Info.Columns, required)
			} else {
				data, err = tabular.TemplateCSV(def.Info.Columns)
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}

			fmt.Printf("wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (extension selects csv or xlsx)")
	return cmd
}
