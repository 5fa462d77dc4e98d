package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KimDantic/Worklog/analysis"
	"github.com/KimDantic/Worklog/config"
	"github.com/KimDantic/Worklog/output"
	"github.com/KimDantic/Worklog/storage"
	"github.com/spf13/cobra"
)

const (
	formatSQLite    = "sqlite"
	exportTopTokens = 5
)

var (
	exportFormat  string
	exportOutput  string
	exportFilters filterFlags
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the enriched worklog table to CSV, Excel or SQLite",
	Long: `Build the enriched table and write the filtered records.

Formats:
- csv: one row per record, tokens space-joined, categories ";"-joined
- excel: the same table as a single sheet
- sqlite: records, record_categories and record_tokens tables; previous contents are replaced

Output format can be selected explicitly via --format or inferred from --output extension
(.csv, .xlsx, .db/.sqlite/.sqlite3).`,
	Example: `
  # Export everything to CSV
  worklog export --output ./worklogs.csv

  # Export one month of error work to Excel
  worklog export --output ./errors.xlsx --category errors --from 2024-03-01 --to 2024-03-31

  # Snapshot into SQLite
  worklog export --output ./worklogs.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		filter, err := exportFilters.filter()
		if err != nil {
			return err
		}
		format, err := resolveExportFormat(exportFormat, exportOutput)
		if err != nil {
			return err
		}

		rows, err := runExport(cmd.Context(), cfg, filter, format, exportOutput, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("Export completed. Rows: %d, Format: %s, File: %s\n", rows, format, exportOutput)
		return nil
	},
}

func resolveExportFormat(format, path string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		return output.FormatForPath(path)
	case "csv", formatSQLite:
		return format, nil
	case "excel", "xlsx":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (supported: csv, excel, sqlite)", format)
	}
}

// runExport writes the filtered table to path. SQLite exports also report
// what the store now holds to out.
func runExport(ctx context.Context, cfg *config.Config, filter analysis.Filter, format, path string, out io.Writer) (int, error) {
	rt, err := newRuntime(ctx, cfg, nil)
	if err != nil {
		return 0, err
	}
	defer rt.close()

	snapshot, err := rt.builder.Build(ctx)
	if err != nil {
		return 0, err
	}
	table := filter.Apply(snapshot.Table)

	if format == formatSQLite {
		store, err := storage.OpenSQLite(path)
		if err != nil {
			return 0, err
		}
		defer store.Close()
		if _, err := store.SaveSnapshot(table); err != nil {
			return 0, err
		}
		return summarizeStore(out, store, exportTopTokens)
	}

	writer, err := output.WriterForFormat(format)
	if err != nil {
		return 0, err
	}
	if err := writer.Write(path, table); err != nil {
		return 0, err
	}
	return table.Len(), nil
}

func summarizeStore(out io.Writer, store *storage.SQLiteStore, topTokens int) (int, error) {
	count, err := store.CountRecords()
	if err != nil {
		return 0, err
	}
	categories, err := store.CategoryCounts()
	if err != nil {
		return 0, err
	}
	tokens, err := store.TopTokens(topTokens)
	if err != nil {
		return 0, err
	}

	categoryParts := make([]string, 0, len(categories))
	for _, category := range categories {
		categoryParts = append(categoryParts, fmt.Sprintf("%s=%d", category.Category, category.Records))
	}
	tokenParts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		tokenParts = append(tokenParts, fmt.Sprintf("%s=%d", token.Token, token.Count))
	}
	fmt.Fprintf(out, "Stored records: %d\n", count)
	fmt.Fprintf(out, "Categories: %s\n", strings.Join(categoryParts, ", "))
	fmt.Fprintf(out, "Top tokens: %s\n", strings.Join(tokenParts, ", "))
	return count, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel|sqlite (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportFilters.register(exportCmd)

	_ = exportCmd.MarkFlagRequired("output")
}
