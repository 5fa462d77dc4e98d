package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/KimDantic/Worklog/analysis"
	"github.com/KimDantic/Worklog/config"
	"github.com/KimDantic/Worklog/output"
	"github.com/spf13/cobra"
)

var (
	wordsTop     int
	wordsOutput  string
	wordsFormat  string
	wordsFilters filterFlags
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Show the most frequent task tokens",
	Long: `Count lemmatized task tokens across the filtered records and print the top K.

Ties keep the order in which the tokens first appear. Use --output to also write
the table to CSV or Excel.`,
	Example: `
  # Top 20 tokens (words.top_k from config)
  worklog words

  # Top 5 tokens of one person's meeting tasks
  worklog words --top 5 --category meetings --name "Ada Lovelace"

  # Write the table to Excel
  worklog words --output ./top-words.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		filter, err := wordsFilters.filter()
		if err != nil {
			return err
		}
		top := wordsTop
		if top <= 0 {
			top = cfg.Words.TopK
		}

		counts, err := runWords(cmd.Context(), cfg, filter, top)
		if err != nil {
			return err
		}

		for i, count := range counts {
			fmt.Printf("%3d. %-24s %d\n", i+1, count.Word, count.Count)
		}

		if strings.TrimSpace(wordsOutput) == "" {
			return nil
		}
		format := wordsFormat
		if strings.TrimSpace(format) == "" {
			format, err = output.FormatForPath(wordsOutput)
			if err != nil {
				return err
			}
		}
		if err := output.WriteWordCounts(wordsOutput, format, counts); err != nil {
			return err
		}
		fmt.Printf("Word counts written. Rows: %d, Format: %s, File: %s\n", len(counts), format, wordsOutput)
		return nil
	},
}

func runWords(ctx context.Context, cfg *config.Config, filter analysis.Filter, top int) ([]analysis.WordCount, error) {
	rt, err := newRuntime(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	defer rt.close()

	snapshot, err := rt.builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.TopWords(filter.Apply(snapshot.Table), top), nil
}

func init() {
	rootCmd.AddCommand(wordsCmd)

	wordsCmd.Flags().IntVar(&wordsTop, "top", 0, "Number of tokens to show (default: words.top_k from config)")
	wordsCmd.Flags().StringVarP(&wordsOutput, "output", "o", "", "Optional output file for the table")
	wordsCmd.Flags().StringVarP(&wordsFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	wordsFilters.register(wordsCmd)
}
