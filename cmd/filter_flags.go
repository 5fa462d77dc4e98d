package cmd

import (
	"fmt"

	"github.com/KimDantic/Worklog/analysis"
	"github.com/spf13/cobra"
)

// filterFlags are the record filters shared by words and export.
type filterFlags struct {
	categories []string
	names      []string
	from       string
	to         string
	search     string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.categories, "category", nil, "Keep records with this category (repeatable)")
	cmd.Flags().StringArrayVar(&f.names, "name", nil, "Keep records of this full name (repeatable)")
	cmd.Flags().StringVar(&f.from, "from", "", "Keep records started on or after this day, format YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "Keep records started on or before this day, format YYYY-MM-DD")
	cmd.Flags().StringVar(&f.search, "search", "", "Keep records whose task contains this text (case-insensitive)")
}

func (f filterFlags) filter() (analysis.Filter, error) {
	from, err := analysis.ParseDay(f.from)
	if err != nil {
		return analysis.Filter{}, fmt.Errorf("invalid --from value: %w", err)
	}
	to, err := analysis.ParseDay(f.to)
	if err != nil {
		return analysis.Filter{}, fmt.Errorf("invalid --to value: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return analysis.Filter{}, fmt.Errorf("invalid range: --from must be <= --to")
	}

	return analysis.Filter{
		Categories: f.categories,
		From:       from,
		To:         to,
		Search:     f.search,
		Names:      f.names,
	}, nil
}
