package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/KimDantic/Worklog/analysis"
)

var wordCountHeaders = []string{"word", "count"}

// WriteWordCounts writes a top-words table as CSV or Excel.
func WriteWordCounts(path, format string, counts []analysis.WordCount) error {
	rows := make([][]string, 0, len(counts))
	for _, count := range counts {
		rows = append(rows, []string{count.Word, strconv.Itoa(count.Count)})
	}

	switch normalizeFormat(format) {
	case "csv":
		return writeRowsCSV(path, wordCountHeaders, rows)
	case "excel", "xlsx":
		return writeExcel(path, wordCountsSheet, wordCountHeaders, rows)
	default:
		return fmt.Errorf("unsupported word count output format: %s", format)
	}
}

func writeRowsCSV(path string, headers []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return file.Close()
}
