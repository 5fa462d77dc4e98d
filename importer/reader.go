package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// Row is one data row of a source. Cells beyond the end of a short row are
// absent from Values.
type Row struct {
	RowNumber int
	Values    map[string]string
}

// Sheet is the parsed content of one source: its header and data rows.
type Sheet struct {
	Columns []string
	Rows    []Row
}

type Reader interface {
	Read(r io.Reader) (*Sheet, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// ReaderForName picks a reader from the file extension of name.
func ReaderForName(name string) (Reader, error) {
	extension := strings.TrimPrefix(filepath.Ext(name), ".")
	if extension == "" {
		return nil, fmt.Errorf("unsupported file extension for %s", name)
	}
	return ReaderForFormat(extension)
}

// normalizeHeaders trims header cells and suffixes repeated names with
// ".1", ".2", ... so every column stays addressable.
func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]int, len(headers))
	for i, header := range headers {
		name := strings.TrimSpace(header)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			name = "unnamed_" + strconv.Itoa(i)
		}
		if count, ok := seen[name]; ok {
			seen[name] = count + 1
			name = name + "." + strconv.Itoa(count+1)
		} else {
			seen[name] = 0
		}
		out[i] = name
	}
	return out
}

func rowValues(columns []string, cells []string) map[string]string {
	values := make(map[string]string, len(columns))
	for i, column := range columns {
		if i >= len(cells) {
			break
		}
		values[column] = cells[i]
	}
	return values
}
