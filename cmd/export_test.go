package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KimDantic/Worklog/analysis"
	"github.com/KimDantic/Worklog/config"
	"github.com/KimDantic/Worklog/storage"
)

const testHeader = "id,user_first_name,user_last_name,task,started_at,minutes\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"worklog-team-1.csv": testHeader +
			"1,Ada,Lovelace,Fixed the database bug,2024-03-04 09:00:00,60\n" +
			"2,Ada,Lovelace,Database review,2024-03-05 10:00:00,30\n",
		"worklog-team-2.csv": testHeader +
			"1,Bob,Kay,Team meeting,2024-04-01 08:00:00,90\n",
		"worklog-team-3.csv": "",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	return &config.Config{
		Source: config.SourceConfig{Kind: config.SourceDir, Dir: dir, Extensions: []string{".csv"}},
		Words:  config.WordsConfig{TopK: 20},
		Serve:  config.ServeConfig{CacheSize: 2},
		Log:    config.LogConfig{Mode: "production"},
	}
}

func TestResolveExportFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		path    string
		want    string
		wantErr bool
	}{
		{path: "out.csv", want: "csv"},
		{path: "out.xlsx", want: "excel"},
		{path: "out.db", want: "sqlite"},
		{path: "out.sqlite3", want: "sqlite"},
		{format: "EXCEL", path: "out.bin", want: "excel"},
		{format: "sqlite", path: "out.bin", want: "sqlite"},
		{path: "out.txt", wantErr: true},
		{format: "parquet", path: "out.csv", wantErr: true},
	}

	for _, tt := range tests {
		got, err := resolveExportFormat(tt.format, tt.path)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q/%q: expected error", tt.format, tt.path)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q/%q: unexpected error: %v", tt.format, tt.path, err)
		}
		if got != tt.want {
			t.Fatalf("%q/%q: expected %q, got %q", tt.format, tt.path, tt.want, got)
		}
	}
}

func TestRunExport_CSVSkipsMalformedSource(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "out.csv")

	rows, err := runExport(context.Background(), cfg, analysis.Filter{}, "csv", path, io.Discard)
	if err != nil {
		t.Fatalf("run export: %v", err)
	}
	if rows != 3 {
		t.Fatalf("expected 3 rows, got %d", rows)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	text := string(content)
	if !strings.HasPrefix(text, "source_name,source_id,composite_id,") {
		t.Fatalf("unexpected header: %s", text)
	}
	if !strings.Contains(text, "2.csv-1") {
		t.Fatalf("expected composite id of the second source: %s", text)
	}
}

func TestRunExport_SQLiteWithFilter(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "out.db")

	var summary bytes.Buffer
	rows, err := runExport(context.Background(), cfg, analysis.Filter{Names: []string{"Ada Lovelace"}}, "sqlite", path, &summary)
	if err != nil {
		t.Fatalf("run export: %v", err)
	}
	if rows != 2 {
		t.Fatalf("expected 2 rows, got %d", rows)
	}
	want := "Stored records: 2\n" +
		"Categories: technology=2, actions=1, errors=1, miscellaneous=1\n" +
		"Top tokens: database=2, fixed=1, bug=1, review=1\n"
	if summary.String() != want {
		t.Fatalf("unexpected store summary:\n%s", summary.String())
	}

	store, err := storage.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	count, err := store.CountRecords()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 stored records, got %d", count)
	}
}

func TestRunWords(t *testing.T) {
	t.Parallel()

	counts, err := runWords(context.Background(), testConfig(t), analysis.Filter{}, 1)
	if err != nil {
		t.Fatalf("run words: %v", err)
	}
	if len(counts) != 1 || counts[0].Word != "database" || counts[0].Count != 2 {
		t.Fatalf("unexpected top word: %+v", counts)
	}
}
