package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDirDiscover_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "b-x-2.csv", "id\n1\n")
	writeFile(t, dir, "a-x-1.CSV", "id\n1\n")
	writeFile(t, dir, "notes.txt", "ignore")
	if err := os.Mkdir(filepath.Join(dir, "nested.csv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	locations, err := NewDir(dir, []string{".csv"}).Discover(context.Background())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("expected 2 locations, got %d: %+v", len(locations), locations)
	}
	if locations[0].Name != "a-x-1.CSV" || locations[1].Name != "b-x-2.csv" {
		t.Fatalf("unexpected order: %+v", locations)
	}
	if locations[1].Size != 5 || locations[1].Version == "" {
		t.Fatalf("expected size and version to be set: %+v", locations[1])
	}
}

func TestDirDiscover_EmptyAndMissing(t *testing.T) {
	t.Parallel()

	_, err := NewDir(t.TempDir(), nil).Discover(context.Background())
	if !errors.Is(err, ErrNoSourcesFound) {
		t.Fatalf("expected ErrNoSourcesFound for empty dir, got %v", err)
	}

	_, err = NewDir(filepath.Join(t.TempDir(), "missing"), nil).Discover(context.Background())
	if !errors.Is(err, ErrNoSourcesFound) {
		t.Fatalf("expected ErrNoSourcesFound for missing dir, got %v", err)
	}
}

func TestDirOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a-b-c.csv", "id\n7\n")
	src := NewDir(dir, []string{"csv"})

	locations, err := src.Discover(context.Background())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	rc, err := src.Open(context.Background(), locations[0])
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "id\n7\n" {
		t.Fatalf("unexpected content: %q", content)
	}
}
