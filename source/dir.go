package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// Dir lists matching files directly inside a local directory.
type Dir struct {
	root       string
	extensions []string
}

func NewDir(root string, extensions []string) *Dir {
	if root == "" {
		root = "."
	}
	return &Dir{root: root, extensions: normalizeExtensions(extensions)}
}

func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) Discover(ctx context.Context) ([]Location, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory %s does not exist", ErrNoSourcesFound, d.root)
		}
		return nil, fmt.Errorf("read directory %s: %w", d.root, err)
	}

	locations := make([]Location, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !hasExtension(entry.Name(), d.extensions) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		locations = append(locations, Location{
			Name:    entry.Name(),
			URI:     filepath.Join(d.root, entry.Name()),
			Size:    info.Size(),
			Version: strconv.FormatInt(info.ModTime().UnixNano(), 10),
		})
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSourcesFound, d.root)
	}

	sortLocations(locations)
	return locations, nil
}

func (d *Dir) Open(_ context.Context, loc Location) (io.ReadCloser, error) {
	file, err := os.Open(loc.URI)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", loc.Name, err)
	}
	return file, nil
}
