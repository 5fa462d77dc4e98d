// Package source discovers worklog exports and opens them for reading.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/KimDantic/Worklog/config"
)

var ErrNoSourcesFound = errors.New("no sources found")

// Location identifies one discovered source. Size and Version change whenever
// the content does, which is what build fingerprints rely on.
type Location struct {
	Name    string
	URI     string
	Size    int64
	Version string
}

type Source interface {
	Discover(ctx context.Context) ([]Location, error)
	Open(ctx context.Context, loc Location) (io.ReadCloser, error)
}

// New builds the Source selected by cfg.Kind.
func New(ctx context.Context, cfg config.SourceConfig) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", config.SourceDir:
		return NewDir(cfg.Dir, cfg.Extensions), nil
	case config.SourceGitHub:
		token := ""
		if env := strings.TrimSpace(cfg.GitHub.TokenEnv); env != "" {
			token = strings.TrimSpace(os.Getenv(env))
		}
		return NewGitHub(GitHubConfig{
			APIURL:     cfg.GitHub.APIURL,
			Owner:      cfg.GitHub.Owner,
			Repo:       cfg.GitHub.Repo,
			Branch:     cfg.GitHub.Branch,
			Path:       cfg.GitHub.Path,
			Token:      token,
			Extensions: cfg.Extensions,
		})
	case config.SourceS3:
		return NewS3(ctx, S3Config{
			Bucket:     cfg.S3.Bucket,
			Prefix:     cfg.S3.Prefix,
			Region:     cfg.S3.Region,
			Endpoint:   cfg.S3.Endpoint,
			Extensions: cfg.Extensions,
		})
	default:
		return nil, fmt.Errorf("unsupported source kind: %s", cfg.Kind)
	}
}

func normalizeExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	if len(out) == 0 {
		out = append(out, ".csv")
	}
	return out
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, candidate := range extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

func sortLocations(locations []Location) {
	sort.Slice(locations, func(i, j int) bool {
		if locations[i].Name == locations[j].Name {
			return locations[i].URI < locations[j].URI
		}
		return locations[i].Name < locations[j].Name
	})
}
