package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGitHubAPIURL = "https://api.github.com"

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type GitHubConfig struct {
	APIURL     string
	Owner      string
	Repo       string
	Branch     string
	Path       string
	Token      string
	Extensions []string
	HTTPClient httpDoer
}

// GitHub lists files of one repository directory through the contents API.
type GitHub struct {
	apiURL     string
	owner      string
	repo       string
	branch     string
	path       string
	token      string
	extensions []string
	httpClient httpDoer
}

type contentItem struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

func NewGitHub(cfg GitHubConfig) (*GitHub, error) {
	owner := strings.TrimSpace(cfg.Owner)
	repo := strings.TrimSpace(cfg.Repo)
	if owner == "" || repo == "" {
		return nil, errors.New("github owner and repo are required")
	}

	apiURL := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if apiURL == "" {
		apiURL = defaultGitHubAPIURL
	}
	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid github api URL %q", cfg.APIURL)
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &GitHub{
		apiURL:     apiURL,
		owner:      owner,
		repo:       repo,
		branch:     strings.TrimSpace(cfg.Branch),
		path:       strings.Trim(strings.TrimSpace(cfg.Path), "/"),
		token:      strings.TrimSpace(cfg.Token),
		extensions: normalizeExtensions(cfg.Extensions),
		httpClient: doer,
	}, nil
}

func (g *GitHub) Discover(ctx context.Context) ([]Location, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.apiURL, url.PathEscape(g.owner), url.PathEscape(g.repo), g.path)
	if g.branch != "" {
		endpoint += "?ref=" + url.QueryEscape(g.branch)
	}

	resp, err := g.get(ctx, endpoint, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s/%s/%s not found", ErrNoSourcesFound, g.owner, g.repo, g.path)
	}
	if err := checkStatus(resp, "list contents"); err != nil {
		return nil, err
	}

	var items []contentItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode contents listing: %w", err)
	}

	locations := make([]Location, 0, len(items))
	for _, item := range items {
		if item.Type != "file" || item.DownloadURL == "" || !hasExtension(item.Name, g.extensions) {
			continue
		}
		locations = append(locations, Location{
			Name:    item.Name,
			URI:     item.DownloadURL,
			Size:    item.Size,
			Version: item.SHA,
		})
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w in %s/%s/%s", ErrNoSourcesFound, g.owner, g.repo, g.path)
	}

	sortLocations(locations)
	return locations, nil
}

func (g *GitHub) Open(ctx context.Context, loc Location) (io.ReadCloser, error) {
	resp, err := g.get(ctx, loc.URI, "")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp, "download "+loc.Name); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func (g *GitHub) get(ctx context.Context, endpoint, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request GET %s: %w", endpoint, err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if g.token != "" {
		req.Header.Set("Authorization", "token "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request GET %s failed: %w", endpoint, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response, action string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s failed with status %d: %s", action, resp.StatusCode, strings.TrimSpace(string(body)))
}
