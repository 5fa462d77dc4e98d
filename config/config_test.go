package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_ExampleIsValid(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("expected example config to validate: %v", err)
	}
	if cfg.Source.Kind != SourceDir || cfg.Source.Dir != "." {
		t.Fatalf("unexpected source: %+v", cfg.Source)
	}
	if len(cfg.Source.Extensions) != 1 || cfg.Source.Extensions[0] != ".csv" {
		t.Fatalf("unexpected extensions: %v", cfg.Source.Extensions)
	}
	if cfg.Words.TopK != 20 || cfg.Serve.Port != 8501 || cfg.Serve.CacheSize != 8 {
		t.Fatalf("unexpected defaults: words=%+v serve=%+v", cfg.Words, cfg.Serve)
	}
}

func TestValidateYAMLContent_DefaultsApplyToEmptyContent(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte("{}\n"))
	if err != nil {
		t.Fatalf("expected empty config to validate with defaults: %v", err)
	}
	if cfg.Source.GitHub.APIURL != "https://api.github.com" || cfg.Source.GitHub.TokenEnv != "GITHUB_TOKEN" {
		t.Fatalf("unexpected github defaults: %+v", cfg.Source.GitHub)
	}
	if !cfg.Serve.Watch {
		t.Fatalf("expected watch to default to true")
	}
}

func TestValidateYAMLContent_RejectsUnsupportedKind(t *testing.T) {
	t.Parallel()

	content := []byte(`source:
  kind: "ftp"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for unsupported source kind")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_GitHubRequiresOwnerAndRepo(t *testing.T) {
	t.Parallel()

	content := []byte(`source:
  kind: github
  github:
    owner: "romero220"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for missing repo")
	}
	if !strings.Contains(err.Error(), "owner and repo") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_S3RequiresBucket(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte("source:\n  kind: s3\n")); err == nil {
		t.Fatalf("expected validation error for missing bucket")
	}
}

func TestValidateYAMLContent_ExtensionMustStartWithDot(t *testing.T) {
	t.Parallel()

	content := []byte(`source:
  extensions: ["csv"]
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for extension without dot")
	}
	if !strings.Contains(err.Error(), "must start with a dot") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsZeroTopK(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte("words:\n  top_k: 0\n")); err == nil {
		t.Fatalf("expected validation error for top_k 0")
	}
}
