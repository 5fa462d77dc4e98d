package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeySourceKind         = "source.kind"
	KeySourceDir          = "source.dir"
	KeySourceExtensions   = "source.extensions"
	KeyGitHubAPIURL       = "source.github.api_url"
	KeyGitHubBranch       = "source.github.branch"
	KeyGitHubTokenEnv     = "source.github.token_env"
	KeyS3Region           = "source.s3.region"
	KeyTextTaxonomyFile   = "text.taxonomy_file"
	KeyTextStopwordsFile  = "text.stopwords_file"
	KeyWordsTopK          = "words.top_k"
	KeyServePort          = "serve.port"
	KeyServeCacheSize     = "serve.cache_size"
	KeyServeWatch         = "serve.watch"
	KeyLogMode            = "log.mode"
	defaultGitHubAPIURL   = "https://api.github.com"
	defaultGitHubTokenEnv = "GITHUB_TOKEN"
)

// Source kinds.
const (
	SourceDir    = "dir"
	SourceGitHub = "github"
	SourceS3     = "s3"
)

type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Text   TextConfig   `mapstructure:"text"`
	Words  WordsConfig  `mapstructure:"words"`
	Serve  ServeConfig  `mapstructure:"serve"`
	Log    LogConfig    `mapstructure:"log"`
}

type SourceConfig struct {
	Kind       string       `mapstructure:"kind" validate:"required,oneof=dir github s3"`
	Dir        string       `mapstructure:"dir"`
	Extensions []string     `mapstructure:"extensions" validate:"required,min=1,dive,required"`
	GitHub     GitHubConfig `mapstructure:"github"`
	S3         S3Config     `mapstructure:"s3"`
}

type GitHubConfig struct {
	APIURL   string `mapstructure:"api_url" validate:"omitempty,url"`
	Owner    string `mapstructure:"owner"`
	Repo     string `mapstructure:"repo"`
	Branch   string `mapstructure:"branch"`
	Path     string `mapstructure:"path"`
	TokenEnv string `mapstructure:"token_env"`
}

type S3Config struct {
	Bucket   string `mapstructure:"bucket"`
	Prefix   string `mapstructure:"prefix"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

type TextConfig struct {
	TaxonomyFile  string `mapstructure:"taxonomy_file"`
	StopwordsFile string `mapstructure:"stopwords_file"`
}

type WordsConfig struct {
	TopK int `mapstructure:"top_k" validate:"gte=1"`
}

type ServeConfig struct {
	Port      int  `mapstructure:"port" validate:"gte=1,lte=65535"`
	CacheSize int  `mapstructure:"cache_size" validate:"gte=1"`
	Watch     bool `mapstructure:"watch"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=development production dev prod"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# worklog configuration
source:
  # dir | github | s3
  kind: dir
  dir: "."
  extensions: [".csv"]
  github:
    api_url: "https://api.github.com"
    owner: ""
    repo: ""
    branch: "main"
    path: ""
    token_env: "GITHUB_TOKEN"
  s3:
    bucket: ""
    prefix: ""
    region: "us-east-1"
    endpoint: ""

text:
  # optional YAML taxonomy (fallback + ordered categories)
  taxonomy_file: ""
  # optional stopword list (.yaml with "stopwords:" or one word per line)
  stopwords_file: ""

words:
  top_k: 20

serve:
  port: 8501
  cache_size: 8
  watch: true

log:
  mode: development
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateSource(cfg.Source); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySourceKind, SourceDir)
	v.SetDefault(KeySourceDir, ".")
	v.SetDefault(KeySourceExtensions, []string{".csv"})
	v.SetDefault(KeyGitHubAPIURL, defaultGitHubAPIURL)
	v.SetDefault(KeyGitHubBranch, "main")
	v.SetDefault(KeyGitHubTokenEnv, defaultGitHubTokenEnv)
	v.SetDefault(KeyS3Region, "us-east-1")
	v.SetDefault(KeyTextTaxonomyFile, "")
	v.SetDefault(KeyTextStopwordsFile, "")
	v.SetDefault(KeyWordsTopK, 20)
	v.SetDefault(KeyServePort, 8501)
	v.SetDefault(KeyServeCacheSize, 8)
	v.SetDefault(KeyServeWatch, true)
	v.SetDefault(KeyLogMode, "development")
}

func validateSource(source SourceConfig) error {
	for i, ext := range source.Extensions {
		if !strings.HasPrefix(strings.TrimSpace(ext), ".") {
			return fmt.Errorf("validation failed: source.extensions[%d] %q must start with a dot", i, ext)
		}
	}

	switch strings.ToLower(strings.TrimSpace(source.Kind)) {
	case SourceDir:
		if strings.TrimSpace(source.Dir) == "" {
			return fmt.Errorf("validation failed: source.dir is required for kind %q", SourceDir)
		}
	case SourceGitHub:
		if strings.TrimSpace(source.GitHub.Owner) == "" || strings.TrimSpace(source.GitHub.Repo) == "" {
			return fmt.Errorf("validation failed: source.github requires owner and repo")
		}
	case SourceS3:
		if strings.TrimSpace(source.S3.Bucket) == "" {
			return fmt.Errorf("validation failed: source.s3.bucket is required for kind %q", SourceS3)
		}
	}
	return nil
}
