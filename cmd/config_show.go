package cmd

import (
	"fmt"
	"strings"

	"github.com/KimDantic/Worklog/config"
	"github.com/KimDantic/Worklog/taxonomy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  worklog config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, showing defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("source.kind: %s\n", cfg.Source.Kind)
		fmt.Printf("source.extensions: %v\n", cfg.Source.Extensions)
		switch cfg.Source.Kind {
		case config.SourceGitHub:
			fmt.Printf("source.github.api_url: %s\n", cfg.Source.GitHub.APIURL)
			fmt.Printf("source.github.owner: %s\n", cfg.Source.GitHub.Owner)
			fmt.Printf("source.github.repo: %s\n", cfg.Source.GitHub.Repo)
			fmt.Printf("source.github.branch: %s\n", cfg.Source.GitHub.Branch)
			fmt.Printf("source.github.path: %s\n", cfg.Source.GitHub.Path)
			fmt.Printf("source.github.token_env: %s\n", cfg.Source.GitHub.TokenEnv)
		case config.SourceS3:
			fmt.Printf("source.s3.bucket: %s\n", cfg.Source.S3.Bucket)
			fmt.Printf("source.s3.prefix: %s\n", cfg.Source.S3.Prefix)
			fmt.Printf("source.s3.region: %s\n", cfg.Source.S3.Region)
			fmt.Printf("source.s3.endpoint: %s\n", cfg.Source.S3.Endpoint)
		default:
			fmt.Printf("source.dir: %s\n", cfg.Source.Dir)
		}
		fmt.Printf("text.taxonomy_file: %s\n", orBuiltin(cfg.Text.TaxonomyFile))
		fmt.Printf("text.stopwords_file: %s\n", orBuiltin(cfg.Text.StopwordsFile))
		if tax, err := loadTaxonomy(cfg.Text); err != nil {
			fmt.Println("Invalid taxonomy:", err)
		} else {
			fmt.Print(describeTaxonomy(tax))
		}
		fmt.Printf("words.top_k: %d\n", cfg.Words.TopK)
		fmt.Printf("serve.port: %d\n", cfg.Serve.Port)
		fmt.Printf("serve.cache_size: %d\n", cfg.Serve.CacheSize)
		fmt.Printf("serve.watch: %t\n", cfg.Serve.Watch)
		fmt.Printf("log.mode: %s\n", cfg.Log.Mode)
	},
}

// describeTaxonomy lists each category with its keyword count, in match order.
func describeTaxonomy(tax *taxonomy.Taxonomy) string {
	var b strings.Builder
	for _, category := range tax.Categories() {
		fmt.Fprintf(&b, "text.category: %s (%d keywords)\n", category.Name, len(category.Keywords))
	}
	fmt.Fprintf(&b, "text.fallback: %s\n", tax.Fallback())
	return b.String()
}

func orBuiltin(path string) string {
	if path == "" {
		return "(built-in)"
	}
	return path
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
