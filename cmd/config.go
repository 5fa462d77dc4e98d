package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KimDantic/Worklog/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfigName = ".worklog.yaml"

var configCreateSourceDir string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage worklog configuration file values.",
	Long: `Create, edit, display, and delete the worklog configuration file.

The configuration stores where sources live and how task text is processed:
- source.kind (dir | github | s3) and the matching source.dir / source.github / source.s3 block
- source.extensions
- text.taxonomy_file / text.stopwords_file
- words.top_k, serve.port, serve.cache_size, serve.watch, log.mode`,
	Example: `
  # Create default config in $HOME/.worklog.yaml
  worklog config create

  # Show active config and source file
  worklog config show

  # Open active config in editor (creates example if missing)
  worklog config edit

  # Delete active config file
  worklog config delete
`,
}

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the example template also used by "config edit".

An existing file is never overwritten.`,
	Example: `
  # Create default config at $HOME/.worklog.yaml
  worklog config create

  # Point the new config at a directory of exports
  worklog config create --source-dir ./exports
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := activeConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := writeConfigTemplate(path, configCreateSourceDir)
		if err != nil {
			return err
		}
		if !created {
			fmt.Printf("Config file already exists at: %s\n", path)
			return nil
		}
		fmt.Printf("New config file created at: %s\n", path)
		return nil
	},
}

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by worklog.

Fails when no configuration file was loaded.`,
	Example: `
  # Delete active config
  worklog config delete

  # Delete config at a custom path
  worklog --configFile ./custom-worklog.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			return fmt.Errorf("no configuration file found")
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("delete configuration file: %w", err)
		}
		fmt.Printf("Configuration file deleted: %s\n", path)
		return nil
	},
}

// activeConfigPath picks the --configFile flag, then the file viper loaded,
// then $HOME/.worklog.yaml.
func activeConfigPath(flagValue, loaded string) (string, error) {
	for _, candidate := range []string{flagValue, loaded} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigName), nil
}

// writeConfigTemplate writes the example config to path unless a file is
// already there. A non-empty sourceDir replaces the template's source.dir.
func writeConfigTemplate(path, sourceDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("check config file: %w", err)
	}

	content := config.ExampleYAML()
	if dir := strings.TrimSpace(sourceDir); dir != "" {
		content = strings.Replace(content, `dir: "."`, "dir: "+strconv.Quote(dir), 1)
	}
	if _, err := config.ValidateYAMLContent([]byte(content)); err != nil {
		return false, fmt.Errorf("render config template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return false, fmt.Errorf("write config template: %w", err)
	}
	return true, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCreateCmd, configDeleteCmd)

	configCreateCmd.Flags().StringVar(&configCreateSourceDir, "source-dir", "", "Directory holding the worklog exports (sets source.dir)")
}
