package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/KimDantic/Worklog/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active worklog config file in your editor ($VISUAL, then $EDITOR, then vi).

A missing config file is created from the example template first. The saved
file is validated after the editor exits.`,
	Example: `
  # Edit active config
  worklog config edit

  # Edit with an explicit editor
  EDITOR="code --wait" worklog config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := activeConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		created, err := writeConfigTemplate(path, "")
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("No config file found. Created example config at: %s\n", path)
		}

		editor, err := editorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"), path)
		if err != nil {
			return err
		}
		editor.Stdin, editor.Stdout, editor.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("run editor: %w", err)
		}

		cfg, err := validateConfigFile(path)
		if err != nil {
			return err
		}
		fmt.Printf("Configuration saved and validated: %s (source: %s)\n", path, describeSource(cfg.Source))
		return nil
	},
}

// editorCommand builds the editor invocation for path. The first non-blank of
// visual and editor wins; the value may carry arguments ("code --wait").
func editorCommand(visual, editor, path string) (*exec.Cmd, error) {
	value := "vi"
	for _, candidate := range []string{visual, editor} {
		if strings.TrimSpace(candidate) != "" {
			value = candidate
			break
		}
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return exec.Command(fields[0], append(fields[1:], path)...), nil
}

func validateConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, fmt.Errorf("config validation failed in %s: %w", path, err)
	}
	return cfg, nil
}

func describeSource(source config.SourceConfig) string {
	switch source.Kind {
	case config.SourceGitHub:
		return fmt.Sprintf("github %s/%s@%s", source.GitHub.Owner, source.GitHub.Repo, source.GitHub.Branch)
	case config.SourceS3:
		return fmt.Sprintf("s3://%s/%s", source.S3.Bucket, source.S3.Prefix)
	default:
		return "dir " + source.Dir
	}
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
