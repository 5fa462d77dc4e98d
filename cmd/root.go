/*
Copyright © 2026 The Worklog Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/KimDantic/Worklog/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Ingest, categorize, and explore worklog task exports.",
	Long: `
**********************************************
*              WORKLOG DASHBOARD             *
**********************************************

This CLI discovers worklog exports (CSV, Excel) in a directory, a GitHub
repository or an S3 bucket, tags every row with its origin, derives calendar
fields and hours, turns task text into lemmatized tokens and categories, and
serves or exports the result.

Supported input formats:
- CSV: .csv
- Excel: .xlsx, .xlsm
`,
	Example: `
  # Create configuration file
  worklog config create

  # Load all sources and print counters
  worklog load

  # Top 10 words of meeting tasks in March
  worklog words --top 10 --category meetings --from 2024-03-01 --to 2024-03-31

  # Export the enriched table
  worklog export --output ./worklogs.csv
  worklog export --output ./worklogs.xlsx
  worklog export --output ./worklogs.db

  # Serve the dashboard API
  worklog serve --port 8501
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.worklog.yaml, then ./.worklog.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".worklog")
	}

	// WORKLOG_SOURCE_DIR overrides source.dir, and so on.
	viper.SetEnvPrefix("WORKLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: worklog config create")
	}
}
