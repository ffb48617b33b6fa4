// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cord-explorer CLI: `clean`
// prepares the cleaned dataset and `serve` runs the interactive explorer.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cord-explorer CLI.
var rootCmd = &cobra.Command{
	Use:   "cord-explorer",
	Short: "Clean and explore CORD-19 paper metadata",
	Long: `cord-explorer prepares CORD-19 paper metadata and serves an interactive
explorer over it.

Run "clean" once to turn metadata_sample.csv into cleaned_cord_metadata.csv,
then "serve" to browse publications per year, the top journals of a selected
year, and the most common words in that year's titles.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cord-explorer.yaml or ~/.config/cord-explorer/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cord-explorer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cord-explorer"))
		}
	}

	// cleaner.input is read from CORD_EXPLORER_CLEANER_INPUT.
	viper.SetEnvPrefix("CORD_EXPLORER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags returns a PreRunE that binds viper keys to the command's flags,
// so each key can also come from the config file or the environment.
// Binding at run time lets several commands share a key.
func bindFlags(keys map[string]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for key, flag := range keys {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return fmt.Errorf("binding flag %s: %w", flag, err)
			}
		}
		return nil
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
