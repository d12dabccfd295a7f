// Package main provides the datathieves command: the idle game in a
// terminal, its HTTP API and save management.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	saveDir     string
	saveID      string
	databaseURL string
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:          "datathieves",
	Short:        "Data Thieves idle game",
	Long:         "Data Thieves is an idle game: collect Data, buy automatic Data sources and upgrade them.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&saveDir, "save-dir", "", "directory for JSON saves and logs")
	rootCmd.PersistentFlags().StringVar(&saveID, "save-id", "", "save slot to use")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "store saves in PostgreSQL instead of JSON files")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
