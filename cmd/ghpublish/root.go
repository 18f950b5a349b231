package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/client"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
)

var rootCmd = &cobra.Command{
	Use:   "ghpublish",
	Short: "Publish an Obsidian vault folder to a GitHub repository",
	Long: `ghpublish mirrors a selected set of vault files into a folder of a
GitHub repository using the git data API. Runs are one-way: the remote
folder is made to match the vault, including deletions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if apiClient != nil {
			_ = apiClient.Close()
		}
	},
}

var (
	configPath string
	jsonOutput bool
	verbose    bool

	cfg       *config.Config
	loader    *config.Loader
	logger    *events.Logger
	apiClient *client.Client
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Debug logging")
}

// setup loads config and builds the client. Commands that run before a
// config exists (init-config) opt out via annotation.
func setup(cmd *cobra.Command) error {
	if cmd.Annotations["skip-setup"] == "true" {
		return nil
	}

	loader = config.NewLoader(configPath)

	var err error
	cfg, err = loader.Load()
	if err != nil {
		return err
	}

	if verbose {
		cfg.Log.Level = "debug"
	}

	logger, err = events.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}

	apiClient, err = client.New(cfg, logger)
	if err != nil {
		return err
	}

	return nil
}

// Output helpers

func printSuccess(format string, args ...interface{}) {
	color.New(color.FgGreen).FprintfFunc()(os.Stdout, format+"\n", args...)
}

func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

func printError(format string, args ...interface{}) {
	color.New(color.FgRed).FprintfFunc()(os.Stderr, format+"\n", args...)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		printError("marshal output: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}
