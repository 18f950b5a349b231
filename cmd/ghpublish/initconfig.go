package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/config"
)

var initConfigCmd = &cobra.Command{
	Use:         "init-config [path]",
	Short:       "Write an example config file",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{"skip-setup": "true"},
	RunE:        runInitConfig,
}

func init() {
	rootCmd.AddCommand(initConfigCmd)
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := "ghpublish.json"
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		printError("Refusing to overwrite %s", path)
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := config.SaveExample(path); err != nil {
		return err
	}

	printSuccess("Wrote example config to %s", path)
	printInfo("Fill in github.token, github.repo_url and sync.paths, then run: ghpublish sync")
	return nil
}
