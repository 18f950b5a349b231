package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store the GitHub access token in the config file",
	Long: `Auth prompts for a personal access token (repo scope) without echo and
saves it to the active config file.`,
	Example: `  ghpublish auth
  ghpublish auth --token ghp_xxx`,
	RunE: runAuth,
}

var authToken string

func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.Flags().StringVar(&authToken, "token", "",
		"Token (will prompt if not provided)")
}

func runAuth(cmd *cobra.Command, args []string) error {
	token := strings.TrimSpace(authToken)

	if token == "" {
		var err error
		token, err = promptToken("GitHub token: ")
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
	}

	if token == "" {
		printError("Empty token")
		return fmt.Errorf("empty token")
	}

	cfg.GitHub.Token = token
	if err := loader.Save(cfg); err != nil {
		printError("Save failed: %v", err)
		return err
	}

	if jsonOutput {
		printJSON(map[string]interface{}{
			"success": true,
			"config":  loader.Path(),
		})
	} else {
		printSuccess("Token saved to %s", loader.Path())
	}

	return nil
}

func promptToken(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	// Read without echo
	token, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(token)), nil
}
