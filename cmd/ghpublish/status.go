package main

import (
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last sync time and recent run history",
	RunE:  runStatus,
}

var statusLimit int

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().IntVarP(&statusLimit, "limit", "n", 10,
		"Number of runs to show")
}

func runStatus(cmd *cobra.Command, args []string) error {
	lastSync, err := apiClient.Sync.LastSync()
	if err != nil {
		return err
	}

	history, err := apiClient.Sync.History(statusLimit)
	if err != nil {
		return err
	}

	if jsonOutput {
		out := map[string]interface{}{
			"history": history,
		}
		if !lastSync.IsZero() {
			out["last_sync"] = lastSync.Format(time.RFC3339)
		}
		printJSON(out)
		return nil
	}

	if lastSync.IsZero() {
		printInfo("Never synced")
	} else {
		printInfo("Last successful sync: %s", lastSync.Local().Format(time.RFC1123))
	}

	for _, rec := range history {
		dur := rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond)
		if rec.Succeeded() {
			commit := rec.CommitSHA
			if commit == "" {
				commit = "no changes"
			} else if len(commit) > 8 {
				commit = commit[:8]
			}
			printInfo("  %s  ok    %3d files  %2d up  %2d del  %-10s  %s",
				rec.FinishedAt.Local().Format("2006-01-02 15:04:05"),
				rec.FilesScanned, rec.BlobsUploaded, rec.Deletions, commit, dur)
		} else {
			printError("  %s  fail  %s",
				rec.FinishedAt.Local().Format("2006-01-02 15:04:05"), rec.Error)
		}
	}

	return nil
}
