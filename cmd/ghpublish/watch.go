package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep publishing on vault changes and on a timer",
	Long: `Watch stays running, triggering a sync whenever the selected vault
paths change (debounced) and on the configured interval. Stop with
Ctrl-C.`,
	Example: `  ghpublish watch
  ghpublish watch --initial`,
	RunE: runWatch,
}

var watchInitial bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchInitial, "initial", false,
		"Run one sync immediately on startup")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if watchInitial {
		apiClient.Scheduler.Trigger()
	}

	printInfo("Watching vault, press Ctrl-C to stop")

	err := apiClient.Scheduler.Run(ctx, true)
	if errors.Is(err, context.Canceled) {
		printInfo("Stopped")
		return nil
	}
	return err
}
