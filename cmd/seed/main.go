package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := seedOptions{}
	var startIn time.Duration

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo sessions, candidates and a proctor into a running server",
		Long: `Load demo data through the public HTTP API.

Sessions are created two hours apart so the same candidates and proctor can
join all of them. Sessions fill up to --capacity; extra candidates land on the
waitlist.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.start = time.Now().Add(startIn).UTC().Truncate(time.Minute)
			_, err := seed(cmd.Context(), cmd.OutOrStdout(), opts)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", "http://localhost:4013", "API base URL")
	cmd.Flags().IntVar(&opts.sessions, "sessions", 3, "number of sessions to create")
	cmd.Flags().IntVar(&opts.candidates, "candidates", 4, "candidates to enroll per session")
	cmd.Flags().IntVar(&opts.capacity, "capacity", 3, "seats per session")
	cmd.Flags().IntVar(&opts.duration, "duration", 90, "session length in minutes")
	cmd.Flags().DurationVar(&startIn, "start-in", 24*time.Hour, "delay before the first session starts")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
