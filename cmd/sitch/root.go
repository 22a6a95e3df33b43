package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// requestTimeout bounds every platform request so one unresponsive
// endpoint can't stall its item forever.
const requestTimeout = 30 * time.Second

func newRootCommand() *cobra.Command {
	var configFlag string
	opts := &checkOptions{}

	cctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "sitch",
		Short: "A tool for keeping you updated",
		Long: "A tool for keeping you updated.\n\n" +
			"Just run it with no arguments to see what you've missed and it\n" +
			"will remember when you last ran it. The currently supported\n" +
			"sources are RSS, YouTube, Bandcamp, anime, and manga. You can\n" +
			"manage your sources via the subcommands shown below.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, cctx, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "",
		"The location of your config.json file. If not specified, one is managed in your system's config directory.")

	rootCmd.Flags().StringVarP(&opts.sinceTime, "since-time", "t", "",
		`Check for updates from a specific date (and time) on instead of from the last run. Allowed formats: "today", "yesterday", "MM/DD/YYYY", "HH:MM (AM|PM) MM/DD/YYYY"`)
	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false,
		"Run in quiet mode, or simplify the output.")
	rootCmd.Flags().BoolVar(&opts.notify, "notify", false,
		"For linux systems, send the output as clickable notifications instead.")
	rootCmd.Flags().BoolVarP(&opts.lastChecked, "last-checked", "L", false,
		`Only output the last time sitch checked for updates. The format is "HH:MM:SS MM/DD/YY" (24 hour).`)

	rootCmd.AddCommand(newRSSCommand(cctx))
	rootCmd.AddCommand(newBandcampCommand(cctx))
	rootCmd.AddCommand(newYouTubeCommand(cctx))
	rootCmd.AddCommand(newAnimeCommand(cctx))
	rootCmd.AddCommand(newMangaCommand(cctx))

	return rootCmd
}

// newHTTPClient builds the client every platform adapter shares.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
