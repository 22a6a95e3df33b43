package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sitch/internal/infra/desktop"
	"sitch/internal/infra/sources"
	"sitch/internal/usecase/check"
	"sitch/internal/usecase/notify"
)

// lastCheckedLayout renders the -L output, "HH:MM:SS MM/DD/YY".
const lastCheckedLayout = "15:04:05 01/02/06"

// checkOptions are the root command's flags.
type checkOptions struct {
	sinceTime   string
	quiet       bool
	notify      bool
	lastChecked bool
}

// runCheck is the default run: check every platform for updates since
// the last run, report them, and remember when something was found.
func runCheck(cmd *cobra.Command, cctx *commandContext, opts *checkOptions) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}

	if opts.lastChecked {
		if cfg.LastChecked == nil {
			return errors.New("sitch has not successfully run yet.")
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.LastChecked.Format(lastCheckedLayout))
		return nil
	}

	// The override replaces the global checkpoint for this run and is
	// persisted on save like any other state.
	if opts.sinceTime != "" {
		since, err := parseSinceTime(opts.sinceTime, time.Now())
		if err != nil {
			return err
		}
		cfg.LastChecked = &since
	}

	var dispatcher *notify.Dispatcher
	var notifier *desktop.Notifier
	if opts.notify {
		notifier, err = desktop.New()
		if err != nil {
			return fmt.Errorf("cannot notify: %w", err)
		}
		defer func() { _ = notifier.Close() }()
		dispatcher = notify.NewDispatcher(notifier)
	}

	client := newHTTPClient()
	service := check.NewService(
		sources.NewRSS(client, cfg.RSS),
		sources.NewYouTube(client, cfg.YouTube.APIKey, cfg.YouTube.Channels),
		sources.NewAnime(client, cfg.Anime),
		sources.NewManga(client, cfg.Manga),
		sources.NewBandcamp(client, cfg.Bandcamp),
	)

	ctx := cmd.Context()
	report := service.Run(ctx, cfg.LastChecked)

	if opts.notify {
		for _, res := range report.Updated() {
			dispatcher.UpdateFound(ctx, res.Platform, res.Item, res.Updates[0])
		}
		for _, res := range report.Failures() {
			dispatcher.CheckFailed(ctx, res.Platform, res.Item, res.Err)
		}
	} else {
		renderReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), report, opts.quiet)
	}

	if report.AnyUpdates() {
		now := time.Now()
		cfg.LastChecked = &now
	}

	// The run must not save and exit while a notification the user could
	// still act on is pending.
	if dispatcher != nil {
		_ = dispatcher.Wait(ctx)
	}

	return cctx.save()
}
