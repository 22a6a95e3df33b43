package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitch/internal/domain/entity"
)

func newRSSCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rss",
		Short: "Manage your RSS feeds",
	}
	cmd.AddCommand(newRSSAddCommand(cctx))
	cmd.AddCommand(newRSSListCommand(cctx))
	cmd.AddCommand(newRSSEditCommand(cctx))
	return cmd
}

func newRSSAddCommand(cctx *commandContext) *cobra.Command {
	var name, feed string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an RSS feed to sitch",
		Long: "Add an RSS feed to sitch. You can provide all, none, or some of\n" +
			"the arguments; sitch will open your preferred editor to fill in\n" +
			"the rest of a JSON object if you missed any required fields.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			source := &entity.FeedSource{Item: entity.Item{Name: name}, FeedURL: feed}
			if name == "" || feed == "" {
				if err := editAsJSON(source, source); err != nil {
					return err
				}
			}
			if err := source.Validate(); err != nil {
				return err
			}

			cfg.RSS = append(cfg.RSS, source)
			fmt.Fprintln(cmd.OutOrStdout(), "Added a new RSS feed.")
			return cctx.save()
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Your name for the feed")
	cmd.Flags().StringVarP(&feed, "feed", "f", "", "The URL of the feed location")
	return cmd
}

func newRSSListCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your RSS feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := make([][2]string, 0, len(cfg.RSS))
			for _, source := range cfg.RSS {
				rows = append(rows, [2]string{source.Name, source.FeedURL})
			}
			renderSourceList(cmd.OutOrStdout(), "Feed", rows)
			return nil
		},
	}
}

func newRSSEditCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit your RSS feeds in your favorite editor",
		Long: "Edit your current RSS feeds in your favorite editor. Requires the\n" +
			"EDITOR environment variable to be set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			var edited []*entity.FeedSource
			if err := editAsJSON(cfg.RSS, &edited); err != nil {
				return err
			}
			for _, source := range edited {
				if err := source.Validate(); err != nil {
					return err
				}
			}

			cfg.RSS = edited
			return cctx.save()
		},
	}
}
