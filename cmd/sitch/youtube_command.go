package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sitch/internal/domain/entity"
	"sitch/internal/infra/sources"
)

func newYouTubeCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "youtube",
		Short: "Manage your YouTube channels",
	}
	cmd.AddCommand(newYouTubeAddCommand(cctx))
	cmd.AddCommand(newYouTubeListCommand(cctx))
	cmd.AddCommand(newYouTubeEditCommand(cctx))
	cmd.AddCommand(newYouTubeSearchCommand(cctx))
	cmd.AddCommand(newYouTubeAPIKeyCommand(cctx))
	return cmd
}

func newYouTubeAddCommand(cctx *commandContext) *cobra.Command {
	var name, channelID string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a YouTube channel to sitch",
		Long: "Add a YouTube channel to sitch. You can provide all, none, or some\n" +
			"of the arguments; sitch will open your preferred editor to fill in\n" +
			"the rest of a JSON object if you missed any required fields.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			channel := &entity.Channel{Item: entity.Item{Name: name}, ChannelID: channelID}
			if name == "" || channelID == "" {
				if err := editAsJSON(channel, channel); err != nil {
					return err
				}
			}
			if err := channel.Validate(); err != nil {
				return err
			}

			cfg.YouTube.Channels = append(cfg.YouTube.Channels, channel)
			fmt.Fprintln(cmd.OutOrStdout(), "Added a new YouTube channel.")
			return cctx.save()
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the YouTube channel")
	cmd.Flags().StringVarP(&channelID, "id", "i", "", "The channel ID as found on the channel's home page in the URL")
	return cmd
}

func newYouTubeListCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your YouTube channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := make([][2]string, 0, len(cfg.YouTube.Channels))
			for _, channel := range cfg.YouTube.Channels {
				rows = append(rows, [2]string{channel.Name, channel.ChannelID})
			}
			renderSourceList(cmd.OutOrStdout(), "Channel ID", rows)
			return nil
		},
	}
}

func newYouTubeEditCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit your YouTube channels in your favorite editor",
		Long: "Edit your current YouTube channels in your favorite editor.\n" +
			"Requires the EDITOR environment variable to be set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			var edited []*entity.Channel
			if err := editAsJSON(cfg.YouTube.Channels, &edited); err != nil {
				return err
			}
			for _, channel := range edited {
				if err := channel.Validate(); err != nil {
					return err
				}
			}

			cfg.YouTube.Channels = edited
			return cctx.save()
		},
	}
}

func newYouTubeSearchCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "Interactively search for YouTube channels to follow",
		Long: "Interactively search for YouTube channels and add the channel you\n" +
			"want correctly to sitch without needing a web browser.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.YouTube.APIKey == "" {
				return errors.New("Must have API key set to search for YouTube channels.")
			}

			checker := sources.NewYouTube(newHTTPClient(), cfg.YouTube.APIKey, nil)
			result, err := interactiveSearch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(),
				"channel", checker.SearchChannels)
			if err != nil {
				return err
			}
			if result == nil {
				return nil
			}

			cfg.YouTube.Channels = append(cfg.YouTube.Channels, &entity.Channel{
				Item:      entity.Item{Name: result.Title},
				ChannelID: result.ID,
			})
			fmt.Fprintln(cmd.OutOrStdout(), "Added a new channel.")
			return cctx.save()
		},
	}
}

func newYouTubeAPIKeyCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage the YouTube API key",
		Long: "Manage the YouTube API key (required for sitch to access the\n" +
			"YouTube API). If the key is set, sitch will check the channels for\n" +
			"recent videos. If it is never set or it is cleared, then sitch will\n" +
			"ignore the YouTube feature. To acquire an API key, follow this link:\n" +
			"https://developers.google.com/youtube/v3/getting-started",
	}

	var newKey string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set the API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg.YouTube.APIKey = newKey
			return cctx.save()
		},
	}
	setCmd.Flags().StringVarP(&newKey, "key", "k", "", "The new API key to use for checking YouTube")
	_ = setCmd.MarkFlagRequired("key")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the existing key (if you want sitch to ignore YouTube channels)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg.YouTube.APIKey = ""
			return cctx.save()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show your current key if it is set (prints nothing if no key is set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.YouTube.APIKey != "" {
				fmt.Fprintln(cmd.OutOrStdout(), cfg.YouTube.APIKey)
			}
			return nil
		},
	}

	cmd.AddCommand(setCmd, clearCmd, showCmd)
	return cmd
}
