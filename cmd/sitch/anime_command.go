package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitch/internal/domain/entity"
	"sitch/internal/infra/sources"
)

func newAnimeCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anime",
		Short: "Manage the anime you follow",
	}
	cmd.AddCommand(newAnimeAddCommand(cctx))
	cmd.AddCommand(newAnimeListCommand(cctx))
	cmd.AddCommand(newAnimeEditCommand(cctx))
	cmd.AddCommand(newAnimeSearchCommand(cctx))
	return cmd
}

func newAnimeAddCommand(cctx *commandContext) *cobra.Command {
	var name, id string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an anime to sitch",
		Long: "Add an anime to sitch. You can provide all, none, or some of the\n" +
			"arguments; sitch will open your preferred editor to fill in the\n" +
			"rest of a JSON object if you missed any required fields.\n\n" +
			"It is recommended to use the search subcommand instead, as it will\n" +
			"find the appropriate id for you.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			anime := &entity.Anime{Item: entity.Item{Name: name}, ID: id}
			if name == "" || id == "" {
				if err := editAsJSON(anime, anime); err != nil {
					return err
				}
			}
			if err := anime.Validate(); err != nil {
				return err
			}

			cfg.Anime = append(cfg.Anime, anime)
			fmt.Fprintln(cmd.OutOrStdout(), "Added a new anime.")
			return cctx.save()
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the anime")
	cmd.Flags().StringVarP(&id, "id", "i", "", `The id of the anime as found on "myanimelist.net"`)
	return cmd
}

func newAnimeListCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the anime you follow",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := make([][2]string, 0, len(cfg.Anime))
			for _, anime := range cfg.Anime {
				rows = append(rows, [2]string{anime.Name, anime.ID})
			}
			renderSourceList(cmd.OutOrStdout(), "ID", rows)
			return nil
		},
	}
}

func newAnimeEditCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit your followed anime in your favorite editor",
		Long: "Edit your currently followed anime in your favorite editor.\n" +
			"Requires the EDITOR environment variable to be set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			var edited []*entity.Anime
			if err := editAsJSON(cfg.Anime, &edited); err != nil {
				return err
			}
			for _, anime := range edited {
				if err := anime.Validate(); err != nil {
					return err
				}
			}

			cfg.Anime = edited
			return cctx.save()
		},
	}
}

func newAnimeSearchCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "Interactively search for anime to follow",
		Long: "Interactively search for anime on \"myanimelist.net\" and add the\n" +
			"anime you want correctly to sitch without needing a web browser.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			checker := sources.NewAnime(newHTTPClient(), nil)
			result, err := interactiveSearch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(),
				"anime", checker.Search)
			if err != nil {
				return err
			}
			if result == nil {
				return nil
			}

			cfg.Anime = append(cfg.Anime, &entity.Anime{Item: entity.Item{Name: result.Title}, ID: result.ID})
			fmt.Fprintln(cmd.OutOrStdout(), "Added a new anime.")
			return cctx.save()
		},
	}
}
