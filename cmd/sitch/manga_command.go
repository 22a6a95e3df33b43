package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitch/internal/domain/entity"
	"sitch/internal/infra/sources"
)

func newMangaCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manga",
		Short: "Manage the manga you follow",
	}
	cmd.AddCommand(newMangaAddCommand(cctx))
	cmd.AddCommand(newMangaListCommand(cctx))
	cmd.AddCommand(newMangaEditCommand(cctx))
	cmd.AddCommand(newMangaSearchCommand(cctx))
	return cmd
}

func newMangaAddCommand(cctx *commandContext) *cobra.Command {
	var name, id string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manga to sitch",
		Long: "Add a manga to sitch. You can provide all, none, or some of the\n" +
			"arguments; sitch will open your preferred editor to fill in the\n" +
			"rest of a JSON object if you missed any required fields.\n\n" +
			"It is recommended to use the search subcommand instead, as it will\n" +
			"find the appropriate id for you.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			manga := &entity.Manga{Item: entity.Item{Name: name}, ID: id}
			if name == "" || id == "" {
				if err := editAsJSON(manga, manga); err != nil {
					return err
				}
			}
			if err := manga.Validate(); err != nil {
				return err
			}

			cfg.Manga = append(cfg.Manga, manga)
			fmt.Fprintln(cmd.OutOrStdout(), "Added a new manga.")
			return cctx.save()
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the manga")
	cmd.Flags().StringVarP(&id, "id", "i", "", `The id of the manga as found on "mangaeden.com"`)
	return cmd
}

func newMangaListCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the manga you follow",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := make([][2]string, 0, len(cfg.Manga))
			for _, manga := range cfg.Manga {
				rows = append(rows, [2]string{manga.Name, manga.ID})
			}
			renderSourceList(cmd.OutOrStdout(), "ID", rows)
			return nil
		},
	}
}

func newMangaEditCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit your followed manga in your favorite editor",
		Long: "Edit your currently followed manga in your favorite editor.\n" +
			"Requires the EDITOR environment variable to be set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			var edited []*entity.Manga
			if err := editAsJSON(cfg.Manga, &edited); err != nil {
				return err
			}
			for _, manga := range edited {
				if err := manga.Validate(); err != nil {
					return err
				}
			}

			cfg.Manga = edited
			return cctx.save()
		},
	}
}

func newMangaSearchCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "Interactively search for manga to follow",
		Long: "Interactively search for manga on \"mangaeden.com\" and add the\n" +
			"manga you read correctly to sitch without needing a web browser.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			checker := sources.NewManga(newHTTPClient(), nil)
			result, err := interactiveSearch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(),
				"manga", checker.Search)
			if err != nil {
				return err
			}
			if result == nil {
				return nil
			}

			cfg.Manga = append(cfg.Manga, &entity.Manga{Item: entity.Item{Name: result.Title}, ID: result.ID})
			fmt.Fprintln(cmd.OutOrStdout(), "Added a new manga.")
			return cctx.save()
		},
	}
}
