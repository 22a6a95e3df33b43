package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitch/internal/domain/entity"
)

func newBandcampCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bandcamp",
		Short: "Manage your Bandcamp artists",
	}
	cmd.AddCommand(newBandcampAddCommand(cctx))
	cmd.AddCommand(newBandcampListCommand(cctx))
	cmd.AddCommand(newBandcampEditCommand(cctx))
	return cmd
}

func newBandcampAddCommand(cctx *commandContext) *cobra.Command {
	var name, pageURL string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a Bandcamp artist to sitch",
		Long: "Add a Bandcamp artist to sitch. You can provide all, none, or some\n" +
			"of the arguments; sitch will open your preferred editor to fill in\n" +
			"the rest of a JSON object if you missed any required fields.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			artist := &entity.Artist{Item: entity.Item{Name: name}, PageURL: pageURL}
			if name == "" || pageURL == "" {
				if err := editAsJSON(artist, artist); err != nil {
					return err
				}
			}
			if err := artist.Validate(); err != nil {
				return err
			}

			cfg.Bandcamp = append(cfg.Bandcamp, artist)
			fmt.Fprintln(cmd.OutOrStdout(), "Added a new Bandcamp artist.")
			return cctx.save()
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Your name for the artist")
	cmd.Flags().StringVarP(&pageURL, "url", "u", "", "The URL of the bandcamp page")
	return cmd
}

func newBandcampListCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your Bandcamp artists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := make([][2]string, 0, len(cfg.Bandcamp))
			for _, artist := range cfg.Bandcamp {
				rows = append(rows, [2]string{artist.Name, artist.PageURL})
			}
			renderSourceList(cmd.OutOrStdout(), "Page", rows)
			return nil
		},
	}
}

func newBandcampEditCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit your Bandcamp artists in your favorite editor",
		Long: "Edit your current Bandcamp artists in your favorite editor.\n" +
			"Requires the EDITOR environment variable to be set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			var edited []*entity.Artist
			if err := editAsJSON(cfg.Bandcamp, &edited); err != nil {
				return err
			}
			for _, artist := range edited {
				if err := artist.Validate(); err != nil {
					return err
				}
			}

			cfg.Bandcamp = edited
			return cctx.save()
		},
	}
}
