package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	green = color.New(color.FgHiGreen).SprintFunc()
)

func init() {
	rootCmd.AddCommand(newRecentCmd())
}

func newRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Display recently streamed tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 || limit > 50 {
				return fmt.Errorf("limit must be between 1 and 50, got %d", limit)
			}
			cmd.SilenceUsage = true

			client, err := apiClient()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := cmd.Context()
			played, err := client.RecentlyPlayed(ctx, limit)
			if err != nil {
				return err
			}
			if len(played) == 0 {
				fmt.Println("No recently played tracks.")
				return nil
			}

			trackIDs := make([]string, len(played))
			for i, item := range played {
				trackIDs[i] = item.Track.ID
			}
			saved, err := client.LikedContains(ctx, trackIDs)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t\t\n", faint("PLAYED"), "TITLE", faint("ALBUM"))
			for i, item := range played {
				heart := faint("♡")
				if i < len(saved) && saved[i] {
					heart = green("♥")
				}
				track := item.Track
				fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
					faint(humanize.Time(item.PlayedAt)),
					bold(track.Name),
					faint(track.ArtistNames()),
					track.Album.Name,
					heart,
					faint(track.FormattedDuration()),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "Max number of results")
	return cmd
}
