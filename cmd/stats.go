package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/styx-analyse/styx-session/internal"
)

var (
	statsRecompute bool
	statsFormat    string
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime totals",
	Long: `Show the lifetime totals over every retained session.

With --recompute the totals are rebuilt from the stored sessions and saved,
which repairs any drift left by interrupted imports or deletions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		stats := store.Stats()
		if statsRecompute {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			err := internal.ShowProgress(ctx, "Recomputing lifetime totals", func() error {
				var err error
				stats, err = store.RecomputeStats()
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to recompute totals: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		switch statsFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		case "text", "":
			displayStats(out, stats)
			return nil
		default:
			return fmt.Errorf("unsupported format: %s (supported: text, json)", statsFormat)
		}
	},
}

func displayStats(out io.Writer, stats internal.AggregateStats) {
	fmt.Fprintln(out, sessionHeaderStyle.Render("📊 Lifetime totals"))

	line := func(label, value string) {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-20s", label)), valueStyle.Render(value))
	}
	line("Trips", fmt.Sprintf("%d", stats.TotalTrips))
	line("Distance", fmt.Sprintf("%.2f km", stats.TotalDistance/1000))
	line("Riding time", formatSeconds(stats.TotalDuration))
	line("Energy charged", fmt.Sprintf("%.2f Wh", stats.TotalEnergyCharged))
	line("Energy discharged", fmt.Sprintf("%.2f Wh", stats.TotalEnergyDischarged))
	if !stats.LastUpdated.IsZero() {
		fmt.Fprintln(out, mutedStyle.Render("Updated "+stats.LastUpdated.Format("2006-01-02 15:04:05")))
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsRecompute, "recompute", false, "Rebuild the totals from the stored sessions")
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "text", "Output format (text, json)")
}
