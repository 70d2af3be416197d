package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/styx-analyse/styx-session/internal"
)

var (
	healthcheckDetails bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check the data directory and the lifetime totals",
	Long: `Check the health of the data directory by verifying:
  • Data directory and configuration
  • Readability of the totals, recent list and comments records
  • Sessions on disk and recent list entries pointing at missing sessions
  • Lifetime totals against a fresh recomputation from the sessions

Drift in the totals can be repaired with 'styx-session stats --recompute'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 Styx Session Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Configuration invalid:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		paths := cfg.Paths()
		fmt.Fprintln(out, successStyle.Render("✅ Configuration loaded"))
		if healthcheckDetails {
			fmt.Fprintf(out, "   Data directory: %s\n", paths.BasePath)
			fmt.Fprintf(out, "   Time zone: %s\n", cfg.Timezone)
			fmt.Fprintf(out, "   Recent list size: %d\n", cfg.RecentLimit)
		}
		if _, err := os.Stat(paths.BasePath); os.IsNotExist(err) {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Data directory does not exist yet"))
		}
		fmt.Fprintln(out)

		// Step 2: Records
		fmt.Fprintln(out, infoStyle.Render("Step 2: Reading records..."))
		failed := false
		check := func(name string, err error) {
			if err != nil {
				fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("❌ %s unreadable:", name)), err)
				failed = true
				return
			}
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ %s readable", name)))
		}
		_, err = internal.LoadStats(paths.StatsPath())
		check("Lifetime totals", err)
		recent, err := internal.LoadRecentIndex(paths.RecentPath(), cfg.RecentLimit)
		check("Recent list", err)
		_, err = internal.LoadComments(paths.CommentsPath())
		check("Comments", err)
		fmt.Fprintln(out)

		// Step 3: Sessions
		fmt.Fprintln(out, infoStyle.Render("Step 3: Scanning sessions..."))
		ids, err := paths.FindSessionFiles()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to list sessions:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d session(s)", len(ids))))
		if recent != nil {
			dangling := danglingEntries(recent, paths)
			if len(dangling) > 0 {
				fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  %d recent entr(ies) point at missing sessions", len(dangling))))
				if healthcheckDetails {
					for _, id := range dangling {
						fmt.Fprintf(out, "   %s\n", id)
					}
				}
			}
		}
		fmt.Fprintln(out)

		if failed {
			fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			return fmt.Errorf("health check failed: unreadable records")
		}

		// Step 4: Totals
		fmt.Fprintln(out, infoStyle.Render("Step 4: Checking lifetime totals..."))
		store, err := internal.OpenStore(cfg)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		stored := store.Stats().Totals()
		computed, skipped, err := store.ComputeStats()
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		if len(skipped) > 0 {
			fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  %d session(s) could not be read", len(skipped))))
			if healthcheckDetails {
				for _, id := range skipped {
					fmt.Fprintf(out, "   %s\n", id)
				}
			}
		}

		drift := stored != computed.Totals()
		if drift {
			fmt.Fprintln(out, errorStyle.Render("❌ Lifetime totals differ from the sessions on disk"))
			displayDrift(out, stored, computed.Totals())
		} else {
			fmt.Fprintln(out, successStyle.Render("✅ Lifetime totals match the sessions on disk"))
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		if drift {
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			fmt.Fprintln(out, "   Run 'styx-session stats --recompute' to rebuild the totals")
			return fmt.Errorf("health check failed: lifetime totals drifted")
		}
		fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Sessions: %d", len(ids))))
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Trips counted: %d", stored.TotalTrips)))
		return nil
	},
}

func danglingEntries(recent *internal.RecentIndex, paths internal.DataPaths) []string {
	var out []string
	for _, id := range recent.IDs() {
		if !paths.SessionExists(id) {
			out = append(out, id)
		}
	}
	return out
}

func displayDrift(out io.Writer, stored, computed internal.AggregateStats) {
	row := func(name string, a, b float64) {
		if a != b {
			fmt.Fprintf(out, "   %-18s stored %.3f, recomputed %.3f\n", name, a, b)
		}
	}
	if stored.TotalTrips != computed.TotalTrips {
		fmt.Fprintf(out, "   %-18s stored %d, recomputed %d\n", "trips", stored.TotalTrips, computed.TotalTrips)
	}
	row("distance (m)", stored.TotalDistance, computed.TotalDistance)
	row("duration (s)", stored.TotalDuration, computed.TotalDuration)
	row("charged (Wh)", stored.TotalEnergyCharged, computed.TotalEnergyCharged)
	row("discharged (Wh)", stored.TotalEnergyDischarged, computed.TotalEnergyDischarged)
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckDetails, "details", "d", false, "Show detailed diagnostic information")
}
