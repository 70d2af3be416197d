package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/styx-analyse/styx-session/internal"
	"github.com/styx-analyse/styx-session/internal/analysis"
)

var (
	showFrom     float64
	showTo       float64
	showAt       int
	showEnergy   string
	showAdvanced bool
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Summarise a session or part of it",
	Long: `Display the summary of a session over a range given as slider positions
(0 to 100 percent of the recording), and optionally every value recorded at one
sample of that range.

Examples:
  styx-session show 2024-05-01_15-52-35
  styx-session show 2024-05-01_15-52-35 --from 25 --to 75 --at 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := openStore()
		if err != nil {
			return err
		}

		id := sessionIDArg(args[0])
		a, err := openAnalysis(store, cfg, id, showEnergy, showAdvanced)
		if err != nil {
			return err
		}
		a.SetRangePercent(showFrom, showTo)

		comment, err := store.Comment(id)
		if err != nil {
			internal.LogWarn("Failed to load comment: %v", err)
		}

		out := cmd.OutOrStdout()
		displaySessionHeader(out, a, store, comment)
		displaySummary(out, a.Summary())

		kinds := a.AvailableKinds()
		labels := make([]string, len(kinds))
		for i, k := range kinds {
			labels[i] = fmt.Sprintf("%s (%s)", analysis.Label(k), k)
		}
		if len(labels) > 0 {
			fmt.Fprintln(out, labelStyle.Render("Charts:"), mutedStyle.Render(strings.Join(labels, ", ")))
		}

		if showAt >= 0 {
			if showAt >= a.Current().Len() {
				return fmt.Errorf("--at %d is outside the range (%d samples)", showAt, a.Current().Len())
			}
			fmt.Fprintln(out)
			displayReadings(out, showAt, a.Instant(showAt))
		}
		return nil
	},
}

// openAnalysis loads a stored session and opens it for analysis
func openAnalysis(store *internal.Store, cfg internal.Config, id, energy string, advanced bool) (*analysis.Analysis, error) {
	mode, err := internal.ParseEnergyMode(energy)
	if err != nil {
		return nil, err
	}
	session, err := store.Load(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w (use 'styx-session list' to see available sessions)", err)
	}
	return analysis.Open(session, analysis.Options{
		MaxCharts: cfg.MaxCharts,
		Energy:    mode,
		Advanced:  advanced,
	})
}

func displaySessionHeader(out io.Writer, a *analysis.Analysis, store *internal.Store, comment string) {
	session := a.Session()
	fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("🚲 %s", internal.DisplayName(session.ID, store.Location()))))

	start, end := a.Range()
	metaParts := []string{
		session.ID,
		fmt.Sprintf("Samples: %d", session.Len()),
		fmt.Sprintf("Range: %d-%d", start, end),
	}
	fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	if comment != "" {
		fmt.Fprintln(out, mutedStyle.Render("“"+comment+"”"))
		fmt.Fprintln(out)
	}
}

func displaySummary(out io.Writer, sm internal.Summary) {
	line := func(label, value string) {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-20s", label)), valueStyle.Render(value))
	}

	if sm.DistanceSource != internal.DistanceNone {
		line("Distance", fmt.Sprintf("%.2f km (%s)", sm.Distance/1000, sm.DistanceSource))
	}
	line("Duration", formatSeconds(sm.Duration))
	if sm.HasSpeed {
		line("Average speed", fmt.Sprintf("%.1f km/h", sm.AvgSpeed))
		line("Max speed", fmt.Sprintf("%.1f km/h", sm.MaxSpeed))
	}
	if sm.HasAltitude {
		line("Altitude", fmt.Sprintf("%.0f to %.0f m", sm.MinAltitude, sm.MaxAltitude))
		line("Elevation gain", fmt.Sprintf("%.0f m", sm.ElevationGain))
	}
	if sm.HasCharged {
		line("Energy charged", fmt.Sprintf("%.2f Wh (%s)", sm.EnergyCharged, sm.ChargedMode))
	}
	if sm.HasDischarged {
		line("Energy discharged", fmt.Sprintf("%.2f Wh (%s)", sm.EnergyDischarged, sm.DischargedMode))
	}
	if sm.AvgVoltage != 0 {
		line("Average voltage", fmt.Sprintf("%.2f V", sm.AvgVoltage))
	}
	if sm.MaxCurrentIn != 0 {
		line("Max input current", fmt.Sprintf("%.1f A", sm.MaxCurrentIn))
	}
	fmt.Fprintln(out)
}

func displayReadings(out io.Writer, index int, readings []analysis.Reading) {
	fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("📍 Sample %d", index)))
	if len(readings) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("(no values recorded)"))
		return
	}
	for _, r := range readings {
		value := fmt.Sprintf("%g", r.Value)
		if r.Unit != "" {
			value += " " + r.Unit
		}
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", r.Name)), valueStyle.Render(value))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Float64Var(&showFrom, "from", 0, "Range start, percent of the recording")
	showCmd.Flags().Float64Var(&showTo, "to", 100, "Range end, percent of the recording")
	showCmd.Flags().IntVar(&showAt, "at", -1, "Show every value recorded at this sample of the range")
	showCmd.Flags().StringVar(&showEnergy, "energy", "auto", "Energy columns: auto, cumulative or instantaneous")
	showCmd.Flags().BoolVar(&showAdvanced, "advanced", false, "List advanced chart series")
}
