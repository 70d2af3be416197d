package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/styx-analyse/styx-session/internal"
)

var (
	listAll bool
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	commentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported sessions",
	Long: `List the most recently imported sessions, newest first.

With --all, sessions that dropped out of the recent list but are still on disk
are listed after them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := openStore()
		if err != nil {
			return err
		}

		rows := make([]listRow, 0)
		listed := make(map[string]bool)
		for _, e := range store.Entries() {
			rows = append(rows, listRow{entry: e, indexed: true})
			listed[e.ID] = true
		}
		if listAll {
			ids, err := store.AllSessions()
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
			for _, id := range ids {
				if !listed[id] {
					rows = append(rows, listRow{entry: internal.RecentEntry{ID: id}})
				}
			}
		}

		comments, err := internal.LoadComments(store.Paths().CommentsPath())
		if err != nil {
			internal.LogWarn("Failed to load comments: %v", err)
			comments = internal.Comments{}
		}

		displaySessions(cmd.OutOrStdout(), rows, comments, store.Location())
		return nil
	},
}

type listRow struct {
	entry   internal.RecentEntry
	indexed bool
}

func displaySessions(out io.Writer, rows []listRow, comments internal.Comments, loc *time.Location) {
	if len(rows) == 0 {
		fmt.Fprintln(out, headerStyle.Render("📋 No sessions found"))
		fmt.Fprintln(out, idStyle.Render("💡 Tip: Import a recording with `styx-session import <file>`"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 Found %d session(s)", len(rows)))
	fmt.Fprintln(out, header)
	fmt.Fprintln(out)

	// Use tabwriter for aligned columns with better spacing
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Ride")+"\t"+titleStyle.Render("Distance")+"\t"+titleStyle.Render("Duration")+"\t"+titleStyle.Render("Comment")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 110))

	for _, row := range rows {
		e := row.entry
		name := internal.DisplayName(e.ID, loc)

		distance := dateStyle.Render("—")
		duration := dateStyle.Render("—")
		if row.indexed {
			distance = countStyle.Render(fmt.Sprintf("%.2f km", e.Distance/1000))
			duration = dateStyle.Render(formatSeconds(e.Duration))
		}

		comment := comments[e.ID]
		if len(comment) > 30 {
			comment = comment[:27] + "..."
		}
		if comment == "" {
			comment = dateStyle.Render("—")
		} else {
			comment = commentStyle.Render(comment)
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", idStyle.Render(e.ID), name, distance, duration, comment)
	}

	_ = w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the ID (e.g., ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(rows[0].entry.ID)+
		idStyle.Render(") with `styx-session show <id>`"))
}

// formatSeconds renders a duration as 1h02m05s, dropping leading zero units
func formatSeconds(s float64) string {
	d := time.Duration(s * float64(time.Second)).Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include sessions no longer in the recent list")
}
