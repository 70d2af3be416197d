package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/styx-analyse/styx-session/internal"
)

// MarkdownExporter exports a summary report in Markdown format
type MarkdownExporter struct{}

// Export exports a report to Markdown format
func (e *MarkdownExporter) Export(r *Report, w io.Writer) error {
	sm := r.Summary

	// Header
	_, _ = fmt.Fprintf(w, "# %s\n\n", r.Name)
	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", r.ID)
	_, _ = fmt.Fprintf(w, "**Range:** samples %d to %d  \n", r.RangeStart, r.RangeEnd)
	_, _ = fmt.Fprintf(w, "**Samples:** %d\n\n", sm.Samples)

	if r.Comment != "" {
		_, _ = fmt.Fprintf(w, "> %s\n\n", strings.ReplaceAll(escapeMarkdown(r.Comment), "\n", "\n> "))
	}

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Summary\n\n")
	_, _ = fmt.Fprintf(w, "| Metric | Value |\n|---|---|\n")

	if sm.DistanceSource != internal.DistanceNone {
		_, _ = fmt.Fprintf(w, "| Distance (%s) | %.2f km |\n", sm.DistanceSource, sm.Distance/1000)
	}
	_, _ = fmt.Fprintf(w, "| Duration | %s |\n", formatDuration(sm.Duration))
	if sm.HasSpeed {
		_, _ = fmt.Fprintf(w, "| Average speed | %.1f km/h |\n", sm.AvgSpeed)
		_, _ = fmt.Fprintf(w, "| Max speed | %.1f km/h |\n", sm.MaxSpeed)
	}
	if sm.HasAltitude {
		_, _ = fmt.Fprintf(w, "| Altitude | %.0f to %.0f m |\n", sm.MinAltitude, sm.MaxAltitude)
		_, _ = fmt.Fprintf(w, "| Elevation gain | %.0f m |\n", sm.ElevationGain)
	}
	if sm.HasCharged {
		_, _ = fmt.Fprintf(w, "| Energy charged | %.2f Wh (%s) |\n", sm.EnergyCharged, sm.ChargedMode)
	}
	if sm.HasDischarged {
		_, _ = fmt.Fprintf(w, "| Energy discharged | %.2f Wh (%s) |\n", sm.EnergyDischarged, sm.DischargedMode)
	}
	if sm.AvgVoltage != 0 {
		_, _ = fmt.Fprintf(w, "| Average voltage | %.2f V |\n", sm.AvgVoltage)
	}
	if sm.MaxCurrentIn != 0 {
		_, _ = fmt.Fprintf(w, "| Max input current | %.1f A |\n", sm.MaxCurrentIn)
	}

	if len(r.Cursor.Readings) > 0 {
		lock := ""
		if r.Cursor.Locked {
			lock = " (locked)"
		}
		_, _ = fmt.Fprintf(w, "\n## Sample %d%s\n\n", r.Cursor.Index, lock)
		for _, rd := range r.Cursor.Readings {
			_, _ = fmt.Fprintf(w, "- **%s:** %g %s\n", rd.Name, rd.Value, rd.Unit)
		}
	}

	if len(r.Charts) > 0 {
		_, _ = fmt.Fprintf(w, "\n## Charts\n\n")
		for _, c := range r.Charts {
			_, _ = fmt.Fprintf(w, "- %s\n", c.Label)
		}
	}

	return nil
}

func formatDuration(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%dh %02dm %02ds", total/3600, total%3600/60, total%60)
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			line = strings.ReplaceAll(line, "|", "\\|")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
