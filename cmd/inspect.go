package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/styx-analyse/styx-session/internal"
)

var (
	inspectFormat string
	inspectTable  string
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspect a recorder export without importing it",
	Long: `Inspect the structure of a recorder CSV export or SQLite dump.

This command provides detailed information about:
  • Columns, with the known telemetry columns and their units
  • How many samples carry a value in each known column
  • The date and time columns used for the recording start
  • The session id an import would produce

Examples:
  styx-session inspect ride.csv                      # Inspect a CSV export
  styx-session inspect dump.db --sqlite-table ride_2 # Inspect one table of a dump
  styx-session inspect ride.csv --format json        # JSON output`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		report, err := inspectFile(args[0], loc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch inspectFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		case "text", "":
			displayInspection(out, report)
			return nil
		default:
			return fmt.Errorf("unsupported format: %s (supported: text, json)", inspectFormat)
		}
	},
}

// FileInspection describes a recorder file
type FileInspection struct {
	Path      string             `json:"path"`
	Tables    []string           `json:"tables,omitempty"`
	Table     string             `json:"table,omitempty"`
	Rows      int                `json:"rows"`
	Columns   []ColumnInspection `json:"columns"`
	DateCol   string             `json:"date_column,omitempty"`
	TimeCol   string             `json:"time_column,omitempty"`
	Start     *time.Time         `json:"start,omitempty"`
	SessionID string             `json:"session_id,omitempty"`
}

// ColumnInspection describes one column of a recorder file
type ColumnInspection struct {
	Name    string `json:"name"`
	Known   bool   `json:"known"`
	Unit    string `json:"unit,omitempty"`
	Present int    `json:"present"`
}

func inspectFile(path string, loc *time.Location) (*FileInspection, error) {
	report := &FileInspection{Path: path}

	var raw *internal.Table
	if isSQLiteFile(path) || inspectTable != "" {
		db, err := internal.OpenRecorderDatabase(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()

		report.Tables, err = internal.ListTables(db)
		if err != nil {
			return nil, fmt.Errorf("failed to list tables: %w", err)
		}
		report.Table = inspectTable
		if report.Table == "" {
			report.Table = internal.DefaultRecorderTable
		}
		raw, err = internal.ReadRawTableFromDB(db, report.Table)
		if err != nil {
			return nil, fmt.Errorf("failed to read table %s: %w", report.Table, err)
		}
	} else {
		var err error
		raw, err = internal.ReadTableFile(path)
		if err != nil {
			return nil, err
		}
	}

	report.Rows = raw.Len()
	for _, name := range raw.Header() {
		col := ColumnInspection{Name: name}
		if c, ok := internal.ColumnByName(name); ok && raw.Has(c) {
			col.Known = true
			col.Unit = c.Unit()
			col.Present = len(raw.Series(c).PresentValues())
		} else if values, ok := raw.Text(name); ok {
			for _, v := range values {
				if strings.TrimSpace(v) != "" {
					col.Present++
				}
			}
		}
		report.Columns = append(report.Columns, col)
	}

	report.DateCol, report.TimeCol = internal.FindStampColumns(raw.Header())
	if start, ok := internal.RecordingStart(raw, loc, time.Now()); ok {
		report.Start = &start
		report.SessionID = internal.SessionID(start)
	}
	return report, nil
}

func displayInspection(out io.Writer, r *FileInspection) {
	fmt.Fprintln(out, sessionHeaderStyle.Render("📊 "+filepath.Base(r.Path)))
	if len(r.Tables) > 0 {
		fmt.Fprintf(out, "Tables: %s\n", strings.Join(r.Tables, ", "))
		fmt.Fprintf(out, "Inspecting: %s\n", r.Table)
	}
	fmt.Fprintf(out, "Rows: %d\n\n", r.Rows)

	fmt.Fprintln(out, labelStyle.Render("Columns:"))
	for _, c := range r.Columns {
		switch {
		case c.Known && c.Unit != "":
			fmt.Fprintf(out, "  %-14s %-6s %d present\n", c.Name, c.Unit, c.Present)
		case c.Known:
			fmt.Fprintf(out, "  %-14s %-6s %d present\n", c.Name, "-", c.Present)
		default:
			fmt.Fprintf(out, "  %-14s %s\n", c.Name, mutedStyle.Render(fmt.Sprintf("not a telemetry column, %d non-empty", c.Present)))
		}
	}
	fmt.Fprintln(out)

	if r.DateCol == "" || r.TimeCol == "" {
		fmt.Fprintln(out, warningStyle.Render("⚠️  No date/time columns found, an import would use the current time"))
		return
	}
	fmt.Fprintf(out, "Date column: %s\n", r.DateCol)
	fmt.Fprintf(out, "Time column: %s\n", r.TimeCol)
	if r.Start == nil {
		fmt.Fprintln(out, warningStyle.Render("⚠️  No usable timestamp in the leading rows"))
		return
	}
	fmt.Fprintf(out, "Recording start: %s\n", r.Start.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "Session id: %s\n", idStyle.Render(r.SessionID))
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "text", "Output format: text or json")
	inspectCmd.Flags().StringVar(&inspectTable, "sqlite-table", "", "Table to inspect in a SQLite dump (default \"data\")")
}
