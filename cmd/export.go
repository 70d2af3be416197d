package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/styx-analyse/styx-session/internal"
	"github.com/styx-analyse/styx-session/internal/analysis"
	"github.com/styx-analyse/styx-session/internal/export"
)

var (
	exportFormat   string
	exportOutput   string
	exportFrom     float64
	exportTo       float64
	exportAt       int
	exportCharts   string
	exportEnergy   string
	exportAdvanced bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session range to file",
	Long: `Export a session, or the part of it selected with --from/--to, to one of:
  md       summary report
  json     summary, cursor readout and chart list
  yaml     same as json
  jsonl    one line per sample
  csv      the samples as a session table
  geojson  the GPS track as a LineString with start and end points
  html     one echarts line chart per series

Use 'styx-session list' to see available session IDs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		store, cfg, err := openStore()
		if err != nil {
			return err
		}

		id := sessionIDArg(args[0])
		a, err := openAnalysis(store, cfg, id, exportEnergy, exportAdvanced)
		if err != nil {
			return err
		}
		a.SetRangePercent(exportFrom, exportTo)
		if err := applyCharts(a, exportCharts); err != nil {
			return err
		}
		if exportAt >= 0 {
			if exportAt >= a.Current().Len() {
				return fmt.Errorf("--at %d is outside the range (%d samples)", exportAt, a.Current().Len())
			}
			if !a.LockAt(exportAt) {
				return fmt.Errorf("cannot place the cursor at sample %d", exportAt)
			}
		}

		comment, err := store.Comment(id)
		if err != nil {
			internal.LogWarn("Failed to load comment: %v", err)
		}
		report := export.NewReport(a, store.Location(), comment)

		var buf bytes.Buffer
		if err := exporter.Export(report, &buf); err != nil {
			return fmt.Errorf("failed to export %s: %w", id, err)
		}

		if exportOutput == "-" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}

		path := exportOutput
		if path == "" {
			path = strings.TrimSuffix(id, ".csv") + "." + exporter.Extension()
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		err = internal.ShowProgress(ctx, fmt.Sprintf("Writing %s", path), func() error {
			return internal.WriteFileAtomic(path, buf.Bytes(), 0644)
		})
		if err != nil {
			return &internal.ExportError{Format: exportFormat, Path: path, Err: err}
		}

		internal.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Export complete: %s", path))
		return nil
	},
}

// applyCharts replaces the default chart with the comma-separated kinds
func applyCharts(a *analysis.Analysis, list string) error {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	for i, name := range strings.Split(list, ",") {
		kind, ok := analysis.ParseKind(strings.TrimSpace(name))
		if !ok {
			return fmt.Errorf("unknown chart series %q", name)
		}
		if i == 0 {
			if err := a.Charts()[0].SetKind(kind); err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			continue
		}
		if _, err := a.AddChart(kind); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format (md, json, yaml, jsonl, csv, geojson, html)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, - for stdout (default <session>.<ext>)")
	exportCmd.Flags().Float64Var(&exportFrom, "from", 0, "Range start, percent of the recording")
	exportCmd.Flags().Float64Var(&exportTo, "to", 100, "Range end, percent of the recording")
	exportCmd.Flags().IntVar(&exportAt, "at", -1, "Pin the cursor at this sample of the range")
	exportCmd.Flags().StringVar(&exportCharts, "charts", "", "Comma-separated chart series (see 'show')")
	exportCmd.Flags().StringVar(&exportEnergy, "energy", "auto", "Energy columns: auto, cumulative or instantaneous")
	exportCmd.Flags().BoolVar(&exportAdvanced, "advanced", false, "Allow advanced chart series")
}
