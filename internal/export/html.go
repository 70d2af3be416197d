package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/styx-analyse/styx-session/internal"
	"github.com/styx-analyse/styx-session/internal/analysis"
)

// HTMLExporter renders one echarts line chart per plotted series of the
// range. The cursor sample is drawn as a vertical mark line.
type HTMLExporter struct {
	AssetsHost string // optional echarts assets prefix
}

// Export renders a report as a standalone HTML page
func (e *HTMLExporter) Export(r *Report, w io.Writer) error {
	if r.Slice == nil || r.Slice.Table == nil {
		return &internal.ExportError{Format: "html", Err: fmt.Errorf("no samples in range")}
	}

	page := components.NewPage()
	if e.AssetsHost != "" {
		page.SetAssetsHost(e.AssetsHost)
	}

	x := xLabels(r.Slice)
	cursorX := ""
	if r.Cursor.Index >= 0 && r.Cursor.Index < len(x) {
		cursorX = x[r.Cursor.Index]
	}

	kinds := make([]analysis.SeriesKind, 0, len(r.Charts))
	for _, c := range r.Charts {
		kinds = append(kinds, c.Kind)
	}
	if len(kinds) == 0 {
		kinds = analysis.Available(r.Slice.Table, false)
	}

	for _, kind := range kinds {
		s := analysis.Compute(r.Slice.Table, kind)
		if s == nil {
			continue
		}
		data := make([]opts.LineData, s.Len())
		for i := range data {
			if v, ok := s.At(i); ok {
				data[i] = opts.LineData{Value: v}
			} else {
				data[i] = opts.LineData{Value: "-"}
			}
		}

		title := analysis.Label(kind)
		if unit := analysis.Unit(kind); unit != "" {
			title += " (" + unit + ")"
		}
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{PageTitle: r.Name, Width: "100%", Height: "360px", AssetsHost: e.AssetsHost}),
			charts.WithTitleOpts(opts.Title{Title: title, Subtitle: r.Name}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithXAxisOpts(opts.XAxis{Name: "Temps (s)", NameLocation: "middle", NameGap: 25}),
			charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
		)

		seriesOpts := []charts.SeriesOpts{}
		if cursorX != "" {
			seriesOpts = append(seriesOpts, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{Name: "cursor", XAxis: cursorX}))
		}
		line.SetXAxis(x).AddSeries(string(kind), data, seriesOpts...)
		page.AddCharts(line)
	}

	if err := page.Render(w); err != nil {
		return &internal.ExportError{Format: "html", Err: err}
	}
	return nil
}

// xLabels returns the category axis: elapsed seconds, or the row index
func xLabels(s *internal.Session) []string {
	out := make([]string, s.Len())
	elapsed := s.Table.Series(internal.ColElapsed)
	for i := range out {
		if elapsed != nil {
			if v, ok := elapsed.At(i); ok {
				out[i] = strconv.FormatFloat(v, 'f', -1, 64)
				continue
			}
		}
		out[i] = strconv.Itoa(s.Offset + i)
	}
	return out
}

// Extension returns the file extension for this format
func (e *HTMLExporter) Extension() string {
	return "html"
}
