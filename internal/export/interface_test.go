package export

import (
	"fmt"
	"testing"
)

func TestNewExporter(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantType string
		wantExt  string
		wantErr  bool
	}{
		{name: "jsonl format", format: "jsonl", wantType: "*export.JSONLExporter", wantExt: "jsonl"},
		{name: "markdown format", format: "md", wantType: "*export.MarkdownExporter", wantExt: "md"},
		{name: "markdown format long", format: "markdown", wantType: "*export.MarkdownExporter", wantExt: "md"},
		{name: "yaml format", format: "yaml", wantType: "*export.YAMLExporter", wantExt: "yaml"},
		{name: "json format", format: "json", wantType: "*export.JSONExporter", wantExt: "json"},
		{name: "csv format", format: "csv", wantType: "*export.CSVExporter", wantExt: "csv"},
		{name: "geojson format", format: "geojson", wantType: "*export.GeoJSONExporter", wantExt: "geojson"},
		{name: "html format", format: "html", wantType: "*export.HTMLExporter", wantExt: "html"},
		{name: "unsupported format", format: "xml", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewExporter() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if exporter != nil {
					t.Errorf("NewExporter() returned exporter %T, want nil", exporter)
				}
				return
			}

			if got := exporter.Extension(); got != tt.wantExt {
				t.Errorf("Exporter.Extension() = %v, want %v", got, tt.wantExt)
			}
			if got := fmt.Sprintf("%T", exporter); got != tt.wantType {
				t.Errorf("NewExporter() type = %s, want %s", got, tt.wantType)
			}
		})
	}
}

func TestFormatsAreSupported(t *testing.T) {
	for _, f := range Formats() {
		if _, err := NewExporter(f); err != nil {
			t.Errorf("NewExporter(%q) error = %v", f, err)
		}
	}
}
