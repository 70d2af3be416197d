package export

import (
	"io"

	"github.com/styx-analyse/styx-session/internal"
)

// CSVExporter exports the range as a session table
type CSVExporter struct{}

// Export writes the rows of the range with the stored column order
func (e *CSVExporter) Export(r *Report, w io.Writer) error {
	if r.Slice == nil || r.Slice.Table == nil {
		return nil
	}
	return internal.WriteTable(w, r.Slice.Table)
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}
