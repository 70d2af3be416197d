package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONLExporter exports the samples of the range in JSONL format (one
// sample per line)
type JSONLExporter struct{}

// Export exports a report to JSONL format
func (e *JSONLExporter) Export(r *Report, w io.Writer) error {
	if r.Slice == nil || r.Slice.Table == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	t := r.Slice.Table
	schema := t.Schema()

	for i := 0; i < t.Len(); i++ {
		// Row index in the whole session
		obj := map[string]interface{}{
			"index": r.Slice.Offset + i,
		}
		for _, c := range schema {
			if v, ok := t.Value(c, i); ok {
				obj[c.String()] = v
			}
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode sample %d: %w", i, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
