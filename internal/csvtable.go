package internal

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ReadTableFile reads a delimited session file with a header row
func ReadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}
	t, err := DecodeTable(data)
	if err != nil {
		return nil, &ParseError{Source: "csv", Key: path, Err: err}
	}
	return t, nil
}

// DecodeTable parses delimited data. The delimiter is sniffed from the header line.
func DecodeTable(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	delim := sniffDelimiter(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		if isBlankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}

	return tableFromRecords(header, records, delim == ';'), nil
}

// tableFromRecords builds a table from a header and string rows. Known
// headers become numeric series; unparseable cells are left missing.
func tableFromRecords(header []string, records [][]string, decimalComma bool) *Table {
	t := NewTable(len(records))
	for col, name := range header {
		name = strings.TrimSpace(name)
		cells := make([]string, len(records))
		for i, rec := range records {
			if col < len(rec) {
				cells[i] = strings.TrimSpace(rec[col])
			}
		}

		c, known := ColumnByName(name)
		if known && !t.Has(c) {
			s := NewSeries(len(records))
			for i, cell := range cells {
				if v, ok := parseCell(cell, decimalComma); ok {
					s.Set(i, v)
				}
			}
			t.SetSeries(c, s)
			continue
		}
		if _, dup := t.Text(name); dup || (known && t.Has(c)) {
			name = fmt.Sprintf("%s_%d", name, col)
		}
		t.SetText(name, cells)
	}
	return t
}

func parseCell(cell string, decimalComma bool) (float64, bool) {
	if cell == "" || strings.EqualFold(cell, "nan") {
		return 0, false
	}
	if decimalComma {
		cell = strings.Replace(cell, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// EncodeTable writes the table as comma-separated text with a header row.
// Missing values are written as empty cells.
func EncodeTable(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTable writes the table as comma-separated text with a header row
func WriteTable(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	header := t.Header()
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := 0; i < t.Len(); i++ {
		for j, name := range header {
			row[j] = t.cell(name, i)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (t *Table) cell(name string, i int) string {
	if c, ok := ColumnByName(name); ok {
		if s := t.numeric[c]; s != nil {
			if v, ok := s.At(i); ok {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
			return ""
		}
	}
	if v, ok := t.text[name]; ok {
		return v[i]
	}
	return ""
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func isBlankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
