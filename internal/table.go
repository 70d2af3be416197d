package internal

import "strings"

// Column identifies a known telemetry column emitted by the recorder
type Column int

const (
	ColElapsed      Column = iota // seconds since the start of the recording
	ColSpeed                      // km/h
	ColVoltage                    // V
	ColCurrentIn                  // A
	ColMotorCurrent               // A
	ColAltitude                   // m
	ColOdometer                   // m, raw wheel sensor distance
	ColWhCharged                  // Wh
	ColWhDischarged               // Wh
	ColLatitude                   // degrees
	ColLongitude                  // degrees
	ColSatellites
	ColSatSpeed // km/h from the GPS fix
	ColHeading  // degrees
	ColHDOP
	ColThrottle    // throttle/brake lever
	ColGPSDistance // m, derived from Lat/Lon

	numColumns
)

var columnNames = [numColumns]string{
	ColElapsed:      "Temps",
	ColSpeed:        "Vitesse",
	ColVoltage:      "Tension",
	ColCurrentIn:    "CurrentIn",
	ColMotorCurrent: "MotorCurrent",
	ColAltitude:     "Alt",
	ColOdometer:     "Distance",
	ColWhCharged:    "WHCharged",
	ColWhDischarged: "WHDischarged",
	ColLatitude:     "Lat",
	ColLongitude:    "Lon",
	ColSatellites:   "Sat",
	ColSatSpeed:     "Vsat",
	ColHeading:      "Cap",
	ColHDOP:         "HDOP",
	ColThrottle:     "GazFrein",
	ColGPSDistance:  "Distance_GPS",
}

var columnUnits = [numColumns]string{
	ColElapsed:      "s",
	ColSpeed:        "km/h",
	ColVoltage:      "V",
	ColCurrentIn:    "A",
	ColMotorCurrent: "A",
	ColAltitude:     "m",
	ColOdometer:     "m",
	ColWhCharged:    "Wh",
	ColWhDischarged: "Wh",
	ColLatitude:     "°",
	ColLongitude:    "°",
	ColSatSpeed:     "km/h",
	ColHeading:      "°",
	ColGPSDistance:  "m",
}

// String returns the recorder header name of the column
func (c Column) String() string {
	if c < 0 || c >= numColumns {
		return "unknown"
	}
	return columnNames[c]
}

// Unit returns the display unit of the column, empty when dimensionless
func (c Column) Unit() string {
	if c < 0 || c >= numColumns {
		return ""
	}
	return columnUnits[c]
}

// AllColumns returns every known column in canonical order
func AllColumns() []Column {
	cols := make([]Column, 0, numColumns)
	for c := Column(0); c < numColumns; c++ {
		cols = append(cols, c)
	}
	return cols
}

// ColumnByName resolves a header name to a known column (case-insensitive)
func ColumnByName(name string) (Column, bool) {
	name = strings.TrimSpace(name)
	for c := Column(0); c < numColumns; c++ {
		if strings.EqualFold(columnNames[c], name) {
			return c, true
		}
	}
	return 0, false
}

// Series is one numeric column with a presence flag per row
type Series struct {
	Values  []float64
	Present []bool
}

// NewSeries creates a series of n missing values
func NewSeries(n int) *Series {
	return &Series{
		Values:  make([]float64, n),
		Present: make([]bool, n),
	}
}

// SeriesOf creates a fully present series from values
func SeriesOf(values ...float64) *Series {
	s := NewSeries(len(values))
	copy(s.Values, values)
	for i := range s.Present {
		s.Present[i] = true
	}
	return s
}

// Len returns the number of rows
func (s *Series) Len() int {
	return len(s.Values)
}

// At returns the value at row i and whether it is present
func (s *Series) At(i int) (float64, bool) {
	if i < 0 || i >= len(s.Values) || !s.Present[i] {
		return 0, false
	}
	return s.Values[i], true
}

// Set stores a present value at row i
func (s *Series) Set(i int, v float64) {
	s.Values[i] = v
	s.Present[i] = true
}

// Unset marks row i as missing
func (s *Series) Unset(i int) {
	s.Values[i] = 0
	s.Present[i] = false
}

// First returns the first present value
func (s *Series) First() (float64, bool) {
	for i := range s.Values {
		if s.Present[i] {
			return s.Values[i], true
		}
	}
	return 0, false
}

// Last returns the last present value
func (s *Series) Last() (float64, bool) {
	for i := len(s.Values) - 1; i >= 0; i-- {
		if s.Present[i] {
			return s.Values[i], true
		}
	}
	return 0, false
}

// PresentValues returns the present values in row order
func (s *Series) PresentValues() []float64 {
	out := make([]float64, 0, len(s.Values))
	for i, v := range s.Values {
		if s.Present[i] {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns a deep copy
func (s *Series) Clone() *Series {
	c := &Series{
		Values:  make([]float64, len(s.Values)),
		Present: make([]bool, len(s.Present)),
	}
	copy(c.Values, s.Values)
	copy(c.Present, s.Present)
	return c
}

func (s *Series) slice(start, end int) *Series {
	c := &Series{
		Values:  make([]float64, end-start),
		Present: make([]bool, end-start),
	}
	copy(c.Values, s.Values[start:end])
	copy(c.Present, s.Present[start:end])
	return c
}

// Table is the columnar form of one session. Known columns are numeric
// series; every other header is carried through as raw text.
type Table struct {
	rows    int
	header  []string
	numeric map[Column]*Series
	text    map[string][]string
}

// NewTable creates an empty table with n rows
func NewTable(n int) *Table {
	return &Table{
		rows:    n,
		numeric: make(map[Column]*Series),
		text:    make(map[string][]string),
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return t.rows
}

// Header returns the stored column order
func (t *Table) Header() []string {
	out := make([]string, len(t.header))
	copy(out, t.header)
	return out
}

// Has reports whether a known column is present in the schema
func (t *Table) Has(c Column) bool {
	_, ok := t.numeric[c]
	return ok
}

// Schema returns the present known columns in canonical order
func (t *Table) Schema() []Column {
	var cols []Column
	for c := Column(0); c < numColumns; c++ {
		if t.Has(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Series returns the series for c, or nil when the column is absent
func (t *Table) Series(c Column) *Series {
	return t.numeric[c]
}

// Value returns the value of column c at row i
func (t *Table) Value(c Column, i int) (float64, bool) {
	s := t.numeric[c]
	if s == nil {
		return 0, false
	}
	return s.At(i)
}

// SetSeries adds or replaces a known column. The series length must match.
func (t *Table) SetSeries(c Column, s *Series) {
	if s.Len() != t.rows {
		panic("internal: series length does not match table")
	}
	if !t.Has(c) {
		t.header = append(t.header, c.String())
	}
	t.numeric[c] = s
}

// Text returns a pass-through column by header name
func (t *Table) Text(name string) ([]string, bool) {
	v, ok := t.text[name]
	return v, ok
}

// SetText adds or replaces a pass-through column
func (t *Table) SetText(name string, values []string) {
	if len(values) != t.rows {
		panic("internal: text column length does not match table")
	}
	if _, ok := t.text[name]; !ok {
		t.header = append(t.header, name)
	}
	t.text[name] = values
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	return t.Slice(0, t.rows)
}

// Slice returns a copy of rows [start, end)
func (t *Table) Slice(start, end int) *Table {
	out := NewTable(end - start)
	out.header = t.Header()
	for c, s := range t.numeric {
		out.numeric[c] = s.slice(start, end)
	}
	for name, v := range t.text {
		cp := make([]string, end-start)
		copy(cp, v[start:end])
		out.text[name] = cp
	}
	return out
}
