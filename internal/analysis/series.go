package analysis

import (
	"github.com/styx-analyse/styx-session/internal"
)

// SeriesKind names a chartable series
type SeriesKind string

const (
	KindNone SeriesKind = "none"

	KindVoltage       SeriesKind = "voltage"
	KindSpeed         SeriesKind = "speed"
	KindThrottle      SeriesKind = "throttle"
	KindEnergyBalance SeriesKind = "energy_balance"
	KindPower         SeriesKind = "power"
	KindAltitude      SeriesKind = "altitude"

	KindCharged      SeriesKind = "charged"
	KindDischarged   SeriesKind = "discharged"
	KindOdometer     SeriesKind = "odometer"
	KindGPSDistance  SeriesKind = "gps_distance"
	KindCurrentIn    SeriesKind = "current_in"
	KindMotorCurrent SeriesKind = "motor_current"
	KindLatitude     SeriesKind = "latitude"
	KindLongitude    SeriesKind = "longitude"
	KindSatSpeed     SeriesKind = "sat_speed"
	KindHeading      SeriesKind = "heading"
	KindSatellites   SeriesKind = "satellites"
	KindHDOP         SeriesKind = "hdop"
)

type seriesDef struct {
	kind     SeriesKind
	label    string
	unit     string
	advanced bool
	needs    []internal.Column
	derive   func(t *internal.Table) *internal.Series
}

// catalogue lists the series in menu order: normal mode first
var catalogue = []seriesDef{
	column(KindVoltage, "Voltage", internal.ColVoltage, false),
	column(KindSpeed, "Speed", internal.ColSpeed, false),
	column(KindThrottle, "Throttle/brake", internal.ColThrottle, false),
	{
		kind:   KindEnergyBalance,
		label:  "Energy balance",
		unit:   "Wh",
		needs:  []internal.Column{internal.ColWhCharged, internal.ColWhDischarged},
		derive: energyBalance,
	},
	{
		kind:   KindPower,
		label:  "Electrical power",
		unit:   "W",
		needs:  []internal.Column{internal.ColVoltage, internal.ColCurrentIn},
		derive: electricalPower,
	},
	column(KindAltitude, "Altitude", internal.ColAltitude, false),

	column(KindCharged, "Energy charged", internal.ColWhCharged, true),
	column(KindDischarged, "Energy discharged", internal.ColWhDischarged, true),
	column(KindOdometer, "Distance (sensor)", internal.ColOdometer, true),
	column(KindGPSDistance, "Distance (GPS)", internal.ColGPSDistance, true),
	column(KindCurrentIn, "Input current", internal.ColCurrentIn, true),
	column(KindMotorCurrent, "Motor current", internal.ColMotorCurrent, true),
	column(KindLatitude, "Latitude", internal.ColLatitude, true),
	column(KindLongitude, "Longitude", internal.ColLongitude, true),
	column(KindSatSpeed, "Satellite speed", internal.ColSatSpeed, true),
	column(KindHeading, "Heading", internal.ColHeading, true),
	column(KindSatellites, "Satellites", internal.ColSatellites, true),
	column(KindHDOP, "HDOP", internal.ColHDOP, true),
}

func column(kind SeriesKind, label string, c internal.Column, advanced bool) seriesDef {
	return seriesDef{
		kind:     kind,
		label:    label,
		unit:     c.Unit(),
		advanced: advanced,
		needs:    []internal.Column{c},
		derive: func(t *internal.Table) *internal.Series {
			return t.Series(c).Clone()
		},
	}
}

func lookup(kind SeriesKind) (seriesDef, bool) {
	for _, def := range catalogue {
		if def.kind == kind {
			return def, true
		}
	}
	return seriesDef{}, false
}

// Kinds returns every known series kind in menu order
func Kinds() []SeriesKind {
	kinds := make([]SeriesKind, len(catalogue))
	for i, def := range catalogue {
		kinds[i] = def.kind
	}
	return kinds
}

// ParseKind resolves a series kind name
func ParseKind(name string) (SeriesKind, bool) {
	if SeriesKind(name) == KindNone {
		return KindNone, true
	}
	_, ok := lookup(SeriesKind(name))
	return SeriesKind(name), ok
}

// Label returns the display label of kind
func Label(kind SeriesKind) string {
	if def, ok := lookup(kind); ok {
		return def.label
	}
	return "No chart"
}

// Unit returns the display unit of kind
func Unit(kind SeriesKind) string {
	def, _ := lookup(kind)
	return def.unit
}

// Available returns the kinds t can chart. Advanced kinds are only listed in
// advanced mode.
func Available(t *internal.Table, advanced bool) []SeriesKind {
	var kinds []SeriesKind
	for _, def := range catalogue {
		if def.advanced && !advanced {
			continue
		}
		if hasAll(t, def.needs) {
			kinds = append(kinds, def.kind)
		}
	}
	return kinds
}

// IsAvailable reports whether kind can be charted from t in the given mode
func IsAvailable(t *internal.Table, kind SeriesKind, advanced bool) bool {
	def, ok := lookup(kind)
	if !ok || (def.advanced && !advanced) {
		return false
	}
	return hasAll(t, def.needs)
}

// Compute returns the values of kind over t, nil when t lacks a column
func Compute(t *internal.Table, kind SeriesKind) *internal.Series {
	def, ok := lookup(kind)
	if !ok || !hasAll(t, def.needs) {
		return nil
	}
	return def.derive(t)
}

func hasAll(t *internal.Table, cols []internal.Column) bool {
	if t == nil {
		return false
	}
	for _, c := range cols {
		if !t.Has(c) {
			return false
		}
	}
	return true
}

func energyBalance(t *internal.Table) *internal.Series {
	return combine(t.Series(internal.ColWhCharged), t.Series(internal.ColWhDischarged), func(a, b float64) float64 { return a - b })
}

func electricalPower(t *internal.Table) *internal.Series {
	return combine(t.Series(internal.ColVoltage), t.Series(internal.ColCurrentIn), func(a, b float64) float64 { return a * b })
}

func combine(a, b *internal.Series, op func(a, b float64) float64) *internal.Series {
	out := internal.NewSeries(a.Len())
	for i := 0; i < a.Len(); i++ {
		x, ok1 := a.At(i)
		y, ok2 := b.At(i)
		if ok1 && ok2 {
			out.Set(i, op(x, y))
		}
	}
	return out
}
