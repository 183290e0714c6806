package plot

import (
	"math"
	"strings"

	"go.trai.ch/zerr"

	"enrichment-dash/internal/gene"
)

// Scale is an axis type.
type Scale string

const (
	Linear Scale = "linear"
	Log    Scale = "log"
)

// ErrUnknownScale is returned by ParseScale.
var ErrUnknownScale = zerr.New("unknown axis scale")

// ParseScale accepts "linear" or "log" (case-insensitive). Empty means linear.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Linear):
		return Linear, nil
	case string(Log):
		return Log, nil
	default:
		return Linear, zerr.With(ErrUnknownScale, "scale", s)
	}
}

// Toggle switches between linear and log.
func (s Scale) Toggle() Scale {
	if s == Log {
		return Linear
	}
	return Log
}

// Forward maps a data value onto the axis. ok is false for values a log axis
// cannot show.
func (s Scale) Forward(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if s == Log {
		if v <= 0 {
			return 0, false
		}
		return math.Log10(v), true
	}
	return v, true
}

// Inverse maps an axis position back to data units.
func (s Scale) Inverse(u float64) float64 {
	if s == Log {
		return math.Pow(10, u)
	}
	return u
}

// axisRange maps a data range onto the axis. On a log axis a non-positive
// lower bound is lifted to three decades below the upper bound.
func (s Scale) axisRange(r gene.Range) (lo, hi float64) {
	if s != Log {
		return r.Min, r.Max
	}
	top := r.Max
	if top <= 0 {
		top = 1
	}
	bottom := r.Min
	if bottom <= 0 {
		bottom = top / 1000
	}
	return math.Log10(bottom), math.Log10(top)
}

// Pad widens r by frac of its span on both sides. A zero-width range is
// widened by one unit.
func Pad(r gene.Range, frac float64) gene.Range {
	span := r.Span()
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		if r.Inverted() || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
			return gene.Range{Min: 0, Max: 1}
		}
		return gene.Range{Min: r.Min - 1, Max: r.Max + 1}
	}
	return gene.Range{Min: r.Min - span*frac, Max: r.Max + span*frac}
}

// ZoomRange zooms r around its center in axis space, so a log axis zooms
// by decades rather than data units.
func ZoomRange(s Scale, r gene.Range, factor float64) gene.Range {
	lo, hi := s.axisRange(r)
	z := gene.Range{Min: lo, Max: hi}.Zoom(factor)
	return gene.Range{Min: s.Inverse(z.Min), Max: s.Inverse(z.Max)}
}

// PanRange shifts r by frac of its span in axis space.
func PanRange(s Scale, r gene.Range, frac float64) gene.Range {
	lo, hi := s.axisRange(r)
	p := gene.Range{Min: lo, Max: hi}.Pan(frac)
	return gene.Range{Min: s.Inverse(p.Min), Max: s.Inverse(p.Max)}
}
