package gene

import "math"

// Range is a closed interval [Min, Max] on one axis, in data units.
// A Range with Min > Max is inverted and contains nothing.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the closed interval.
// NaN never matches.
func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Inverted reports whether the range can match nothing.
func (r Range) Inverted() bool {
	return !(r.Min <= r.Max)
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Center returns the midpoint.
func (r Range) Center() float64 { return r.Min + r.Span()/2 }

// Zoom scales the range around its center. factor < 1 zooms in.
func (r Range) Zoom(factor float64) Range {
	if factor <= 0 || math.IsNaN(factor) {
		return r
	}
	c := r.Center()
	half := r.Span() / 2 * factor
	return Range{Min: c - half, Max: c + half}
}

// Pan shifts the range by frac of its span.
func (r Range) Pan(frac float64) Range {
	d := r.Span() * frac
	return Range{Min: r.Min + d, Max: r.Max + d}
}

// Clone returns a pointer to a copy of r.
func (r Range) Clone() *Range {
	c := r
	return &c
}

// or returns *p when set, def otherwise.
func (p *Range) or(def Range) Range {
	if p == nil {
		return def
	}
	return *p
}
