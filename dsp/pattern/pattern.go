// Package pattern synthesizes first-order polar patterns from a
// dual-capsule signal pair.
//
// A directivity factor d in [-0.5, 1] blends the omni (front+back) and
// figure-eight (front-back) signals:
//
//	y = (1-|d|)*omni + d*eight
//
// d = 0 is omni, 0.5 cardioid, 1 figure-eight; negative values mirror the
// pattern to the rear, -0.5 being the reverse cardioid.
package pattern

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Pattern is one of the named polar patterns.
type Pattern int

const (
	ReverseCardioid Pattern = iota
	ReverseBroadCardioid
	Omni
	BroadCardioid
	Cardioid
	SuperCardioid
	HyperCardioid
	FigureEight

	// Count is the number of named patterns.
	Count = int(FigureEight) + 1
)

const (
	// Min is the smallest directivity factor.
	Min = -0.5
	// Max is the largest directivity factor.
	Max = 1.0
	// SnapTolerance is the distance within which a value snaps to a named
	// pattern.
	SnapTolerance = 0.035
)

var values = []float64{-0.5, -0.37, 0, 0.37, 0.5, 0.634, 0.75, 1}

var names = [Count]string{
	"reverse-cardioid",
	"reverse-broad-cardioid",
	"omni",
	"broad-cardioid",
	"cardioid",
	"super-cardioid",
	"hyper-cardioid",
	"figure-eight",
}

// All returns every named pattern in ascending directivity order.
func All() []Pattern {
	out := make([]Pattern, Count)
	for i := range out {
		out[i] = Pattern(i)
	}
	return out
}

// Value returns the directivity factor of p.
func (p Pattern) Value() float64 {
	if !p.Valid() {
		return 0
	}
	return values[p]
}

// Valid reports whether p is a named pattern.
func (p Pattern) Valid() bool {
	return p >= 0 && int(p) < Count
}

// Reverse reports whether p picks up mainly from the rear.
func (p Pattern) Reverse() bool {
	return p.Value() < 0
}

func (p Pattern) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return names[p]
}

// Parse returns the pattern named s.
func Parse(s string) (Pattern, bool) {
	for i, n := range names {
		if n == s {
			return Pattern(i), true
		}
	}
	return 0, false
}

// Nearest returns the named pattern closest to d.
func Nearest(d float64) Pattern {
	if math.IsNaN(d) {
		return Omni
	}
	return Pattern(floats.NearestIdx(values, d))
}

// Snap returns the value of the nearest named pattern if d lies strictly
// within SnapTolerance of it, and d otherwise.
func Snap(d float64) float64 {
	v := Nearest(d).Value()
	if math.Abs(d-v) < SnapTolerance {
		return v
	}
	return d
}

// Clamp limits d to [Min, Max], or to [0, Max] when reverse patterns are not
// allowed. NaN maps to omni.
func Clamp(d float64, allowReverse bool) float64 {
	lo := Min
	if !allowReverse {
		lo = 0
	}
	switch {
	case math.IsNaN(d):
		return 0
	case d < lo:
		return lo
	case d > Max:
		return Max
	}
	return d
}
