package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// Parameter is one value of the layout. Values are stored as atomic bits so
// the audio thread can read them while the control thread writes.
type Parameter struct {
	Info
	value atomic.Uint64
}

func newParameter(s Info) *Parameter {
	p := &Parameter{Info: s}
	p.value.Store(math.Float64bits(s.Default))
	return p
}

// Value returns the plain value.
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.value.Load())
}

// set stores the constrained plain value and reports whether it changed.
func (p *Parameter) set(v float64) bool {
	v = p.Constrain(v)
	return math.Float64bits(v) != p.value.Swap(math.Float64bits(v))
}

// Constrain clamps v to the range and rounds discrete values. NaN maps to
// the default.
func (p *Parameter) Constrain(v float64) float64 {
	if math.IsNaN(v) {
		return p.Default
	}
	if p.Kind != Float {
		v = math.Round(v)
	}
	return math.Max(p.Min, math.Min(p.Max, v))
}

// Normalize converts a plain value to [0, 1].
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	return (p.Constrain(plain) - p.Min) / (p.Max - p.Min)
}

// Denormalize converts a normalized value to a plain value.
func (p *Parameter) Denormalize(normalized float64) float64 {
	normalized = math.Max(0, math.Min(1, normalized))
	return p.Constrain(p.Min + normalized*(p.Max-p.Min))
}

// Bool reports whether a switch parameter is on.
func (p *Parameter) Bool() bool {
	return p.Value() >= 0.5
}

// Int returns the value of a discrete parameter.
func (p *Parameter) Int() int {
	return int(math.Round(p.Value()))
}

// Format returns the raw display text of plain: discrete values show their
// stored index. Store.Format gives the user-facing form (band count, mode
// names, crossover Hz) and Store.Parse reads it back.
func (p *Parameter) Format(plain float64) string {
	plain = p.Constrain(plain)
	switch p.Kind {
	case Bool:
		if plain >= 0.5 {
			return "on"
		}
		return "off"
	case Int:
		return strconv.Itoa(int(plain))
	}
	if p.Unit != "" {
		return fmt.Sprintf("%.1f %s", plain, p.Unit)
	}
	return fmt.Sprintf("%.2f", plain)
}

// Parse converts display text back to a plain value.
func (p *Parameter) Parse(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if p.Kind == Bool {
		switch strings.ToLower(text) {
		case "on", "true", "1":
			return 1, nil
		case "off", "false", "0":
			return 0, nil
		}
		return 0, fmt.Errorf("param: %s: invalid switch value %q", p.ID, text)
	}
	if p.Unit != "" {
		text = strings.TrimSpace(strings.TrimSuffix(text, p.Unit))
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("param: %s: %w", p.ID, err)
	}
	return p.Constrain(v), nil
}
