package core

// Ramp is a linear gain ramp that reaches a new target in a fixed number of
// samples.
type Ramp struct {
	current float64
	target  float64
	step    float64
	left    int
	length  int
}

// NewRamp returns a ramp settled at value that takes length samples per
// transition. length <= 0 makes every change immediate.
func NewRamp(value float64, length int) Ramp {
	return Ramp{current: value, target: value, length: length}
}

// SetTarget starts a transition from the current value toward v.
func (r *Ramp) SetTarget(v float64) {
	if v == r.target {
		return
	}
	r.target = v
	if r.length <= 0 {
		r.current = v
		r.left = 0
		return
	}
	r.left = r.length
	r.step = (v - r.current) / float64(r.length)
}

// Jump sets value immediately.
func (r *Ramp) Jump(v float64) {
	r.current = v
	r.target = v
	r.left = 0
}

// Value returns the current value.
func (r *Ramp) Value() float64 {
	return r.current
}

// Target returns the value the ramp is heading to.
func (r *Ramp) Target() float64 {
	return r.target
}

// Active reports whether a transition is in progress.
func (r *Ramp) Active() bool {
	return r.left > 0
}

// Next advances one sample and returns the new value.
func (r *Ramp) Next() float64 {
	if r.left > 0 {
		r.left--
		if r.left == 0 {
			r.current = r.target
		} else {
			r.current += r.step
		}
	}
	return r.current
}

// Apply multiplies buf by the ramp, advancing it len(buf) samples.
func (r *Ramp) Apply(buf []float64) {
	i := 0
	for ; i < len(buf) && r.left > 0; i++ {
		buf[i] *= r.Next()
	}
	if i == len(buf) {
		return
	}
	g := r.current
	if g == 1 {
		return
	}
	for ; i < len(buf); i++ {
		buf[i] *= g
	}
}
