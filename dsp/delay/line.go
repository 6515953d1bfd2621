// Package delay provides the circular sample buffers used to keep bands and
// processing paths time-aligned.
package delay

import "fmt"

// Line is a circular delay line with a fixed integer delay.
//
// The buffer holds exactly Delay() samples, so ProcessSample returns the
// sample written Delay() calls earlier. A delay of zero is a pass-through.
type Line struct {
	buffer   []float64
	writePos int
	delay    int
}

// New returns a delay line that can hold delays up to maxDelay samples
// without reallocating. The initial delay is maxDelay.
func New(maxDelay int) (*Line, error) {
	if maxDelay < 0 {
		return nil, fmt.Errorf("delay: max delay must be >= 0: %d", maxDelay)
	}
	return &Line{
		buffer: make([]float64, maxDelay),
		delay:  maxDelay,
	}, nil
}

// SetDelay reconfigures the delay in samples and clears the line. Capacity
// grows when n exceeds it; callers on the audio thread must stay within the
// capacity requested at construction.
func (d *Line) SetDelay(n int) error {
	if n < 0 {
		return fmt.Errorf("delay: delay must be >= 0: %d", n)
	}
	if n > cap(d.buffer) {
		d.buffer = make([]float64, n)
	}
	d.buffer = d.buffer[:n]
	d.delay = n
	d.Reset()
	return nil
}

// Delay returns the configured delay in samples.
func (d *Line) Delay() int {
	return d.delay
}

// Cap returns the largest delay that can be set without reallocating.
func (d *Line) Cap() int {
	return cap(d.buffer)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	if d.delay == 0 {
		return
	}
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= d.delay {
		d.writePos = 0
	}
}

// Read returns the sample written tap calls ago (tap in [1, Delay()]).
func (d *Line) Read(tap int) float64 {
	size := d.delay
	if size == 0 || tap <= 0 || tap > size {
		return 0
	}
	readPos := (d.writePos - tap + size) % size
	return d.buffer[readPos]
}

// ProcessSample pushes x and returns the sample delayed by Delay().
func (d *Line) ProcessSample(x float64) float64 {
	if d.delay == 0 {
		return x
	}
	y := d.buffer[d.writePos]
	d.buffer[d.writePos] = x
	d.writePos++
	if d.writePos >= d.delay {
		d.writePos = 0
	}
	return y
}

// ProcessBlock writes the delayed copy of src into dst. dst and src may be
// the same slice; dst must be at least as long as src.
func (d *Line) ProcessBlock(dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}
	_ = dst[n-1]
	if d.delay == 0 {
		copy(dst, src)
		return
	}
	buf := d.buffer
	pos := d.writePos
	for i := 0; i < n; i++ {
		x := src[i]
		dst[i] = buf[pos]
		buf[pos] = x
		pos++
		if pos >= d.delay {
			pos = 0
		}
	}
	d.writePos = pos
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// Multi is a set of equally delayed lines, one per channel.
type Multi struct {
	lines []*Line
}

// NewMulti allocates channels lines with capacity maxDelay each.
func NewMulti(channels, maxDelay int) (*Multi, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("delay: channel count must be > 0: %d", channels)
	}
	m := &Multi{lines: make([]*Line, channels)}
	for ch := range m.lines {
		l, err := New(maxDelay)
		if err != nil {
			return nil, err
		}
		m.lines[ch] = l
	}
	return m, nil
}

// SetDelay sets the same delay on every channel and clears all state.
func (m *Multi) SetDelay(n int) error {
	for _, l := range m.lines {
		if err := l.SetDelay(n); err != nil {
			return err
		}
	}
	return nil
}

// Channel returns the line for channel ch.
func (m *Multi) Channel(ch int) *Line {
	return m.lines[ch]
}

// Channels returns the channel count.
func (m *Multi) Channels() int {
	return len(m.lines)
}

// Reset clears all channels.
func (m *Multi) Reset() {
	for _, l := range m.lines {
		l.Reset()
	}
}
