package polar

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/core"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/delay"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/fieldeq"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/fir"
	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"
)

// State is the crossfade state of an Engine.
type State int32

const (
	// Stable means a single chain produces the output.
	Stable State = iota
	// Transitioning means the output fades from the previous chain to the
	// current one.
	Transitioning
)

func (s State) String() string {
	switch s {
	case Stable:
		return "stable"
	case Transitioning:
		return "transitioning"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Engine turns the two capsule signals of a dual-membrane microphone into a
// mono signal with a per-band polar pattern.
//
// The engine owns two complete processing chains. A configuration change that
// alters the topology (band count, crossover frequencies, field EQ mode or
// zero-latency mode) is applied to the idle chain, which is then faded in
// over the crossfade duration while the previous chain fades out. A change
// arriving during a fade preempts it: the chain being faded in becomes the
// one fading out. Scalar changes (directivity, gain, solo, mute, proximity)
// are applied to the current chain without a fade.
//
// SetConfig, Config, LatencySamples and State may be called from any
// goroutine. Prepare, Reset and Process must not run concurrently; Process
// does not allocate or block.
type Engine struct {
	logger    logrus.FieldLogger
	kernels   *fieldeq.Set
	crossfade float64

	pending atomic.Pointer[Config]
	state   atomic.Int32

	mu         sync.RWMutex
	sampleRate float64
	maxBlock   int

	chains  [2]*chain
	cur     int
	from    int
	applied Config

	fade    []float64
	fadePos int
	fading  bool

	history *delay.Multi
	omni    []float64
	eight   []float64
	outCur  []float64
	outFrom []float64
}

// New returns an engine prepared for the default sample rate and block size
// unless overridden by options.
func New(opts ...Option) (*Engine, error) {
	o := engineOptions{
		logger:    defaultLogger(),
		crossfade: CrossfadeSeconds,
		config:    DefaultConfig(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	e := &Engine{
		logger:    o.logger,
		kernels:   o.kernels,
		crossfade: o.crossfade,
	}
	e.SetConfig(o.config)

	proc := core.ApplyProcessorOptions(o.proc...)
	if err := e.Prepare(proc.SampleRate, proc.BlockSize); err != nil {
		return nil, err
	}
	return e, nil
}

// Prepare allocates all processing state for sampleRate and blocks of up to
// maxBlock samples. A running crossfade is abandoned and the latest
// configuration takes effect immediately.
func (e *Engine) Prepare(sampleRate float64, maxBlock int) error {
	proc := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlock}
	if err := proc.Validate(); err != nil {
		return fmt.Errorf("polar: %w", err)
	}

	prep, err := fieldeq.Prepare(e.kernels, sampleRate, maxBlock)
	if err != nil {
		return fmt.Errorf("polar: %w", err)
	}
	var chains [2]*chain
	for i := range chains {
		if chains[i], err = newChain(sampleRate, maxBlock, prep); err != nil {
			return err
		}
	}
	history, err := delay.NewMulti(2, fir.IRLength(sampleRate)+prep.KernelLen())
	if err != nil {
		return fmt.Errorf("polar: %w", err)
	}

	fade := make([]float64, proc.Samples(e.crossfade))
	for i := range fade {
		fade[i] = float64(i+1) / float64(len(fade))
	}

	cfg := *e.pending.Load()

	e.mu.Lock()
	e.sampleRate = sampleRate
	e.maxBlock = maxBlock
	e.chains = chains
	e.cur, e.from = 0, 1
	e.applied = cfg
	e.chains[0].configure(cfg)
	e.fade = fade
	e.fadePos = 0
	e.fading = false
	e.state.Store(int32(Stable))
	e.history = history
	e.omni = make([]float64, maxBlock)
	e.eight = make([]float64, maxBlock)
	e.outCur = make([]float64, maxBlock)
	e.outFrom = make([]float64, maxBlock)
	e.mu.Unlock()

	e.logger.WithFields(logrus.Fields{
		"sampleRate": sampleRate,
		"blockSize":  maxBlock,
		"latency":    e.chains[0].latency(),
	}).Info("engine prepared")
	return nil
}

// SetConfig publishes cfg for the next processed block. Out-of-range values
// are clamped.
func (e *Engine) SetConfig(cfg Config) {
	c := cfg.Sanitize()
	e.pending.Store(&c)
}

// Config returns the latest published configuration.
func (e *Engine) Config() Config {
	return *e.pending.Load()
}

// SampleRate returns the prepared sample rate.
func (e *Engine) SampleRate() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sampleRate
}

// BlockSize returns the prepared maximum block size.
func (e *Engine) BlockSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.maxBlock
}

// LatencySamples returns the delay of the output relative to the input for
// the latest published configuration. During a crossfade this is the
// latency of the chain being faded in.
func (e *Engine) LatencySamples() int {
	cfg := e.pending.Load()
	fs := e.SampleRate()
	l := 0
	if !cfg.ZeroLatency {
		l += fir.Latency(fs)
	}
	if cfg.FieldEQ != fieldeq.None {
		l += fieldeq.Latency(fs)
	}
	return l
}

// State returns the crossfade state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Reset clears all filter state and abandons a running crossfade. The
// current configuration stays in effect.
func (e *Engine) Reset() {
	for _, c := range e.chains {
		c.reset()
	}
	e.history.Reset()
	e.fadePos = 0
	e.fading = false
	e.state.Store(int32(Stable))
}

// Process renders the output block. in holds the front and back capsule
// signals; with a single input channel it is taken as the omni signal and the
// figure-eight signal is silent. The mono result is written to every channel
// of out. The block length is the shortest channel length; longer blocks than
// the prepared size are processed in slices.
func (e *Engine) Process(in, out [][]float64) {
	n := blockLen(in, out)
	if n == 0 {
		return
	}

	cfg := e.pending.Load()
	switch {
	case !cfg.TopologyEqual(e.applied):
		e.begin(*cfg)
	case *cfg != e.applied:
		e.chains[e.cur].update(*cfg)
	}
	e.applied = *cfg

	for off := 0; off < n; off += e.maxBlock {
		m := min(e.maxBlock, n-off)
		e.decode(in, off, m)
		y := e.render(m)
		for _, ch := range out {
			copy(ch[off:off+m], y)
		}
	}
}

// begin starts a crossfade to a chain configured with cfg. The idle chain,
// or during a fade the chain fading out, is reused.
//
// A preempted fade drops the outgoing chain at once: the new fade starts
// from the chain that was fading in, so the output steps from the previous
// mix to that chain's signal at the preemption sample. The step is bounded
// by the difference between the two chains scaled by the fade progress.
func (e *Engine) begin(cfg Config) {
	next := 1 - e.cur
	e.chains[next].configure(cfg)
	e.prime(e.chains[next])
	e.from, e.cur = e.cur, next
	e.fadePos = 0
	e.fading = len(e.fade) > 0
	if e.fading {
		e.state.Store(int32(Transitioning))
	} else {
		e.state.Store(int32(Stable))
	}
}

// prime runs the recent input history through c and discards the output, so
// a freshly configured chain starts with filter memory matching the input.
func (e *Engine) prime(c *chain) {
	omni, eight := e.history.Channel(0), e.history.Channel(1)
	for tap := omni.Delay(); tap > 0; {
		m := min(e.maxBlock, tap)
		for i := 0; i < m; i++ {
			e.omni[i] = omni.Read(tap - i)
			e.eight[i] = eight.Read(tap - i)
		}
		c.process(e.outFrom[:m], e.omni[:m], e.eight[:m])
		tap -= m
	}
}

// decode fills the omni and figure-eight scratch buffers from the capsule
// signals and records them in the input history.
func (e *Engine) decode(in [][]float64, off, n int) {
	omni, eight := e.omni[:n], e.eight[:n]
	switch len(in) {
	case 0:
		core.Zero(omni)
		core.Zero(eight)
	case 1:
		copy(omni, in[0][off:off+n])
		core.Zero(eight)
	default:
		front, back := in[0][off:off+n], in[1][off:off+n]
		for i := range omni {
			omni[i] = front[i] + back[i]
			eight[i] = front[i] - back[i]
		}
	}

	ho, he := e.history.Channel(0), e.history.Channel(1)
	for i := 0; i < n; i++ {
		ho.Write(omni[i])
		he.Write(eight[i])
	}
}

// render produces n samples from the decoded scratch buffers.
func (e *Engine) render(n int) []float64 {
	y := e.outCur[:n]
	e.chains[e.cur].process(y, e.omni[:n], e.eight[:n])
	if !e.fading {
		return y
	}

	x := e.outFrom[:n]
	e.chains[e.from].process(x, e.omni[:n], e.eight[:n])

	// y = x + (y - x) * g over the remaining fade.
	m := min(n, len(e.fade)-e.fadePos)
	for i := 0; i < m; i++ {
		y[i] -= x[i]
	}
	vecmath.MulBlockInPlace(y[:m], e.fade[e.fadePos:e.fadePos+m])
	vecmath.AddBlockInPlace(y[:m], x[:m])

	e.fadePos += m
	if e.fadePos >= len(e.fade) {
		e.fading = false
		e.state.Store(int32(Stable))
	}
	return y
}

func blockLen(in, out [][]float64) int {
	n := -1
	for _, ch := range in {
		if n < 0 || len(ch) < n {
			n = len(ch)
		}
	}
	for _, ch := range out {
		if n < 0 || len(ch) < n {
			n = len(ch)
		}
	}
	return max(n, 0)
}
