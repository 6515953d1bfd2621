package param

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/fieldeq"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/crossover"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/pattern"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/polar"
)

// ErrUnknownParameter is returned for IDs that are not in the layout.
var ErrUnknownParameter = errors.New("param: unknown parameter")

// Publisher receives a fresh configuration after every change.
// *polar.Engine implements it.
type Publisher interface {
	SetConfig(polar.Config)
}

// Listener is called after a parameter changed, outside the store lock.
type Listener func(id string, value float64)

// Snapshot maps parameter IDs to plain values.
type Snapshot map[string]float64

// Store holds the value of every parameter in the layout.
//
// Reads are lock-free. Writers are serialized; every write that changes a
// value publishes one new configuration to the bound Publisher and notifies
// listeners.
type Store struct {
	params map[string]*Parameter
	order  []*Parameter

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
	publisher Publisher
	shared    *SyncStore
}

type change struct {
	id    string
	value float64
}

// NewStore returns a store with every parameter at its default.
func NewStore() *Store {
	s := &Store{
		params:    make(map[string]*Parameter),
		listeners: make(map[int]Listener),
	}
	for _, info := range Layout() {
		p := newParameter(info)
		s.params[info.ID] = p
		s.order = append(s.order, p)
	}
	return s
}

// Parameter returns the parameter with id, or nil.
func (s *Store) Parameter(id string) *Parameter {
	return s.params[id]
}

// Parameters returns all parameters in layout order.
func (s *Store) Parameters() []*Parameter {
	out := make([]*Parameter, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Store) lookup(id string) (*Parameter, error) {
	p, ok := s.params[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	return p, nil
}

// Get returns the plain value of id.
func (s *Store) Get(id string) (float64, error) {
	p, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	return p.Value(), nil
}

// Normalized returns the value of id mapped to [0, 1].
func (s *Store) Normalized(id string) (float64, error) {
	p, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	return p.Normalize(p.Value()), nil
}

// Set sets the plain value of id. Values are clamped into range. Directivity
// values snap to nearby named patterns; changing the band count resets the
// crossover sliders to the defaults of the new band count.
func (s *Store) Set(id string, v float64) error {
	p, err := s.lookup(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	changes := s.apply(p, v)
	s.commit(changes)
	s.mu.Unlock()

	s.notify(changes)
	return nil
}

// SetNormalized sets id from a value in [0, 1].
func (s *Store) SetNormalized(id string, v float64) error {
	p, err := s.lookup(id)
	if err != nil {
		return err
	}
	return s.Set(id, p.Denormalize(v))
}

// apply stores v and its side effects. Caller holds s.mu.
func (s *Store) apply(p *Parameter, v float64) []change {
	if strings.HasPrefix(p.ID, "alpha") {
		v = pattern.Snap(v)
	}
	if !p.set(v) {
		return nil
	}
	changes := []change{{p.ID, p.Value()}}

	switch p.ID {
	case NrBands:
		bands := p.Int() + 1
		for i := 0; i < bands-1; i++ {
			x := s.params[XOverF(i)]
			def := crossover.ToNormalized(bands, i, crossover.DefaultFrequency(bands, i))
			if x.set(def) {
				changes = append(changes, change{x.ID, x.Value()})
			}
		}
	case SyncChannel:
		if ch := p.Int(); ch > 0 && s.shared != nil {
			if snap, ok := s.shared.Load(ch); ok {
				changes = append(changes, s.restore(snap)...)
			}
		}
	}
	return changes
}

// restore writes snap without side effects. Caller holds s.mu.
func (s *Store) restore(snap Snapshot) []change {
	var changes []change
	for _, p := range s.order {
		v, ok := snap[p.ID]
		if !ok || !p.Layered {
			continue
		}
		if p.set(v) {
			changes = append(changes, change{p.ID, p.Value()})
		}
	}
	return changes
}

// commit publishes the configuration and shares layered values. Caller holds
// s.mu.
func (s *Store) commit(changes []change) {
	if len(changes) == 0 {
		return
	}
	if s.publisher != nil {
		s.publisher.SetConfig(s.Config())
	}
	if ch := s.params[SyncChannel].Int(); ch > 0 && s.shared != nil {
		s.shared.Publish(ch, s.Snapshot())
	}
}

func (s *Store) notify(changes []change) {
	if len(changes) == 0 {
		return
	}
	s.mu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	for _, c := range changes {
		for _, l := range ls {
			l(c.id, c.value)
		}
	}
}

// OnChange registers fn for change notifications and returns a function
// that removes it.
func (s *Store) OnChange(fn Listener) (remove func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Bind makes pub receive a configuration after every change, starting with
// the current one.
func (s *Store) Bind(pub Publisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publisher = pub
	if pub != nil {
		pub.SetConfig(s.Config())
	}
}

// Format returns the display text of id's current value.
func (s *Store) Format(id string) (string, error) {
	p, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	v := p.Value()

	switch {
	case id == Proximity:
		if math.Abs(v) < pattern.ProximityThreshold {
			v = 0
		}
		return fmt.Sprintf("%.2f", v), nil
	case id == NrBands:
		return fmt.Sprintf("%d", p.Int()+1), nil
	case id == FfDfEq:
		return fieldeq.Mode(p.Int()).String(), nil
	case id == SyncChannel && p.Int() == 0:
		return "none", nil
	}
	if idx, ok := crossoverIndex(id); ok {
		bands := s.params[NrBands].Int() + 1
		if idx >= bands-1 {
			return "-", nil
		}
		return fmt.Sprintf("%.0f Hz", crossover.FromNormalized(bands, idx, v)), nil
	}
	return p.Format(v), nil
}

// Parse converts display text of id to a plain value. It accepts what Format
// produces: crossover frequencies in Hz (clamped into the range of the
// current band count), band counts 1..5, field EQ mode names and "none" for
// the sync channel. Other text is parsed by the parameter itself.
func (s *Store) Parse(id, text string) (float64, error) {
	p, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	text = strings.TrimSpace(text)

	switch id {
	case NrBands:
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, fmt.Errorf("param: %s: %w", id, err)
		}
		return p.Constrain(float64(n - 1)), nil
	case FfDfEq:
		if m, ok := fieldeq.ParseMode(strings.ToLower(text)); ok {
			return float64(m), nil
		}
	case SyncChannel:
		if strings.EqualFold(text, "none") {
			return 0, nil
		}
	}
	if idx, ok := crossoverIndex(id); ok {
		bands := s.params[NrBands].Int() + 1
		if idx >= bands-1 {
			return 0, fmt.Errorf("param: %s: unused with %d bands", id, bands)
		}
		hz, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(text, "Hz")), 64)
		if err != nil {
			return 0, fmt.Errorf("param: %s: %w", id, err)
		}
		return crossover.ToNormalized(bands, idx, hz), nil
	}
	return p.Parse(text)
}

// SetText parses text as Parse does and stores the result.
func (s *Store) SetText(id, text string) error {
	v, err := s.Parse(id, text)
	if err != nil {
		return err
	}
	return s.Set(id, v)
}

// crossoverIndex returns the 0-based crossover of an xOverF ID.
func crossoverIndex(id string) (int, bool) {
	for i := 0; i < crossover.MaxCrossovers; i++ {
		if XOverF(i) == id {
			return i, true
		}
	}
	return 0, false
}

// Snapshot returns the values of all layered parameters.
func (s *Store) Snapshot() Snapshot {
	snap := make(Snapshot)
	for _, p := range s.order {
		if p.Layered {
			snap[p.ID] = p.Value()
		}
	}
	return snap
}

// Restore writes the layered values in snap at once. The bound publisher
// sees a single new configuration.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	changes := s.restore(snap)
	s.commit(changes)
	s.mu.Unlock()

	s.notify(changes)
}

// Config returns the engine configuration described by the current values.
func (s *Store) Config() polar.Config {
	get := func(id string) *Parameter { return s.params[id] }

	c := polar.Config{
		BandCount:    get(NrBands).Int() + 1,
		Proximity:    get(Proximity).Value(),
		ProximityOn:  get(ProximityOn).Bool(),
		FieldEQ:      fieldeq.Mode(get(FfDfEq).Int()),
		AllowReverse: get(AllowBackwards).Bool(),
		ZeroLatency:  get(ZeroLatency).Bool(),
	}
	for i := 0; i < c.BandCount-1; i++ {
		c.Crossovers[i] = crossover.FromNormalized(c.BandCount, i, get(XOverF(i)).Value())
	}
	for b := 0; b < polar.MaxBands; b++ {
		c.Directivity[b] = get(Alpha(b)).Value()
		c.GainDB[b] = get(Gain(b)).Value()
		c.Solo[b] = get(Solo(b)).Bool()
		c.Mute[b] = get(Mute(b)).Bool()
	}
	return c
}
