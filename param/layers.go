package param

import "sync"

// Layer names one of the two A/B snapshots.
type Layer int

const (
	LayerA Layer = iota
	LayerB
)

func (l Layer) String() string {
	if l == LayerB {
		return "B"
	}
	return "A"
}

// Layers keeps two complete sets of layered values for A/B comparison. The
// active layer lives in the Store; the inactive one is kept as a snapshot.
type Layers struct {
	store *Store

	mu       sync.Mutex
	active   Layer
	inactive Snapshot
}

// NewLayers returns layers over store with A active and B equal to A.
func NewLayers(store *Store) *Layers {
	return &Layers{store: store, inactive: store.Snapshot()}
}

// Active returns the layer whose values are in the store.
func (l *Layers) Active() Layer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Swap exchanges the active and inactive layers. The engine sees the new
// layer as one configuration change.
func (l *Layers) Swap() Layer {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur := l.store.Snapshot()
	l.store.Restore(l.inactive)
	l.inactive = cur
	l.active = 1 - l.active
	return l.active
}

// CopyToInactive overwrites the inactive layer with the active values.
func (l *Layers) CopyToInactive() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inactive = l.store.Snapshot()
}

// Inactive returns a copy of the inactive layer.
func (l *Layers) Inactive() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(Snapshot, len(l.inactive))
	for k, v := range l.inactive {
		out[k] = v
	}
	return out
}
