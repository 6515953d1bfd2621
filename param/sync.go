package param

import "sync/atomic"

// SyncChannels is the number of cross-instance sync channels.
const SyncChannels = 4

// SyncStore shares layered parameter values between plugin instances. Each
// channel holds the latest snapshot committed by any instance on it; a
// channel is valid once something has been committed.
//
// A SyncStore is created by the host and handed to every Store that takes
// part with Store.Share. It is safe for concurrent use; concurrent commits
// resolve to the last one.
type SyncStore struct {
	slots [SyncChannels]syncSlot
}

type syncSlot struct {
	snap  atomic.Pointer[Snapshot]
	valid atomic.Bool
}

// NewSyncStore returns a store with all channels invalid.
func NewSyncStore() *SyncStore {
	return &SyncStore{}
}

func (s *SyncStore) slot(ch int) *syncSlot {
	if ch < 1 || ch > SyncChannels {
		return nil
	}
	return &s.slots[ch-1]
}

// Publish stores a copy of snap on channel ch (1-based) and marks it valid.
// Channels outside [1, SyncChannels] are ignored.
func (s *SyncStore) Publish(ch int, snap Snapshot) {
	sl := s.slot(ch)
	if sl == nil {
		return
	}
	cp := make(Snapshot, len(snap))
	for k, v := range snap {
		cp[k] = v
	}
	sl.snap.Store(&cp)
	sl.valid.Store(true)
}

// Load returns the snapshot on channel ch when the channel is valid. The
// result must not be modified.
func (s *SyncStore) Load(ch int) (Snapshot, bool) {
	sl := s.slot(ch)
	if sl == nil || !sl.valid.Load() {
		return nil, false
	}
	return *sl.snap.Load(), true
}

// Valid reports whether channel ch holds a snapshot.
func (s *SyncStore) Valid(ch int) bool {
	sl := s.slot(ch)
	return sl != nil && sl.valid.Load()
}

// Invalidate clears channel ch.
func (s *SyncStore) Invalidate(ch int) {
	if sl := s.slot(ch); sl != nil {
		sl.valid.Store(false)
	}
}

// Share connects s to the cross-instance store. A nil store disconnects.
func (s *Store) Share(shared *SyncStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shared = shared
}

// Pull applies the values on the selected sync channel when it is valid and
// reports whether it did.
func (s *Store) Pull() bool {
	s.mu.Lock()
	ch := s.params[SyncChannel].Int()
	if ch == 0 || s.shared == nil {
		s.mu.Unlock()
		return false
	}
	snap, ok := s.shared.Load(ch)
	if !ok {
		s.mu.Unlock()
		return false
	}
	changes := s.restore(snap)
	if len(changes) > 0 && s.publisher != nil {
		s.publisher.SetConfig(s.Config())
	}
	s.mu.Unlock()

	s.notify(changes)
	return true
}
