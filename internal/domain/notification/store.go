package notification

import "sync"

// Store holds notifications in insertion order.  It never deletes entries
// and keeps at most one entry per DedupKey.  Writers serialise on mu and
// publish a fresh slice, so List never observes a partial update.
type Store struct {
	mu    sync.Mutex
	snap  sync.RWMutex
	items []Notification
	keys  map[DedupKey]struct{}
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{keys: make(map[DedupKey]struct{})}
}

func (s *Store) current() []Notification {
	s.snap.RLock()
	defer s.snap.RUnlock()
	return s.items
}

func (s *Store) publish(next []Notification) {
	s.snap.Lock()
	s.items = next
	s.snap.Unlock()
}

// List returns a copy of every notification in insertion order.
func (s *Store) List() []Notification {
	cur := s.current()
	out := make([]Notification, len(cur))
	copy(out, cur)
	return out
}

// Has reports whether a notification with key exists.
func (s *Store) Has(key DedupKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok
}

// AppendUnique appends n unless its key is already present.  It reports
// whether n was stored.
func (s *Store) AppendUnique(n Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[n.Key()]; ok {
		return false
	}
	cur := s.current()
	next := make([]Notification, len(cur), len(cur)+1)
	copy(next, cur)
	s.publish(append(next, n))
	s.keys[n.Key()] = struct{}{}
	return true
}

// MarkAsRead flips Read on the notification with id.  Unknown ids and
// already-read entries are left alone; the result reports whether anything
// changed.
func (s *Store) MarkAsRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current()
	for i, n := range cur {
		if n.ID != id {
			continue
		}
		if n.Read {
			return false
		}
		next := make([]Notification, len(cur))
		copy(next, cur)
		next[i].Read = true
		s.publish(next)
		return true
	}
	return false
}

// UnreadCount counts unread entries in the current snapshot.
func (s *Store) UnreadCount() int {
	count := 0
	for _, n := range s.current() {
		if !n.Read {
			count++
		}
	}
	return count
}

// Len returns the number of stored notifications.
func (s *Store) Len() int {
	return len(s.current())
}

//Personal.AI order the ending
