package scheme

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/turtacn/ScholarAI/pkg/errors"
)

// Repository stores the scheme catalog.
type Repository interface {
	// List returns a snapshot of every scheme in insertion order.
	List(ctx context.Context) ([]Scheme, error)
	// Get returns the scheme with id or ErrCodeSchemeNotFound.
	Get(ctx context.Context, id string) (Scheme, error)
	// Insert appends s; the id must be unused.
	Insert(ctx context.Context, s Scheme) error
	// Update replaces the scheme with id by the result of fn.  applied is false
	// when no scheme has that id, in which case nothing is written.
	Update(ctx context.Context, id string, fn func(Scheme) (Scheme, error)) (updated Scheme, applied bool, err error)
	// Delete removes the scheme with id.  removed is false when it is absent.
	Delete(ctx context.Context, id string) (removed bool, err error)
	// Create allocates an unused identifier derived from now in milliseconds,
	// builds the scheme with it and appends the result atomically.
	Create(ctx context.Context, now time.Time, build func(id string) (*Scheme, error)) (Scheme, error)
	// Count returns the number of schemes.
	Count() int
}

// MemoryRepository is a copy-on-write Repository.  Writers serialise on mu
// and publish a fresh slice; readers take the current slice without locking
// out writers for longer than a pointer read.
type MemoryRepository struct {
	mu      sync.Mutex
	current []Scheme
	snap    sync.RWMutex
}

// NewMemoryRepository returns a repository pre-populated with seed.
func NewMemoryRepository(seed []Scheme) *MemoryRepository {
	r := &MemoryRepository{}
	list := make([]Scheme, 0, len(seed))
	for _, s := range seed {
		list = append(list, s.Clone())
	}
	r.current = list
	return r
}

func (r *MemoryRepository) snapshot() []Scheme {
	r.snap.RLock()
	defer r.snap.RUnlock()
	return r.current
}

func (r *MemoryRepository) publish(next []Scheme) {
	r.snap.Lock()
	r.current = next
	r.snap.Unlock()
}

func (r *MemoryRepository) List(_ context.Context) ([]Scheme, error) {
	cur := r.snapshot()
	out := make([]Scheme, len(cur))
	for i, s := range cur {
		out[i] = s.Clone()
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (Scheme, error) {
	for _, s := range r.snapshot() {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return Scheme{}, errors.Newf(errors.ErrCodeSchemeNotFound, "scheme %s not found", id)
}

func (r *MemoryRepository) Insert(_ context.Context, s Scheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snapshot()
	for _, existing := range cur {
		if existing.ID == s.ID {
			return errors.Newf(errors.ErrCodeSchemeAlreadyExists, "scheme %s already exists", s.ID)
		}
	}
	next := make([]Scheme, len(cur), len(cur)+1)
	copy(next, cur)
	r.publish(append(next, s.Clone()))
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, fn func(Scheme) (Scheme, error)) (Scheme, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snapshot()
	idx := -1
	for i, s := range cur {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Scheme{}, false, nil
	}

	updated, err := fn(cur[idx].Clone())
	if err != nil {
		return Scheme{}, false, err
	}
	updated.ID = id

	next := make([]Scheme, len(cur))
	copy(next, cur)
	next[idx] = updated.Clone()
	r.publish(next)
	return updated, true, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snapshot()
	next := make([]Scheme, 0, len(cur))
	for _, s := range cur {
		if s.ID != id {
			next = append(next, s)
		}
	}
	if len(next) == len(cur) {
		return false, nil
	}
	r.publish(next)
	return true, nil
}

func (r *MemoryRepository) Create(_ context.Context, now time.Time, build func(id string) (*Scheme, error)) (Scheme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.snapshot()
	created, err := build(nextID(cur, now))
	if err != nil {
		return Scheme{}, err
	}
	next := make([]Scheme, len(cur), len(cur)+1)
	copy(next, cur)
	r.publish(append(next, created.Clone()))
	return created.Clone(), nil
}

// nextID returns the millisecond timestamp of now, suffixed with -1, -2, ...
// while that identifier is taken.
func nextID(cur []Scheme, now time.Time) string {
	base := strconv.FormatInt(now.UnixMilli(), 10)
	taken := make(map[string]bool, len(cur))
	for _, s := range cur {
		taken[s.ID] = true
	}
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}

func (r *MemoryRepository) Count() int {
	return len(r.snapshot())
}

//Personal.AI order the ending
