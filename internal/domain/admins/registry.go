package admins

import (
	"context"
	"sync"
	"sync/atomic"
)

// Source pushes the full admin list to fn whenever it changes, until ctx is
// done. Implementations call fn at least once with the current list.
type Source interface {
	Watch(ctx context.Context, fn func(emails []string)) error
}

// Registry holds the current Snapshot and notifies subscribers on change.
type Registry struct {
	current atomic.Pointer[Snapshot]

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Snapshot)
}

// NewRegistry starts from a seed list (typically ADMIN_EMAILS).
func NewRegistry(seed ...string) *Registry {
	r := &Registry{subs: map[int]func(Snapshot){}}
	s := NewSnapshot(seed...)
	r.current.Store(&s)
	return r
}

// Snapshot returns the current admin set.
func (r *Registry) Snapshot() Snapshot {
	return *r.current.Load()
}

// IsAdmin is a shorthand for Snapshot().Contains.
func (r *Registry) IsAdmin(email string) bool {
	return r.Snapshot().Contains(email)
}

// Update swaps in a new snapshot and notifies subscribers.
func (r *Registry) Update(emails []string) {
	s := NewSnapshot(emails...)
	r.current.Store(&s)

	r.mu.Lock()
	subs := make([]func(Snapshot), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// Subscribe registers fn for future updates and returns a cancel func.
func (r *Registry) Subscribe(fn func(Snapshot)) (cancel func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// Run feeds the registry from src until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, src Source) error {
	return src.Watch(ctx, r.Update)
}

type seededSource struct {
	src  Source
	seed []string
}

// WithSeed wraps src so every update also contains seed. It keeps bootstrap
// admins (from configuration) in place when the stored list changes.
func WithSeed(src Source, seed ...string) Source {
	return seededSource{src: src, seed: seed}
}

func (s seededSource) Watch(ctx context.Context, fn func(emails []string)) error {
	return s.src.Watch(ctx, func(emails []string) {
		merged := make([]string, 0, len(emails)+len(s.seed))
		merged = append(merged, s.seed...)
		merged = append(merged, emails...)
		fn(merged)
	})
}
