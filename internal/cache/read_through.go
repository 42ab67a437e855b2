package cache

import (
	"context"
	"sync"

	"github.com/blackeffigyeel/exam-orch/internal/model"
)

// ReadThrough fronts a SessionCache for every service in the process. Each
// invalidation bumps a per-session generation; a fill carries the generation
// seen before its store read and is dropped if an invalidation happened since,
// so a slow reader never puts back a copy older than the latest write.
type ReadThrough struct {
	cache SessionCache

	mu   sync.Mutex
	gens map[string]uint64
}

// NewReadThrough wraps c. Share one instance between all writers of a session.
func NewReadThrough(c SessionCache) *ReadThrough {
	return &ReadThrough{
		cache: c,
		gens:  make(map[string]uint64),
	}
}

// Get returns the cached session or (nil, nil) on a miss.
func (r *ReadThrough) Get(ctx context.Context, id string) (*model.ExamSession, error) {
	return r.cache.Get(ctx, id)
}

// Generation must be taken before the store read whose result is passed to Fill.
func (r *ReadThrough) Generation(id string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gens[id]
}

// Fill caches session unless it was invalidated after gen was taken.
// It reports whether the copy was stored.
func (r *ReadThrough) Fill(ctx context.Context, session *model.ExamSession, gen uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gens[session.ID] != gen {
		return false, nil
	}
	if err := r.cache.Set(ctx, session); err != nil {
		return false, err
	}
	return true, nil
}

// Invalidate drops the cached copy. Call it after the store write.
func (r *ReadThrough) Invalidate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gens[id]++
	return r.cache.Delete(ctx, id)
}
