package repository

import (
	"context"
	"sync"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/model"
)

// memoryTable is an insertion-ordered, mutex-guarded map of cloneable records.
type memoryTable[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
	clone func(T) T
}

func newMemoryTable[T any](clone func(T) T) *memoryTable[T] {
	return &memoryTable[T]{
		rows:  make(map[string]T),
		clone: clone,
	}
}

func (t *memoryTable[T]) put(id string, row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(row)
}

func (t *memoryTable[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return row, false
	}
	return t.clone(row), true
}

func (t *memoryTable[T]) all(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if keep == nil || keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// update runs mutate on a working copy and stores it only if mutate succeeds.
func (t *memoryTable[T]) update(id string, mutate func(T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	working := t.clone(row)
	if err := mutate(working); err != nil {
		var zero T
		return zero, err
	}
	t.rows[id] = working
	return t.clone(working), nil
}

func (t *memoryTable[T]) delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

type memorySessionRepo struct {
	table *memoryTable[*model.ExamSession]
	now   func() time.Time
}

// NewMemorySessionRepo creates a volatile session store that lives for the process lifetime
func NewMemorySessionRepo() SessionRepo {
	return &memorySessionRepo{
		table: newMemoryTable((*model.ExamSession).Clone),
		now:   time.Now,
	}
}

func (r *memorySessionRepo) Create(ctx context.Context, session *model.ExamSession) error {
	r.table.put(session.ID, session)
	return nil
}

func (r *memorySessionRepo) GetByID(ctx context.Context, id string) (*model.ExamSession, error) {
	session, ok := r.table.get(id)
	if !ok {
		return nil, nil
	}
	return session, nil
}

func (r *memorySessionRepo) List(ctx context.Context) ([]*model.ExamSession, error) {
	return r.table.all(nil), nil
}

func (r *memorySessionRepo) Update(ctx context.Context, id string, mutate SessionMutation) (*model.ExamSession, error) {
	return r.table.update(id, func(s *model.ExamSession) error {
		if err := mutate(s); err != nil {
			return err
		}
		s.UpdatedAt = r.now()
		s.Version++
		return nil
	})
}

func (r *memorySessionRepo) Delete(ctx context.Context, id string) error {
	return r.table.delete(id)
}

func (r *memorySessionRepo) FindByCandidate(ctx context.Context, studentID string) (*model.ExamSession, error) {
	matches := r.table.all(func(s *model.ExamSession) bool {
		return s.HasCandidate(studentID)
	})
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *memorySessionRepo) ListByCandidate(ctx context.Context, studentID string) ([]*model.ExamSession, error) {
	return r.table.all(func(s *model.ExamSession) bool {
		return s.HasCandidate(studentID)
	}), nil
}

func (r *memorySessionRepo) FindByProctor(ctx context.Context, proctorID string) ([]*model.ExamSession, error) {
	return r.table.all(func(s *model.ExamSession) bool {
		return s.HasProctor(proctorID)
	}), nil
}

type memoryProctorRepo struct {
	table *memoryTable[*model.Proctor]
	now   func() time.Time
}

// NewMemoryProctorRepo creates a volatile proctor store
func NewMemoryProctorRepo() ProctorRepo {
	return &memoryProctorRepo{
		table: newMemoryTable((*model.Proctor).Clone),
		now:   time.Now,
	}
}

func (r *memoryProctorRepo) Create(ctx context.Context, proctor *model.Proctor) error {
	r.table.put(proctor.ID, proctor)
	return nil
}

func (r *memoryProctorRepo) GetByID(ctx context.Context, id string) (*model.Proctor, error) {
	proctor, ok := r.table.get(id)
	if !ok {
		return nil, nil
	}
	return proctor, nil
}

func (r *memoryProctorRepo) List(ctx context.Context) ([]*model.Proctor, error) {
	return r.table.all(nil), nil
}

func (r *memoryProctorRepo) Update(ctx context.Context, id string, mutate ProctorMutation) (*model.Proctor, error) {
	return r.table.update(id, func(p *model.Proctor) error {
		if err := mutate(p); err != nil {
			return err
		}
		p.UpdatedAt = r.now()
		p.Version++
		return nil
	})
}

func (r *memoryProctorRepo) Delete(ctx context.Context, id string) error {
	return r.table.delete(id)
}
