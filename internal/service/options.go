package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/cache"
	"github.com/blackeffigyeel/exam-orch/internal/model"
	"github.com/blackeffigyeel/exam-orch/internal/repository"
	"github.com/google/uuid"
)

const defaultStoreTimeout = 5 * time.Second

// Options tunes a service. Zero values fall back to the wall clock, uuid v4 ids
// and a 5s store timeout.
type Options struct {
	Now          func() time.Time
	NewID        func() string
	StoreTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = defaultStoreTimeout
	}
	return o
}

// storeContext bounds one operation's store access.
func (o Options) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.StoreTimeout)
}

// sessionReader is the cached read path of both engines. They must share one
// ReadThrough so either engine's writes invalidate the other's fills.
type sessionReader struct {
	repo  repository.SessionRepo
	cache *cache.ReadThrough
}

func (r sessionReader) load(ctx context.Context, id string) (*model.ExamSession, error) {
	if cached, err := r.cache.Get(ctx, id); err != nil {
		log.Printf("session cache read %s: %v", id, err)
	} else if cached != nil {
		return cached, nil
	}

	gen := r.cache.Generation(id)
	session, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, errSessionNotFound
	}
	if _, err := r.cache.Fill(ctx, session, gen); err != nil {
		log.Printf("session cache write %s: %v", id, err)
	}
	return session, nil
}

// fresh skips the cache. Mutating operations decide against the store copy.
func (r sessionReader) fresh(ctx context.Context, id string) (*model.ExamSession, error) {
	session, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, errSessionNotFound
	}
	return session, nil
}

func (r sessionReader) update(ctx context.Context, id string, mutate repository.SessionMutation) (*model.ExamSession, error) {
	session, err := r.repo.Update(ctx, id, mutate)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errSessionNotFound
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return nil, domainErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	r.invalidate(ctx, id)
	return session, nil
}

func (r sessionReader) invalidate(ctx context.Context, id string) {
	if err := r.cache.Invalidate(ctx, id); err != nil {
		log.Printf("session cache invalidate %s: %v", id, err)
	}
}
