package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/cache"
	"github.com/blackeffigyeel/exam-orch/internal/model"
	"github.com/blackeffigyeel/exam-orch/internal/repository"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordedEvent struct {
	SessionID string
	Type      string
	Payload   map[string]interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *recordingBroadcaster) BroadcastToSession(sessionID, eventType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, _ := payload.(map[string]interface{})
	b.events = append(b.events, recordedEvent{SessionID: sessionID, Type: eventType, Payload: p})
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

var _ cache.SessionCache = (*mapCache)(nil)

// mapCache is an in-process SessionCache that counts hits.
type mapCache struct {
	mu    sync.Mutex
	items map[string]*model.ExamSession
	hits  int
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]*model.ExamSession)}
}

func (c *mapCache) Set(_ context.Context, s *model.ExamSession) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[s.ID] = s.Clone()
	return nil
}

func (c *mapCache) Get(_ context.Context, id string) (*model.ExamSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	c.hits++
	return s.Clone(), nil
}

func (c *mapCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	return nil
}

type fixture struct {
	sessions    *SessionService
	proctors    *ProctorService
	sessionRepo repository.SessionRepo
	proctorRepo repository.ProctorRepo
	cache       *mapCache
	clock       *fakeClock
	events      *recordingBroadcaster
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithRepo(t, repository.NewMemorySessionRepo())
}

func newFixtureWithRepo(t *testing.T, sessionRepo repository.SessionRepo) *fixture {
	t.Helper()
	clock := &fakeClock{now: baseTime}
	var seq int
	var seqMu sync.Mutex
	opts := Options{
		Now: clock.Now,
		NewID: func() string {
			seqMu.Lock()
			defer seqMu.Unlock()
			seq++
			return fmt.Sprintf("session-%d", seq)
		},
		StoreTimeout: time.Second,
	}

	proctorRepo := repository.NewMemoryProctorRepo()
	sessionCache := newMapCache()
	readThrough := cache.NewReadThrough(sessionCache)
	events := &recordingBroadcaster{}

	sessions := NewSessionService(sessionRepo, readThrough, opts)
	sessions.SetBroadcaster(events)
	proctors := NewProctorService(sessionRepo, proctorRepo, readThrough, opts)
	proctors.SetBroadcaster(events)

	return &fixture{
		sessions:    sessions,
		proctors:    proctors,
		sessionRepo: sessionRepo,
		proctorRepo: proctorRepo,
		cache:       sessionCache,
		clock:       clock,
		events:      events,
	}
}

// createSession makes a session starting offset after baseTime.
func (f *fixture) createSession(t *testing.T, offset time.Duration, duration, capacity int) *model.ExamSession {
	t.Helper()
	session, err := f.sessions.CreateSession(context.Background(), CreateSessionInput{
		Title:         "Exam",
		Duration:      duration,
		MaxCandidates: capacity,
		StartTime:     baseTime.Add(offset),
	})
	require.NoError(t, err)
	return session
}

func (f *fixture) enroll(t *testing.T, sessionID, studentID string) *model.EnrollmentResult {
	t.Helper()
	result, err := f.sessions.EnrollCandidate(context.Background(), sessionID, studentID+"@example.com", "Student "+studentID, studentID)
	require.NoError(t, err)
	return result
}

func requireKind(t *testing.T, err error, target *Error, message string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, target)
	if message != "" {
		require.EqualError(t, err, message)
	}
}
