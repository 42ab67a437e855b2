package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/blackeffigyeel/exam-orch/internal/cache"
	"github.com/blackeffigyeel/exam-orch/internal/model"
	"github.com/blackeffigyeel/exam-orch/internal/repository"
)

// ProctorService assigns proctors to sessions without double-booking them.
// All assignment-side writes are serialised by mu.
type ProctorService struct {
	mu          sync.Mutex
	sessions    sessionReader
	proctorRepo repository.ProctorRepo
	broadcaster Broadcaster
	opts        Options
}

// NewProctorService creates a new proctor service
func NewProctorService(
	sessionRepo repository.SessionRepo,
	proctorRepo repository.ProctorRepo,
	sessionCache *cache.ReadThrough,
	opts Options,
) *ProctorService {
	return &ProctorService{
		sessions:    sessionReader{repo: sessionRepo, cache: sessionCache},
		proctorRepo: proctorRepo,
		broadcaster: nopBroadcaster{},
		opts:        opts.withDefaults(),
	}
}

// SetBroadcaster sets the WebSocket broadcaster
func (s *ProctorService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// AssignProctorToSession books the proctor on the session. Unknown proctors are
// created on the spot; known ones must be free for the whole session window.
func (s *ProctorService) AssignProctorToSession(ctx context.Context, sessionID, proctorID, name, email string) (*model.ExamSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	session, err := s.sessions.fresh(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.HasProctor(proctorID) {
		return nil, errProctorAssigned
	}

	proctor, err := s.proctorRepo.GetByID(ctx, proctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proctor: %w", err)
	}
	if proctor != nil {
		booked, err := s.sessions.repo.FindByProctor(ctx, proctorID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up proctor sessions: %w", err)
		}
		for _, other := range booked {
			if other.ID != session.ID && other.Overlaps(session) {
				return nil, errProctorOverlap
			}
		}
	}

	// New proctors are stored before the session lists them and removed again
	// if the session write fails.
	if proctor == nil {
		now := s.opts.Now()
		created := &model.Proctor{
			ID:               proctorID,
			Name:             name,
			Email:            email,
			AssignedSessions: []string{sessionID},
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.proctorRepo.Create(ctx, created); err != nil {
			return nil, fmt.Errorf("failed to create proctor: %w", err)
		}
	}

	updated, err := s.sessions.update(ctx, sessionID, func(session *model.ExamSession) error {
		if session.HasProctor(proctorID) {
			return errProctorAssigned
		}
		session.Proctors = append(session.Proctors, proctorID)
		return nil
	})
	if err != nil {
		if proctor == nil {
			rollbackCtx, cancel := s.opts.storeContext(context.WithoutCancel(ctx))
			defer cancel()
			if delErr := s.proctorRepo.Delete(rollbackCtx, proctorID); delErr != nil {
				log.Printf("Failed to roll back proctor %s: %v", proctorID, delErr)
			}
		}
		return nil, err
	}

	if proctor != nil {
		_, err := s.proctorRepo.Update(ctx, proctorID, func(p *model.Proctor) error {
			if !p.IsAssignedTo(sessionID) {
				p.AssignedSessions = append(p.AssignedSessions, sessionID)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update proctor: %w", err)
		}
	}

	s.broadcaster.BroadcastToSession(sessionID, EventProctorAssigned, map[string]interface{}{
		"proctorId": proctorID,
	})
	return updated, nil
}

// RemoveProctorFromSession drops the assignment from both sides.
// A missing proctor record is tolerated.
func (s *ProctorService) RemoveProctorFromSession(ctx context.Context, sessionID, proctorID string) (*model.ExamSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	updated, err := s.sessions.update(ctx, sessionID, func(session *model.ExamSession) error {
		if !session.HasProctor(proctorID) {
			return errProctorNotAssigned
		}
		session.Proctors = slices.DeleteFunc(session.Proctors, func(id string) bool {
			return id == proctorID
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	_, err = s.proctorRepo.Update(ctx, proctorID, func(p *model.Proctor) error {
		p.AssignedSessions = slices.DeleteFunc(p.AssignedSessions, func(id string) bool {
			return id == sessionID
		})
		return nil
	})
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to update proctor: %w", err)
	}

	s.broadcaster.BroadcastToSession(sessionID, EventProctorRemoved, map[string]interface{}{
		"proctorId": proctorID,
	})
	return updated, nil
}

// GetProctorsForSession resolves the session's proctor IDs to records
func (s *ProctorService) GetProctorsForSession(ctx context.Context, sessionID string) ([]*model.Proctor, error) {
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	session, err := s.sessions.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	proctors := make([]*model.Proctor, 0, len(session.Proctors))
	for _, id := range session.Proctors {
		proctor, err := s.proctorRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get proctor: %w", err)
		}
		if proctor == nil {
			return nil, errProctorMissing(id)
		}
		proctors = append(proctors, proctor)
	}
	return proctors, nil
}

// GetSessionsForProctor lists the proctor's sessions; unknown proctors have none
func (s *ProctorService) GetSessionsForProctor(ctx context.Context, proctorID string) ([]*model.ExamSession, error) {
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	sessions, err := s.sessions.repo.FindByProctor(ctx, proctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up proctor sessions: %w", err)
	}
	return sessions, nil
}
