package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/cache"
	"github.com/blackeffigyeel/exam-orch/internal/model"
	"github.com/blackeffigyeel/exam-orch/internal/repository"
)

// CreateSessionInput carries already-validated session fields
type CreateSessionInput struct {
	Title         string
	Duration      int // minutes
	MaxCandidates int
	StartTime     time.Time
}

// SessionService runs enrollment, withdrawal and waitlist promotion.
// All enrollment-side writes are serialised by mu.
type SessionService struct {
	mu          sync.Mutex
	sessions    sessionReader
	broadcaster Broadcaster
	opts        Options
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo repository.SessionRepo, sessionCache *cache.ReadThrough, opts Options) *SessionService {
	return &SessionService{
		sessions:    sessionReader{repo: sessionRepo, cache: sessionCache},
		broadcaster: nopBroadcaster{},
		opts:        opts.withDefaults(),
	}
}

// SetBroadcaster sets the WebSocket broadcaster
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreateSession stores a new open session with empty rosters
func (s *SessionService) CreateSession(ctx context.Context, in CreateSessionInput) (*model.ExamSession, error) {
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	now := s.opts.Now()
	session := &model.ExamSession{
		ID:            s.opts.NewID(),
		Title:         in.Title,
		Duration:      in.Duration,
		MaxCandidates: in.MaxCandidates,
		StartTime:     in.StartTime,
		Proctors:      []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.sessions.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ListSessions returns every session in creation order
func (s *SessionService) ListSessions(ctx context.Context) ([]*model.ExamSession, error) {
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	sessions, err := s.sessions.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// GetSession retrieves a session by ID
func (s *SessionService) GetSession(ctx context.Context, id string) (*model.ExamSession, error) {
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()
	return s.sessions.load(ctx, id)
}

// CloseEnrollment flips the session to closed. Closing twice is a conflict.
func (s *SessionService) CloseEnrollment(ctx context.Context, id string) (*model.ExamSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	session, err := s.sessions.update(ctx, id, func(session *model.ExamSession) error {
		if session.IsEnrollmentClosed {
			return errAlreadyClosed
		}
		session.IsEnrollmentClosed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastToSession(id, EventEnrollmentClosed, map[string]interface{}{
		"sessionId": id,
	})
	return session, nil
}

// EnrollCandidate seats the candidate, or queues them once the session is full
func (s *SessionService) EnrollCandidate(ctx context.Context, sessionID, email, name, studentID string) (*model.EnrollmentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	session, err := s.sessions.fresh(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkEnrollable(session, studentID); err != nil {
		return nil, err
	}

	others, err := s.sessions.repo.ListByCandidate(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up candidate sessions: %w", err)
	}
	for _, other := range others {
		if other.ID != session.ID && other.Overlaps(session) {
			return nil, errCandidateOverlap
		}
	}

	var result model.EnrollmentResult
	_, err = s.sessions.update(ctx, sessionID, func(session *model.ExamSession) error {
		if err := checkEnrollable(session, studentID); err != nil {
			return err
		}
		now := s.opts.Now()
		if !session.IsFull() {
			session.EnrolledCandidates.Append(model.EnrolledCandidate{
				StudentID:           studentID,
				Email:               email,
				Name:                name,
				EnrollmentTimestamp: now,
			})
			result = model.EnrollmentResult{Status: model.EnrollmentEnrolled}
			return nil
		}
		position := session.Waitlist.Len() + 1
		session.Waitlist.Append(model.WaitlistedCandidate{
			StudentID:           studentID,
			Email:               email,
			Name:                name,
			WaitlistPosition:    position,
			EnrollmentTimestamp: now,
		})
		result = model.EnrollmentResult{Status: model.EnrollmentWaitlisted, Position: position}
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := EventCandidateEnrolled
	if result.Status == model.EnrollmentWaitlisted {
		event = EventCandidateWaitlisted
	}
	s.broadcaster.BroadcastToSession(sessionID, event, map[string]interface{}{
		"studentId": studentID,
		"name":      name,
		"position":  result.Position,
	})
	return &result, nil
}

func checkEnrollable(session *model.ExamSession, studentID string) error {
	switch {
	case session.IsEnrollmentClosed:
		return errEnrollmentClosed
	case session.EnrolledCandidates.Has(studentID):
		return errAlreadyEnrolled
	case session.Waitlist.Has(studentID):
		return errAlreadyWaitlisted
	}
	return nil
}

// WithdrawCandidate removes the candidate before the session starts. A freed
// seat goes to the head of the waitlist, keeping its original enrollment time.
// The promoted candidate's other sessions are not re-checked for overlap.
func (s *SessionService) WithdrawCandidate(ctx context.Context, sessionID, studentID string) (*model.WithdrawalResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	var result model.WithdrawalResult
	_, err := s.sessions.update(ctx, sessionID, func(session *model.ExamSession) error {
		result = model.WithdrawalResult{}
		if !session.StartTime.After(s.opts.Now()) {
			return errSessionStarted
		}

		_, wasEnrolled := session.EnrolledCandidates.Remove(studentID)
		_, wasWaitlisted := session.Waitlist.Remove(studentID)
		switch {
		case wasEnrolled:
			result.RemovedFrom = model.EnrollmentEnrolled
		case wasWaitlisted:
			result.RemovedFrom = model.EnrollmentWaitlisted
		default:
			return errCandidateNotInSession
		}

		if wasEnrolled && !session.IsFull() {
			if head, ok := session.Waitlist.PopFront(); ok {
				promoted := model.EnrolledCandidate{
					StudentID:           head.StudentID,
					Email:               head.Email,
					Name:                head.Name,
					EnrollmentTimestamp: head.EnrollmentTimestamp,
				}
				session.EnrolledCandidates.Append(promoted)
				result.Promoted = &promoted
			}
		}
		session.Waitlist.Rewrite(func(position int, c model.WaitlistedCandidate) model.WaitlistedCandidate {
			c.WaitlistPosition = position
			return c
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastToSession(sessionID, EventCandidateWithdrawn, map[string]interface{}{
		"studentId":   studentID,
		"removedFrom": result.RemovedFrom,
	})
	if p := result.Promoted; p != nil {
		log.Printf("Seat automatically allocated to %s (%s) from waitlist for session %s", p.Name, p.StudentID, sessionID)
		s.broadcaster.BroadcastToSession(sessionID, EventCandidatePromoted, map[string]interface{}{
			"studentId": p.StudentID,
			"name":      p.Name,
		})
	}
	return &result, nil
}

// GetEnrolledCandidates lists seated candidates in enrollment order
func (s *SessionService) GetEnrolledCandidates(ctx context.Context, sessionID string) ([]model.EnrolledCandidate, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.EnrolledCandidates.Items(), nil
}

// GetWaitlistedCandidates lists queued candidates by position
func (s *SessionService) GetWaitlistedCandidates(ctx context.Context, sessionID string) ([]model.WaitlistedCandidate, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Waitlist.Items(), nil
}

// GetCandidateStatus reports where a student sits across all sessions
func (s *SessionService) GetCandidateStatus(ctx context.Context, studentID string) (*model.CandidateStatus, error) {
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	status := &model.CandidateStatus{StudentID: studentID, Status: model.CandidateNotEnrolled}
	session, err := s.sessions.repo.FindByCandidate(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up candidate: %w", err)
	}
	if session == nil {
		return status, nil
	}

	if c, _, ok := session.EnrolledCandidates.Get(studentID); ok {
		ts := c.EnrollmentTimestamp
		status.Status = model.CandidateEnrolled
		status.SessionID = session.ID
		status.SessionTitle = session.Title
		status.EnrollmentTimestamp = &ts
		return status, nil
	}
	if c, _, ok := session.Waitlist.Get(studentID); ok {
		status.Status = model.CandidateWaitlisted
		status.SessionID = session.ID
		status.SessionTitle = session.Title
		status.WaitlistPosition = c.WaitlistPosition
	}
	return status, nil
}
