package repository

import (
	"context"
	"errors"

	"github.com/blackeffigyeel/exam-orch/internal/model"
)

// ErrNotFound is returned by Update and Delete when the record does not exist.
// GetByID reports a missing record as (nil, nil).
var ErrNotFound = errors.New("record not found")

// SessionMutation edits a session in place. Returning an error aborts the write.
type SessionMutation func(session *model.ExamSession) error

// ProctorMutation edits a proctor in place. Returning an error aborts the write.
type ProctorMutation func(proctor *model.Proctor) error

// SessionRepo stores exam sessions keyed by ID
type SessionRepo interface {
	Create(ctx context.Context, session *model.ExamSession) error
	GetByID(ctx context.Context, id string) (*model.ExamSession, error)
	List(ctx context.Context) ([]*model.ExamSession, error)
	// Update applies mutate to the latest stored session atomically, refreshes UpdatedAt and bumps Version.
	Update(ctx context.Context, id string, mutate SessionMutation) (*model.ExamSession, error)
	Delete(ctx context.Context, id string) error
	// FindByCandidate returns the first session where studentID is enrolled or waitlisted.
	FindByCandidate(ctx context.Context, studentID string) (*model.ExamSession, error)
	// ListByCandidate returns every session where studentID is enrolled or waitlisted.
	ListByCandidate(ctx context.Context, studentID string) ([]*model.ExamSession, error)
	FindByProctor(ctx context.Context, proctorID string) ([]*model.ExamSession, error)
}

// ProctorRepo stores proctors keyed by ID
type ProctorRepo interface {
	Create(ctx context.Context, proctor *model.Proctor) error
	GetByID(ctx context.Context, id string) (*model.Proctor, error)
	List(ctx context.Context) ([]*model.Proctor, error)
	Update(ctx context.Context, id string, mutate ProctorMutation) (*model.Proctor, error)
	Delete(ctx context.Context, id string) error
}
