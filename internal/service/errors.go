package service

import "fmt"

// Kind classifies domain errors so the transport layer can pick a status code.
type Kind int

const (
	// KindNotFound means a referenced session, proctor or membership does not exist.
	KindNotFound Kind = iota + 1
	// KindConflict means the request breaks a scheduling or enrollment rule.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a caller-recoverable domain error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrConflict) works
// regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotFound = &Error{Kind: KindNotFound, Message: "not found"}
	ErrConflict = &Error{Kind: KindConflict, Message: "conflict"}
)

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

var (
	errSessionNotFound       = notFound("Exam session not found")
	errAlreadyClosed         = conflict("Enrollment is already closed for this session")
	errEnrollmentClosed      = conflict("Enrollment is closed for this session")
	errAlreadyEnrolled       = conflict("Candidate is already enrolled in this session")
	errAlreadyWaitlisted     = conflict("Candidate is already on the waitlist for this session")
	errCandidateOverlap      = conflict("Candidate already enrolled in an overlapping exam session")
	errSessionStarted        = conflict("Cannot withdraw from a session that has already started")
	errCandidateNotInSession = conflict("Candidate not found in this session")
	errProctorAssigned       = conflict("Proctor is already assigned to this session")
	errProctorOverlap        = conflict("Proctor is assigned to an overlapping exam session")
	errProctorNotAssigned    = conflict("Proctor is not assigned to this session")
)

func errProctorMissing(proctorID string) *Error {
	return notFound("Proctor with ID %s not found", proctorID)
}
