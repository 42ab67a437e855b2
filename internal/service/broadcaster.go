package service

// Session event types pushed to subscribers of a session.
const (
	EventCandidateEnrolled   = "candidate_enrolled"
	EventCandidateWaitlisted = "candidate_waitlisted"
	EventCandidateWithdrawn  = "candidate_withdrawn"
	EventCandidatePromoted   = "candidate_promoted"
	EventEnrollmentClosed    = "enrollment_closed"
	EventProctorAssigned     = "proctor_assigned"
	EventProctorRemoved      = "proctor_removed"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(sessionID string, eventType string, payload interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastToSession(string, string, interface{}) {}
