package model

import "time"

// EnrollmentState is the outcome of an enrollment request
type EnrollmentState string

const (
	EnrollmentEnrolled   EnrollmentState = "enrolled"
	EnrollmentWaitlisted EnrollmentState = "waitlisted"
)

// EnrollmentResult is returned by an enrollment request. Position is set only when waitlisted.
type EnrollmentResult struct {
	Status   EnrollmentState `json:"status"`
	Position int             `json:"position,omitempty"`
}

// CandidateState is a candidate's system-wide standing
type CandidateState string

const (
	CandidateEnrolled    CandidateState = "enrolled"
	CandidateWaitlisted  CandidateState = "waitlisted"
	CandidateNotEnrolled CandidateState = "not_enrolled"
)

// CandidateStatus describes where a student currently sits, if anywhere
type CandidateStatus struct {
	StudentID           string         `json:"studentId"`
	Status              CandidateState `json:"status"`
	SessionID           string         `json:"sessionId,omitempty"`
	SessionTitle        string         `json:"sessionTitle,omitempty"`
	EnrollmentTimestamp *time.Time     `json:"enrollmentTimestamp,omitempty"` // enrolled only
	WaitlistPosition    int            `json:"waitlistPosition,omitempty"`    // waitlisted only
}

// WithdrawalResult reports which list a withdrawn candidate left and who, if anyone, took the seat.
type WithdrawalResult struct {
	RemovedFrom EnrollmentState    `json:"removedFrom"`
	Promoted    *EnrolledCandidate `json:"promoted,omitempty"`
}
