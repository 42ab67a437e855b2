package model

import (
	"slices"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/schedule"
)

// EnrolledCandidate holds a seat in a session
type EnrolledCandidate struct {
	StudentID           string    `json:"studentId" bson:"studentId"`
	Email               string    `json:"email" bson:"email"`
	Name                string    `json:"name" bson:"name"`
	EnrollmentTimestamp time.Time `json:"enrollmentTimestamp" bson:"enrollmentTimestamp"`
}

// Key returns the student ID.
func (c EnrolledCandidate) Key() string { return c.StudentID }

// WaitlistedCandidate is queued for a seat. WaitlistPosition is 1-based.
type WaitlistedCandidate struct {
	StudentID           string    `json:"studentId" bson:"studentId"`
	Email               string    `json:"email" bson:"email"`
	Name                string    `json:"name" bson:"name"`
	WaitlistPosition    int       `json:"waitlistPosition" bson:"waitlistPosition"`
	EnrollmentTimestamp time.Time `json:"enrollmentTimestamp" bson:"enrollmentTimestamp"`
}

// Key returns the student ID.
func (c WaitlistedCandidate) Key() string { return c.StudentID }

// ExamSession is a timed examination with a seat limit
type ExamSession struct {
	ID                 string                      `json:"id" bson:"_id"`
	Title              string                      `json:"title" bson:"title"`
	Duration           int                         `json:"duration" bson:"duration"` // minutes
	MaxCandidates      int                         `json:"maxCandidates" bson:"maxCandidates"`
	StartTime          time.Time                   `json:"startTime" bson:"startTime"`
	IsEnrollmentClosed bool                        `json:"isEnrollmentClosed" bson:"isEnrollmentClosed"`
	EnrolledCandidates Roster[EnrolledCandidate]   `json:"enrolledCandidates" bson:"enrolledCandidates"`
	Waitlist           Roster[WaitlistedCandidate] `json:"waitlist" bson:"waitlist"`
	Proctors           []string                    `json:"proctors" bson:"proctors"` // proctor IDs
	CreatedAt          time.Time                   `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time                   `json:"updatedAt" bson:"updatedAt"`
	Version            int64                       `json:"-" bson:"version"` // bumped on every stored write
}

// EndTime is StartTime plus Duration minutes.
func (s *ExamSession) EndTime() time.Time {
	return schedule.End(s.StartTime, s.Duration)
}

// HasCandidate reports whether studentID is enrolled or waitlisted here.
func (s *ExamSession) HasCandidate(studentID string) bool {
	return s.EnrolledCandidates.Has(studentID) || s.Waitlist.Has(studentID)
}

// HasProctor reports whether proctorID is assigned here.
func (s *ExamSession) HasProctor(proctorID string) bool {
	return slices.Contains(s.Proctors, proctorID)
}

// Overlaps reports whether this session's window conflicts with other's.
func (s *ExamSession) Overlaps(other *ExamSession) bool {
	return schedule.Overlaps(s.StartTime, s.Duration, other.StartTime, other.Duration)
}

// IsFull reports whether every seat is taken.
func (s *ExamSession) IsFull() bool {
	return s.EnrolledCandidates.Len() >= s.MaxCandidates
}

// Clone returns a deep copy.
func (s *ExamSession) Clone() *ExamSession {
	if s == nil {
		return nil
	}
	c := *s
	c.EnrolledCandidates = s.EnrolledCandidates.Clone()
	c.Waitlist = s.Waitlist.Clone()
	c.Proctors = append([]string{}, s.Proctors...)
	return &c
}
