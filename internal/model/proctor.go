package model

import (
	"slices"
	"time"
)

// Proctor supervises one or more non-overlapping sessions
type Proctor struct {
	ID               string    `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Email            string    `json:"email" bson:"email"`
	AssignedSessions []string  `json:"assignedSessions" bson:"assignedSessions"` // session IDs
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updatedAt"`
	Version          int64     `json:"-" bson:"version"` // bumped on every stored write
}

// IsAssignedTo reports whether sessionID is in AssignedSessions.
func (p *Proctor) IsAssignedTo(sessionID string) bool {
	return slices.Contains(p.AssignedSessions, sessionID)
}

// Clone returns a deep copy.
func (p *Proctor) Clone() *Proctor {
	if p == nil {
		return nil
	}
	c := *p
	c.AssignedSessions = append([]string{}, p.AssignedSessions...)
	return &c
}
