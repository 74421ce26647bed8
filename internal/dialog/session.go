package dialog

import (
	"context"
	"time"
)

type FlowTag string

type StepTag string

// Session is one user's progress through a multi-step dialog. A user has at
// most one Session; its absence means the user is idle.
type Session struct {
	UserID    int64             `json:"user_id"`
	Flow      FlowTag           `json:"flow"`
	Step      StepTag           `json:"step"`
	Fields    map[string]string `json:"fields"`
	StartedAt time.Time         `json:"started_at"`
}

func NewSession(userID int64, flow FlowTag, step StepTag) *Session {
	return &Session{
		UserID:    userID,
		Flow:      flow,
		Step:      step,
		Fields:    make(map[string]string),
		StartedAt: time.Now().UTC(),
	}
}

func (s *Session) SetField(name, value string) {
	if s.Fields == nil {
		s.Fields = make(map[string]string)
	}
	s.Fields[name] = value
}

func (s *Session) Field(name string) string {
	return s.Fields[name]
}

// Store keeps per-user sessions. Get returns (nil, nil) for an idle user.
// Set replaces any prior session for the same user; operations on different
// users never block one another.
type Store interface {
	Get(ctx context.Context, userID int64) (*Session, error)
	Set(ctx context.Context, s *Session) error
	Clear(ctx context.Context, userID int64) error
}
