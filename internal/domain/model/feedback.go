package model

import "time"

// Feedback is a free-text message left by a user through the feedback dialog.
type Feedback struct {
	ID        int64
	UserID    int64
	Message   string
	CreatedAt time.Time
}
