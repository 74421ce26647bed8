package model

import "time"

// Favorite links a user to an event they starred. The (UserID, EventID) pair
// is unique; adding it twice reports already-exists.
type Favorite struct {
	ID        int64
	UserID    int64
	EventID   int64
	CreatedAt time.Time
}
