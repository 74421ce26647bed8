package model

import "time"

// Subscriber is a user who opted into broadcast announcements. UserID is unique.
type Subscriber struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
}
