package model

import (
	"strings"
	"time"

	"aktau-afisha-bot/internal/domain"
)

// Event is a published announcement: a party, concert, meetup and so on.
// The category is free text inside Description, matching how the catalog
// is actually curated (search matches a literal substring).
type Event struct {
	ID          int64
	Title       string
	Description string
	Date        time.Time
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Editable event fields addressable from the edit dialog.
const (
	EventFieldTitle       = "title"
	EventFieldDescription = "description"
	EventFieldDate        = "date"
	EventFieldLocation    = "location"
)

func NewEvent(title, description string, date time.Time, location string) (*Event, error) {
	if strings.TrimSpace(title) == "" || date.IsZero() {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now().UTC()
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Location:    location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsEventField reports whether name is an editable column of events.
func IsEventField(name string) bool {
	switch name {
	case EventFieldTitle, EventFieldDescription, EventFieldDate, EventFieldLocation:
		return true
	}
	return false
}
