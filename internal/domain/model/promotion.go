package model

import (
	"strings"
	"time"

	"aktau-afisha-bot/internal/domain"
)

// Promotion is a venue offer ("акция") with a free-text validity note and an
// optional hard start/end window used by the active-promotions listing.
type Promotion struct {
	ID          int64
	Title       string
	Description string
	Venue       string
	ValidUntil  string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	PromoFieldTitle       = "title"
	PromoFieldDescription = "description"
	PromoFieldVenue       = "venue"
	PromoFieldValidUntil  = "valid_until"
)

func NewPromotion(title, description, venue, validUntil string) (*Promotion, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now().UTC()
	return &Promotion{
		Title:       title,
		Description: description,
		Venue:       venue,
		ValidUntil:  validUntil,
		StartDate:   now,
		EndDate:     now.AddDate(1, 0, 0),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func IsPromoField(name string) bool {
	switch name {
	case PromoFieldTitle, PromoFieldDescription, PromoFieldVenue, PromoFieldValidUntil:
		return true
	}
	return false
}
