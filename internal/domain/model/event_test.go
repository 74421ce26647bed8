//go:build !integration

package model

import (
	"errors"
	"testing"
	"time"

	"aktau-afisha-bot/internal/domain"
)

func TestNewEvent(t *testing.T) {
	date := time.Date(2024, 12, 25, 19, 0, 0, 0, time.UTC)

	e, err := NewEvent("Концерт", "desc", date, "Aktau Arena")
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}

	if _, err := NewEvent("  ", "desc", date, "x"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("blank title: %v", err)
	}
	if _, err := NewEvent("t", "desc", time.Time{}, "x"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("zero date: %v", err)
	}
}

func TestNewPromotion(t *testing.T) {
	p, err := NewPromotion("Скидка", "desc", "Кафе", "до 31.12.2024")
	if err != nil {
		t.Fatalf("new promotion: %v", err)
	}
	if !p.IsActive {
		t.Fatal("new promotion must start active")
	}
	if !p.EndDate.After(p.StartDate) {
		t.Fatalf("window inverted: %v .. %v", p.StartDate, p.EndDate)
	}

	if _, err := NewPromotion("", "d", "v", "u"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("blank title: %v", err)
	}
}

func TestFieldWhitelists(t *testing.T) {
	for _, f := range []string{EventFieldTitle, EventFieldDescription, EventFieldDate, EventFieldLocation} {
		if !IsEventField(f) {
			t.Errorf("IsEventField(%q) = false", f)
		}
	}
	if IsEventField("id") || IsEventField("price") {
		t.Error("non-editable field accepted")
	}

	if !IsPromoField(PromoFieldValidUntil) || IsPromoField("start_date") {
		t.Error("promo field whitelist wrong")
	}
}
