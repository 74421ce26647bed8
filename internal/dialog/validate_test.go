//go:build !integration

package dialog

import (
	"testing"
	"time"
)

func TestNonEmpty(t *testing.T) {
	v := NonEmpty("title")

	t.Run("accepts text verbatim", func(t *testing.T) {
		got, err := v("  Party  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "  Party  " {
			t.Fatalf("value changed: %q", got)
		}
	})

	t.Run("rejects blank", func(t *testing.T) {
		_, err := v("   ")
		if !IsValidation(err) {
			t.Fatalf("want validation error, got %v", err)
		}
	})
}

func TestDate(t *testing.T) {
	v := Date("date")

	got, err := v("25.12.2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	if _, err := v("31.13.2024"); !IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestDateTime(t *testing.T) {
	v := DateTime("date")

	got, err := v("25.12.2024 19:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 12, 25, 19, 0, 0, 0, time.UTC).Format(time.RFC3339)
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	for _, bad := range []string{"25.12.2024", "2024-12-25 19:00", "31.13.2024 19:00", "text"} {
		if _, err := v(bad); !IsValidation(err) {
			t.Fatalf("%q: want validation error, got %v", bad, err)
		}
	}
}

func TestOneOf(t *testing.T) {
	v := OneOf("category", "Концерт", "Вечеринка")

	if got, err := v("Концерт"); err != nil || got != "Концерт" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := v("концерт"); !IsValidation(err) {
		t.Fatalf("match must be exact, got %v", err)
	}
}
