//go:build !integration

package redis

import (
	"context"
	"testing"
	"time"

	"aktau-afisha-bot/internal/dialog"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := NewSessionStore(client, 0)

	t.Run("idle user has no session", func(t *testing.T) {
		got, err := store.Get(ctx, 7)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != nil {
			t.Fatalf("want nil, got %+v", got)
		}
	})

	t.Run("set then get preserves the draft", func(t *testing.T) {
		sess := dialog.NewSession(7, "add_event", "add_event:date")
		sess.SetField("title", "Концерт")
		sess.SetField("description", "Описание")
		if err := store.Set(ctx, sess); err != nil {
			t.Fatalf("set: %v", err)
		}

		got, err := store.Get(ctx, 7)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got == nil || got.Flow != "add_event" || got.Step != "add_event:date" {
			t.Fatalf("got %+v", got)
		}
		if got.Field("title") != "Концерт" || got.Field("description") != "Описание" {
			t.Fatalf("draft lost: %v", got.Fields)
		}
	})

	t.Run("set replaces the prior session", func(t *testing.T) {
		if err := store.Set(ctx, dialog.NewSession(7, "feedback", "feedback:message")); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, _ := store.Get(ctx, 7)
		if got.Flow != "feedback" {
			t.Fatalf("not replaced: %+v", got)
		}
	})

	t.Run("clear", func(t *testing.T) {
		if err := store.Clear(ctx, 7); err != nil {
			t.Fatalf("clear: %v", err)
		}
		got, _ := store.Get(ctx, 7)
		if got != nil {
			t.Fatalf("session survived clear: %+v", got)
		}
	})
}

func TestSessionStoreTTLPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("ttl forwarded to the client", func(t *testing.T) {
		client := newFakeClient()
		store := NewSessionStore(client, time.Hour)
		sess := dialog.NewSession(7, "feedback", "feedback:message")
		if err := store.Set(ctx, sess); err != nil {
			t.Fatalf("set: %v", err)
		}
		if got := client.expires["dialog_session:7"]; got != time.Hour {
			t.Fatalf("ttl = %v", got)
		}
	})

	t.Run("zero ttl keeps sessions forever", func(t *testing.T) {
		client := newFakeClient()
		store := NewSessionStore(client, 0)
		if err := store.Set(ctx, dialog.NewSession(7, "feedback", "feedback:message")); err != nil {
			t.Fatalf("set: %v", err)
		}
		if got := client.expires["dialog_session:7"]; got != 0 {
			t.Fatalf("ttl = %v, want no expiry", got)
		}
	})
}

func TestSessionStoreUsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(newFakeClient(), 0)

	_ = store.Set(ctx, dialog.NewSession(1, "add_event", "add_event:title"))
	_ = store.Set(ctx, dialog.NewSession(2, "feedback", "feedback:message"))

	if err := store.Clear(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := store.Get(ctx, 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Flow != "feedback" {
		t.Fatalf("neighbor session touched: %+v", got)
	}
}
