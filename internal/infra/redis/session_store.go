package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aktau-afisha-bot/internal/dialog"
)

var _ dialog.Store = (*SessionStore)(nil)

// SessionStore keeps dialog sessions in Redis, one JSON value per user.
// ttl is the optional idle-timeout policy for abandoned dialogs; zero means
// sessions live until commit or cancel, matching a store with no expiry.
type SessionStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewSessionStore(client RedisClient, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) key(userID int64) string {
	return fmt.Sprintf("dialog_session:%d", userID)
}

func (s *SessionStore) Get(ctx context.Context, userID int64) (*dialog.Session, error) {
	data, err := s.client.Get(ctx, s.key(userID))
	if err != nil {
		if errors.Is(err, Nil) {
			return nil, nil
		}
		return nil, err
	}
	var sess dialog.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Set(ctx context.Context, sess *dialog.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sess.UserID), data, s.ttl)
}

func (s *SessionStore) Clear(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, s.key(userID))
}
