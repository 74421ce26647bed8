//go:build !integration

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"aktau-afisha-bot/internal/domain"
	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
	red "aktau-afisha-bot/internal/infra/redis"
)

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	default:
		c.values[key] = fmt.Sprint(v)
	}
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", red.Nil
	}
	return v, nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) { return 0, nil }

func (c *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *fakeCache) Close() error { return nil }

var _ red.RedisClient = (*fakeCache)(nil)

// stubEventRepo hands out as many events as the caller asks for and counts
// how often the decorator reaches through.
type stubEventRepo struct {
	listCalls  int
	lastLimit  int
	findCalls  int
	totalRows  int
	lastUpdate string
}

func (s *stubEventRepo) Create(ctx context.Context, tx repository.Tx, e *model.Event) (int64, error) {
	return 1, nil
}

func (s *stubEventRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Event, error) {
	s.findCalls++
	if id > int64(s.totalRows) {
		return nil, domain.ErrNotFound
	}
	return &model.Event{ID: id, Title: fmt.Sprintf("E%d", id), Date: time.Now().Add(time.Hour)}, nil
}

func (s *stubEventRepo) UpdateField(ctx context.Context, tx repository.Tx, id int64, field, value string) error {
	s.lastUpdate = field + "=" + value
	return nil
}

func (s *stubEventRepo) Delete(ctx context.Context, tx repository.Tx, id int64) error { return nil }

func (s *stubEventRepo) ListUpcoming(ctx context.Context, tx repository.Tx, now time.Time, limit int) ([]*model.Event, error) {
	s.listCalls++
	s.lastLimit = limit
	n := limit
	if n > s.totalRows {
		n = s.totalRows
	}
	out := make([]*model.Event, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &model.Event{ID: int64(i), Title: fmt.Sprintf("E%d", i), Date: now.Add(time.Hour)})
	}
	return out, nil
}

func (s *stubEventRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Event, error) {
	return nil, nil
}

func (s *stubEventRepo) SearchByCategory(ctx context.Context, tx repository.Tx, category string) ([]*model.Event, error) {
	return nil, nil
}

func (s *stubEventRepo) SearchByDate(ctx context.Context, tx repository.Tx, day time.Time) ([]*model.Event, error) {
	return nil, nil
}

func (s *stubEventRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return s.totalRows, nil
}

var _ repository.EventRepository = (*stubEventRepo)(nil)

func TestUpcomingCacheKeyedByLimit(t *testing.T) {
	ctx := context.Background()
	inner := &stubEventRepo{totalRows: 10}
	repo := NewEventRepoCacheDecorator(inner, newFakeCache(), time.Minute)
	now := time.Now()

	// warm the cache with the big page
	got, err := repo.ListUpcoming(ctx, repository.NoTX, now, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 10 || inner.listCalls != 1 {
		t.Fatalf("warm: %d events, %d inner calls", len(got), inner.listCalls)
	}

	// a smaller page must not be served from the big page's entry
	got, err = repo.ListUpcoming(ctx, repository.NoTX, now, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("limit=5 returned %d events", len(got))
	}
	if inner.listCalls != 2 || inner.lastLimit != 5 {
		t.Fatalf("inner calls=%d lastLimit=%d, want a fresh limit-5 query", inner.listCalls, inner.lastLimit)
	}

	// both pages now live side by side
	if _, err := repo.ListUpcoming(ctx, repository.NoTX, now, 5); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := repo.ListUpcoming(ctx, repository.NoTX, now, 10); err != nil {
		t.Fatalf("list: %v", err)
	}
	if inner.listCalls != 2 {
		t.Fatalf("repeat lookups reached the repo: %d calls", inner.listCalls)
	}
}

func TestUpcomingCacheInvalidatedOnWrite(t *testing.T) {
	ctx := context.Background()
	inner := &stubEventRepo{totalRows: 10}
	repo := NewEventRepoCacheDecorator(inner, newFakeCache(), time.Minute)
	now := time.Now()

	if _, err := repo.ListUpcoming(ctx, repository.NoTX, now, 5); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := repo.ListUpcoming(ctx, repository.NoTX, now, 10); err != nil {
		t.Fatalf("list: %v", err)
	}
	if inner.listCalls != 2 {
		t.Fatalf("warm calls = %d", inner.listCalls)
	}

	e, _ := model.NewEvent("New", "", now.Add(time.Hour), "x")
	if _, err := repo.Create(ctx, repository.NoTX, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	// every cached page size is stale after the write
	if _, err := repo.ListUpcoming(ctx, repository.NoTX, now, 5); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := repo.ListUpcoming(ctx, repository.NoTX, now, 10); err != nil {
		t.Fatalf("list: %v", err)
	}
	if inner.listCalls != 4 {
		t.Fatalf("inner calls after write = %d, want both pages refetched", inner.listCalls)
	}
}

func TestFindByIDCachedAndInvalidated(t *testing.T) {
	ctx := context.Background()
	inner := &stubEventRepo{totalRows: 10}
	repo := NewEventRepoCacheDecorator(inner, newFakeCache(), time.Minute)

	if _, err := repo.FindByID(ctx, repository.NoTX, 3); err != nil {
		t.Fatalf("find: %v", err)
	}
	if _, err := repo.FindByID(ctx, repository.NoTX, 3); err != nil {
		t.Fatalf("find: %v", err)
	}
	if inner.findCalls != 1 {
		t.Fatalf("find calls = %d, want cached second lookup", inner.findCalls)
	}

	if err := repo.UpdateField(ctx, repository.NoTX, 3, "title", "X"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := repo.FindByID(ctx, repository.NoTX, 3); err != nil {
		t.Fatalf("find: %v", err)
	}
	if inner.findCalls != 2 {
		t.Fatalf("find calls after update = %d, want a refetch", inner.findCalls)
	}
}
