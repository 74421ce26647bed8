package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"aktau-afisha-bot/internal/domain/model"
	"aktau-afisha-bot/internal/domain/ports/repository"
	"aktau-afisha-bot/internal/infra/metrics"
	red "aktau-afisha-bot/internal/infra/redis"
)

var _ repository.EventRepository = (*eventRepoCacheDecorator)(nil)

// eventRepoCacheDecorator caches single-event lookups and the upcoming
// list, the two queries every browsing user hits. Any write invalidates.
// Upcoming lists are keyed per limit: the bot and the API ask for different
// page sizes, and one caller's page must never be served to another.
type eventRepoCacheDecorator struct {
	inner repository.EventRepository
	cache red.RedisClient
	ttl   time.Duration

	mu         sync.Mutex
	listLimits map[int]struct{}
}

func NewEventRepoCacheDecorator(inner repository.EventRepository, cache red.RedisClient, ttl time.Duration) repository.EventRepository {
	return &eventRepoCacheDecorator{
		inner:      inner,
		cache:      cache,
		ttl:        ttl,
		listLimits: make(map[int]struct{}),
	}
}

func eventKey(id int64) string { return fmt.Sprintf("event:%d", id) }

func upcomingKey(limit int) string { return fmt.Sprintf("events:upcoming:%d", limit) }

func (d *eventRepoCacheDecorator) rememberLimit(limit int) {
	d.mu.Lock()
	d.listLimits[limit] = struct{}{}
	d.mu.Unlock()
}

// drainListKeys returns every cached upcoming key and forgets them, so an
// invalidation covers all page sizes handed out since the last write.
func (d *eventRepoCacheDecorator) drainListKeys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	keys := make([]string, 0, len(d.listLimits))
	for limit := range d.listLimits {
		keys = append(keys, upcomingKey(limit))
	}
	d.listLimits = make(map[int]struct{})
	return keys
}

func (d *eventRepoCacheDecorator) invalidate(ctx context.Context, id int64) {
	d.cache.Del(ctx, append(d.drainListKeys(), eventKey(id))...)
}

func (d *eventRepoCacheDecorator) Create(ctx context.Context, tx repository.Tx, e *model.Event) (int64, error) {
	if keys := d.drainListKeys(); len(keys) > 0 {
		d.cache.Del(ctx, keys...)
	}
	return d.inner.Create(ctx, tx, e)
}

func (d *eventRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Event, error) {
	key := eventKey(id)
	if val, err := d.cache.Get(ctx, key); err == nil {
		metrics.IncCacheRequest("event", "hit")
		var e model.Event
		if json.Unmarshal([]byte(val), &e) == nil {
			return &e, nil
		}
	}

	metrics.IncCacheRequest("event", "miss")
	e, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if e != nil {
		bytes, _ := json.Marshal(e)
		d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return e, nil
}

func (d *eventRepoCacheDecorator) UpdateField(ctx context.Context, tx repository.Tx, id int64, field, value string) error {
	d.invalidate(ctx, id)
	return d.inner.UpdateField(ctx, tx, id, field, value)
}

func (d *eventRepoCacheDecorator) Delete(ctx context.Context, tx repository.Tx, id int64) error {
	d.invalidate(ctx, id)
	return d.inner.Delete(ctx, tx, id)
}

func (d *eventRepoCacheDecorator) ListUpcoming(ctx context.Context, tx repository.Tx, now time.Time, limit int) ([]*model.Event, error) {
	key := upcomingKey(limit)
	if val, err := d.cache.Get(ctx, key); err == nil {
		metrics.IncCacheRequest("event_list", "hit")
		var events []*model.Event
		if json.Unmarshal([]byte(val), &events) == nil {
			return events, nil
		}
	}

	metrics.IncCacheRequest("event_list", "miss")
	events, err := d.inner.ListUpcoming(ctx, tx, now, limit)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		bytes, _ := json.Marshal(events)
		d.cache.Set(ctx, key, bytes, d.ttl)
		d.rememberLimit(limit)
	}
	return events, nil
}

// Search and admin listings go straight through; their result sets vary
// per query and are not worth caching.

func (d *eventRepoCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Event, error) {
	return d.inner.ListAll(ctx, tx)
}

func (d *eventRepoCacheDecorator) SearchByCategory(ctx context.Context, tx repository.Tx, category string) ([]*model.Event, error) {
	return d.inner.SearchByCategory(ctx, tx, category)
}

func (d *eventRepoCacheDecorator) SearchByDate(ctx context.Context, tx repository.Tx, day time.Time) ([]*model.Event, error) {
	return d.inner.SearchByDate(ctx, tx, day)
}

func (d *eventRepoCacheDecorator) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return d.inner.Count(ctx, tx)
}
