//go:build !integration

package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// fakeClient is an in-memory RedisClient for unit tests. It records the
// expirations handed to Set/Expire instead of enforcing them.
type fakeClient struct {
	mu          sync.Mutex
	values      map[string]string
	expires     map[string]time.Duration
	expireCalls map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		values:      make(map[string]string),
		expires:     make(map[string]time.Duration),
		expireCalls: make(map[string]int),
	}
}

func (c *fakeClient) Ping(ctx context.Context) error { return nil }

func (c *fakeClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
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
	c.expires[key] = expiration
	return nil
}

func (c *fakeClient) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", Nil
	}
	return v, nil
}

func (c *fakeClient) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expires[key] = expiration
	c.expireCalls[key]++
	return nil
}

func (c *fakeClient) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		delete(c.expires, k)
	}
	return nil
}

func (c *fakeClient) Close() error { return nil }

var _ RedisClient = (*fakeClient)(nil)
