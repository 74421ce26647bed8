package dialog

import (
	"context"
	"sync"
)

const memoryShards = 32

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a sharded in-process session store. Sessions never expire,
// matching the behavior of a storage with no TTL policy configured.
type MemoryStore struct {
	shards [memoryShards]memoryShard
}

type memoryShard struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	for i := range s.shards {
		s.shards[i].sessions = make(map[int64]*Session)
	}
	return s
}

func (m *MemoryStore) shard(userID int64) *memoryShard {
	return &m.shards[uint64(userID)%memoryShards]
}

func (m *MemoryStore) Get(ctx context.Context, userID int64) (*Session, error) {
	sh := m.shard(userID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	s, ok := sh.sessions[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Fields = make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		cp.Fields[k] = v
	}
	return &cp, nil
}

func (m *MemoryStore) Set(ctx context.Context, s *Session) error {
	sh := m.shard(s.UserID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	cp := *s
	cp.Fields = make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		cp.Fields[k] = v
	}
	sh.sessions[s.UserID] = &cp
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, userID int64) error {
	sh := m.shard(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.sessions, userID)
	return nil
}
