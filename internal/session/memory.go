package session

import (
	"context"
	"sync"
	"time"
	"wastetrack/internal/common"
	"wastetrack/internal/domain/model"

	"github.com/google/uuid"
)

type memoryEntry struct {
	principal model.Principal
	expiresAt time.Time
}

// MemoryStore holds sessions in process memory. Sessions do not survive a
// restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore starts a store whose sessions expire after ttl of inactivity
// since creation. A ttl of zero disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.sweep()
	}
	return s
}

func (s *MemoryStore) Create(ctx context.Context, p model.Principal) (string, error) {
	token := uuid.NewString()
	entry := memoryEntry{principal: p}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.sessions[token] = entry
	s.mu.Unlock()
	return token, nil
}

func (s *MemoryStore) Resolve(ctx context.Context, token string) (*model.Principal, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, common.ErrUnauthorized
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.Destroy(ctx, token)
		return nil, common.ErrUnauthorized
	}
	p := entry.principal
	return &p, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// Close stops the expiry sweeper.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for token, entry := range s.sessions {
				if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		}
	}
}
