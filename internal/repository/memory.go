package repository

import (
	"context"
	"sync"
	"time"

	"homestay/internal/models"
)

type MemorySessionStore struct {
	sessions   sync.Map
	rateLimits sync.Map
	mu         sync.Mutex // guards rate limit read-modify-write
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (r *MemorySessionStore) GetSession(_ context.Context, token string) (*models.Session, error) {
	val, ok := r.sessions.Load(token)
	if !ok {
		return nil, nil
	}
	session := val.(*models.Session)
	if session.Expired(time.Now()) {
		r.sessions.Delete(token)
		return nil, nil
	}
	return session, nil
}

func (r *MemorySessionStore) SetSession(_ context.Context, session *models.Session) error {
	r.sessions.Store(session.Token, session)
	return nil
}

func (r *MemorySessionStore) DeleteSession(_ context.Context, token string) error {
	r.sessions.Delete(token)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemorySessionStore) CheckRateLimit(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	val, ok := r.rateLimits.Load(key)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{count: 1, expiresAt: now.Add(window)}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(key, entry)
	return entry.count <= limit, nil
}

func (r *MemorySessionStore) ResetRateLimit(_ context.Context, key string) error {
	r.rateLimits.Delete(key)
	return nil
}

// Sweep drops expired sessions and rate limit windows.
func (r *MemorySessionStore) Sweep(now time.Time) int {
	removed := 0
	r.sessions.Range(func(key, value any) bool {
		if value.(*models.Session).Expired(now) {
			r.sessions.Delete(key)
			removed++
		}
		return true
	})
	r.rateLimits.Range(func(key, value any) bool {
		if now.After(value.(*rateLimitEntry).expiresAt) {
			r.rateLimits.Delete(key)
		}
		return true
	})
	return removed
}

// StartJanitor sweeps on every interval until ctx is done.
func (r *MemorySessionStore) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}
