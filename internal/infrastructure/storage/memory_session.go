package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/presupuestos-bot/internal/domain/entity"
	"github.com/yourusername/presupuestos-bot/internal/domain/repository"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int64]*entity.Session
	ttl      time.Duration
}

// NewMemorySessionRepository store de sesiones en memoria con TTL por
// inactividad. Fallback cuando no hay Postgres configurado.
func NewMemorySessionRepository(ttl time.Duration) repository.SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[int64]*entity.Session),
		ttl:      ttl,
	}
}

func (m *memorySessionRepository) Get(_ context.Context, chatID int64) (*entity.Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[chatID]
	m.mu.RUnlock()

	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if m.expired(session) {
		m.mu.Lock()
		delete(m.sessions, chatID)
		m.mu.Unlock()
		return nil, repository.ErrSessionNotFound
	}
	return session, nil
}

func (m *memorySessionRepository) Save(_ context.Context, session *entity.Session) error {
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	m.mu.Lock()
	m.sessions[session.ChatID] = session
	m.mu.Unlock()
	return nil
}

func (m *memorySessionRepository) Delete(_ context.Context, chatID int64) error {
	m.mu.Lock()
	delete(m.sessions, chatID)
	m.mu.Unlock()
	return nil
}

func (m *memorySessionRepository) expired(session *entity.Session) bool {
	return m.ttl > 0 && time.Since(session.UpdatedAt) > m.ttl
}

// StartJanitor barre sesiones abandonadas hasta que el contexto se cancele
func (m *memorySessionRepository) StartJanitor(ctx context.Context) {
	if m.ttl <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(m.ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

func (m *memorySessionRepository) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for chatID, session := range m.sessions {
		if m.expired(session) {
			delete(m.sessions, chatID)
		}
	}
}
