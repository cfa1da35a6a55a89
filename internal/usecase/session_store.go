package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

// SessionStore хранит сессии покупателей в памяти процесса.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      *cfg.SessionCfg
	logger   logger.Logger
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSessionStore(cfg *cfg.SessionCfg, logger logger.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Create создаёт новую сессию со случайным идентификатором.
func (s *SessionStore) Create() *Session {
	sess := NewSession(uuid.NewString())
	sess.touch(s.now())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get возвращает сессию по идентификатору и продлевает её жизнь.
// Продление выполняется под блокировкой хранилища, чтобы Sweep не удалил только что выданную сессию.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, e.Wrap(id, e.ErrSessionNotFound)
	}

	sess.touch(s.now())
	return sess, nil
}

// GetOrCreate возвращает существующую сессию или создаёт новую.
// Второе значение равно true, если сессия была создана.
func (s *SessionStore) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if sess, err := s.Get(id); err == nil {
			return sess, false
		}
	}

	return s.Create(), true
}

// Delete удаляет сессию. Поздние результаты оформления заказа для неё игнорируются.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		sess.close()
	}
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep удаляет сессии, неактивные дольше TTL. Сессии в процессе оформления не трогает.
func (s *SessionStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for id, sess := range s.sessions {
		if sess.expire(now, s.cfg.TTL) {
			delete(s.sessions, id)
			expired++
		}
	}

	return expired
}

// StartJanitor запускает фоновую очистку устаревших сессий.
func (s *SessionStore) StartJanitor(ctx context.Context) {
	if s.cfg.SweepInterval <= 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.cfg.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					s.logger.Debugf("expired %d sessions", n)
				}
			}
		}
	}()
}

func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}
