package usecase

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
)

// CheckoutState — состояние оформления заказа в сессии
type CheckoutState int32

const (
	CheckoutIdle CheckoutState = iota
	CheckoutSubmitting
	CheckoutSuccess
	CheckoutFailure
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutIdle:
		return "idle"
	case CheckoutSubmitting:
		return "submitting"
	case CheckoutSuccess:
		return "success"
	case CheckoutFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Session — состояние одного покупателя: заказ, текущее уведомление, маршрут и статус оформления.
// Сессия создаётся только через NewSession, поэтому заказ всегда инициализирован.
type Session struct {
	ID    string
	order *OrderState

	mu           sync.Mutex
	notification *domain.Notification
	route        string
	lastSeen     time.Time

	state   atomic.Int32
	outcome atomic.Int32
	closed  atomic.Bool
}

func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		order:    NewOrderState(),
		route:    domain.RouteHome,
		lastSeen: time.Now(),
	}
}

func (s *Session) Order() *OrderState {
	return s.order
}

// Notify заменяет текущее уведомление: одновременно показывается только одно.
func (s *Session) Notify(level domain.NotificationLevel, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notification = domain.NewNotification(level, message)
}

// Notification возвращает копию текущего уведомления или nil.
func (s *Session) Notification() *domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notification == nil {
		return nil
	}

	n := *s.notification
	return &n
}

func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notification = nil
}

func (s *Session) Navigate(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = route
}

func (s *Session) Route() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// CheckoutState возвращает текущее состояние: Idle или Submitting.
func (s *Session) CheckoutState() CheckoutState {
	return CheckoutState(s.state.Load())
}

// LastOutcome возвращает итог последней отправки (Success, Failure) или Idle, если отправок не было.
func (s *Session) LastOutcome() CheckoutState {
	return CheckoutState(s.outcome.Load())
}

func (s *Session) Closed() bool {
	return s.closed.Load()
}

// beginSubmit переводит сессию в Submitting. Закрытая сессия новых отправок не принимает.
// Проверка и переход выполняются под s.mu, как и expire, поэтому janitor не закроет сессию посреди отправки.
func (s *Session) beginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return e.Wrap(s.ID, e.ErrSessionNotFound)
	}
	if !s.state.CompareAndSwap(int32(CheckoutIdle), int32(CheckoutSubmitting)) {
		return e.ErrSubmitInProgress
	}

	return nil
}

// finishSubmit фиксирует итог и возвращает сессию в Idle.
func (s *Session) finishSubmit(outcome CheckoutState) {
	s.state.Store(int32(outcome))
	s.outcome.Store(int32(outcome))
	s.state.Store(int32(CheckoutIdle))
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

// expire закрывает сессию, если она простаивает дольше ttl и не оформляет заказ.
func (s *Session) expire(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if CheckoutState(s.state.Load()) == CheckoutSubmitting || now.Sub(s.lastSeen) <= ttl {
		return false
	}

	s.closed.Store(true)
	return true
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed.Store(true)
}
