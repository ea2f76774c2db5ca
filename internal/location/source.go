package location

import (
	"context"
	"sync"
	"time"

	"agent/internal/entities"
)

type Fix struct {
	Point entities.GeoPoint
	At    time.Time
}

// Source - текущая геопозиция райдера. Фиксы приходят снаружи (UI шлет
// их в локальный API), Acquire ждет свежий фикс с ограниченным таймаутом:
// уйти "в доступен" без позиции нельзя.
type Source struct {
	mu      sync.Mutex
	fix     *Fix
	waiters []chan Fix

	maxAge         time.Duration
	acquireTimeout time.Duration
	clock          func() time.Time
}

func NewSource(maxAge, acquireTimeout time.Duration) *Source {
	return &Source{
		maxAge:         maxAge,
		acquireTimeout: acquireTimeout,
		clock:          time.Now,
	}
}

// Update принимает новый фикс и будит всех ожидающих Acquire.
func (s *Source) Update(point entities.GeoPoint) {
	fix := Fix{Point: point, At: s.clock()}

	s.mu.Lock()
	s.fix = &fix
	waiters := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	for _, waiter := range waiters {
		select {
		case waiter <- fix:
		default:
		}
	}
}

// Last возвращает последний фикс, если он не старше maxAge.
func (s *Source) Last() (Fix, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fix == nil || s.stale(*s.fix) {
		return Fix{}, false
	}
	return *s.fix, true
}

// Acquire отдает свежий фикс либо ждет его не дольше acquireTimeout.
// Отсутствие фикса - блокирующий отказ предусловия, не повод ретраить.
func (s *Source) Acquire(ctx context.Context) (Fix, error) {
	s.mu.Lock()
	if s.fix != nil && !s.stale(*s.fix) {
		fix := *s.fix
		s.mu.Unlock()
		return fix, nil
	}

	waiter := make(chan Fix, 1)
	s.waiters = append(s.waiters, waiter)
	s.mu.Unlock()

	timer := time.NewTimer(s.acquireTimeout)
	defer timer.Stop()

	select {
	case fix := <-waiter:
		return fix, nil
	case <-timer.C:
		return Fix{}, ErrNoFix
	case <-ctx.Done():
		return Fix{}, ctx.Err()
	}
}

func (s *Source) stale(fix Fix) bool {
	if s.maxAge <= 0 {
		return false
	}
	return s.clock().Sub(fix.At) > s.maxAge
}
