package lifecycle

import (
	"sync"
	"time"

	"agent/internal/entities"
)

// Store - клиентский кэш заказов. Авторитетная копия живет на бекенде,
// здесь read-mostly проекция: мутируется начальной загрузкой, входящими
// событиями и оптимистичными правками. Подтвержденная запись всегда
// перетирает оптимистичную, merge-логики нет.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*entities.Order
	clock  func() time.Time
}

func New() *Store {
	return &Store{
		orders: make(map[string]*entities.Order),
		clock:  time.Now,
	}
}

// Track кладет подтвержденную (REST) версию заказа в кэш. Уже известные
// времена переходов сохраняются: каждый переход ставится не более одного раза.
func (s *Store) Track(order entities.Order) {
	if !isValidOrderID(order.ID) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if order.Transitions == nil {
		order.Transitions = make(map[entities.OrderStatusType]time.Time)
	}

	existing, ok := s.orders[order.ID]
	if ok {
		for status, at := range existing.Transitions {
			if _, stamped := order.Transitions[status]; !stamped {
				order.Transitions[status] = at
			}
		}
		// Regress-защита: REST-снапшот не откатывает прогресс,
		// уже показанный по событиям (порядок между путями не гарантирован).
		if !statusAdvances(existing.Status, order.Status) {
			order.Status = existing.Status
		}
	}

	order.Provenance = entities.WriteConfirmed
	s.orders[order.ID] = &order
}

func (s *Store) TrackAll(orders []entities.Order) {
	for _, order := range orders {
		s.Track(order)
	}
}

func (s *Store) Get(orderID string) (entities.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, false
	}
	return cloneOrder(order), true
}

func (s *Store) List() []entities.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.Order, 0, len(s.orders))
	for _, order := range s.orders {
		result = append(result, cloneOrder(order))
	}
	return result
}

// ApplyStatus применяет входящее событие смены статуса. Событие по
// неизвестному заказу игнорируется - это не ошибка, подписки разных
// потребителей пересекаются. Повторная доставка того же события - no-op.
func (s *Store) ApplyStatus(event entities.StatusEvent) (entities.Order, bool) {
	if !isValidOrderID(event.OrderID) {
		return entities.Order{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[event.OrderID]
	if !ok {
		return entities.Order{}, false
	}

	if order.Status == entities.OrderCancelled {
		// Терминальный статус, дальнейшие события не применяются.
		return cloneOrder(order), true
	}

	if statusAdvances(order.Status, event.Status) {
		order.Status = event.Status
	}

	if event.Message != "" {
		order.StatusMessage = event.Message
	}
	if event.RiderName != "" {
		rider := entities.RiderRef{Name: event.RiderName, Phone: event.RiderPhone}
		if order.Rider != nil {
			rider.ID = order.Rider.ID
		}
		order.Rider = &rider
	}

	s.stampTransition(order, event.Status, event.OccurredAt)
	order.Provenance = entities.WriteConfirmed

	if order.Status.Terminal() {
		// Терминальный заказ больше не стримит позицию райдера.
		order.RiderLocation = nil
	}

	return cloneOrder(order), true
}

// ApplyPatch - оптимистичная локальная правка, применяется немедленно и
// живет до следующей авторитетной записи.
func (s *Store) ApplyPatch(orderID string, patch entities.OrderPatch) (entities.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, false
	}

	if patch.Status != nil {
		order.Status = *patch.Status
		s.stampTransition(order, *patch.Status, time.Time{})
	}
	if patch.StatusMessage != nil {
		order.StatusMessage = *patch.StatusMessage
	}
	if patch.Rider != nil {
		rider := *patch.Rider
		order.Rider = &rider
	}
	if patch.RiderLocation != nil {
		loc := *patch.RiderLocation
		order.RiderLocation = &loc
	}
	order.Provenance = entities.WriteOptimistic

	return cloneOrder(order), true
}

// UpdateRiderLocation применяет rider_location_live. Для терминальных
// заказов позиция не обновляется.
func (s *Store) UpdateRiderLocation(orderID string, loc entities.RiderLocation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok || order.Status.Terminal() {
		return false
	}

	copied := loc
	order.RiderLocation = &copied
	return true
}

// NonTerminalCount - количество активных заказов. Используется гвардом
// выхода из пула и гейтом публикации геопозиции.
func (s *Store) NonTerminalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, order := range s.orders {
		if !order.Status.Terminal() {
			count++
		}
	}
	return count
}

func (s *Store) Remove(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, orderID)
}

func (s *Store) stampTransition(order *entities.Order, status entities.OrderStatusType, at time.Time) {
	if order.Transitions == nil {
		order.Transitions = make(map[entities.OrderStatusType]time.Time)
	}
	if _, stamped := order.Transitions[status]; stamped {
		return
	}
	if at.IsZero() {
		at = s.clock()
	}
	order.Transitions[status] = at
}

// statusAdvances решает, перетирает ли новый статус текущий.
// Известный статус ниже текущего по линейке - устаревшая редоставка,
// прогресс не откатываем. Неизвестные статусы сохраняются дословно
// (forward-compatible), cancelled применяется всегда.
func statusAdvances(current, next entities.OrderStatusType) bool {
	if next == current {
		return false
	}
	if next == entities.OrderCancelled || next.Rank() < 0 {
		return true
	}
	if current.Rank() < 0 {
		// Текущий неизвестен - доверяем серверной линейке.
		return true
	}
	return next.Rank() > current.Rank()
}

func cloneOrder(order *entities.Order) entities.Order {
	copied := *order

	if order.Transitions != nil {
		copied.Transitions = make(map[entities.OrderStatusType]time.Time, len(order.Transitions))
		for status, at := range order.Transitions {
			copied.Transitions[status] = at
		}
	}
	if order.Items != nil {
		copied.Items = append([]entities.OrderItem(nil), order.Items...)
	}
	if order.Customer != nil {
		customer := *order.Customer
		copied.Customer = &customer
	}
	if order.Rider != nil {
		rider := *order.Rider
		copied.Rider = &rider
	}
	if order.RiderLocation != nil {
		loc := *order.RiderLocation
		copied.RiderLocation = &loc
	}
	return copied
}
