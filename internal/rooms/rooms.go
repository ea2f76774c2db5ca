package rooms

import (
	"context"
	"sort"
	"sync"

	"agent/internal/socket"
	"agent/pkg/logger"
)

// Subscriptions - набор комнат отслеживания заказов, в которых состоит
// клиент. Сервер членство между соединениями не хранит, поэтому набор
// ведется локально и пересобирается хуком Resubscribe после реконнекта.
type Subscriptions struct {
	log     handlerLogger
	emitter Emitter

	mu  sync.Mutex
	set map[string]struct{}
}

func New(log handlerLogger, emitter Emitter) *Subscriptions {
	return &Subscriptions{
		log:     log.With(logger.NewField("component", "rooms")),
		emitter: emitter,
		set:     make(map[string]struct{}),
	}
}

func (s *Subscriptions) Join(orderID string) {
	if orderID == "" {
		return
	}

	s.mu.Lock()
	s.set[orderID] = struct{}{}
	s.mu.Unlock()

	if err := s.emitter.Emit(socket.EventJoinOrderTracking, socket.JoinOrderTrackingPayload{OrderID: orderID}); err != nil {
		s.log.Warn("join_order_tracking not sent",
			logger.NewField("order", orderID),
			logger.NewField("error", err),
		)
	}
}

func (s *Subscriptions) Leave(orderID string) {
	s.mu.Lock()
	delete(s.set, orderID)
	s.mu.Unlock()

	if err := s.emitter.Emit(socket.EventLeaveOrderTracking, socket.LeaveOrderTrackingPayload{OrderID: orderID}); err != nil {
		s.log.Warn("leave_order_tracking not sent",
			logger.NewField("order", orderID),
			logger.NewField("error", err),
		)
	}
}

// Resubscribe повторно заявляет все комнаты. Вешается на socket.OnReady.
func (s *Subscriptions) Resubscribe(ctx context.Context) {
	for _, orderID := range s.Tracked() {
		if err := s.emitter.Emit(socket.EventJoinOrderTracking, socket.JoinOrderTrackingPayload{OrderID: orderID}); err != nil {
			s.log.Warn("resubscribe not sent",
				logger.NewField("order", orderID),
				logger.NewField("error", err),
			)
		}
	}
}

func (s *Subscriptions) Tracked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracked := make([]string, 0, len(s.set))
	for orderID := range s.set {
		tracked = append(tracked, orderID)
	}
	sort.Strings(tracked)
	return tracked
}
