package tracking_refresh

import (
	"context"
	"time"

	"agent/internal/entities"
	"agent/pkg/logger"
)

type Gateway interface {
	CustomerOrders(ctx context.Context, customerID string) ([]entities.Order, error)
}

type Orders interface {
	TrackAll(orders []entities.Order)
}

type Rooms interface {
	Join(orderID string)
	Leave(orderID string)
}

// TrackingRefresh сверяет активные заказы клиента с бэкендом и держит
// подписки на их комнаты в актуальном состоянии.
type TrackingRefresh struct {
	log        logger.Logger
	customerID string
	gateway    Gateway
	orders     Orders
	rooms      Rooms
	interval   time.Duration
}

func NewTrackingRefresh(
	log logger.Logger,
	customerID string,
	gateway Gateway,
	orders Orders,
	rooms Rooms,
	interval time.Duration,
) *TrackingRefresh {
	return &TrackingRefresh{
		log:        log,
		customerID: customerID,
		gateway:    gateway,
		orders:     orders,
		rooms:      rooms,
		interval:   interval,
	}
}

func (t *TrackingRefresh) TTL() time.Duration {
	return t.interval
}

func (t *TrackingRefresh) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, t.interval)
	defer cancel()

	orders, err := t.gateway.CustomerOrders(ctxWithTimeout, t.customerID)
	if err != nil {
		// Трекер живет и без бэкенда, socket продолжает доставлять события.
		t.log.With(
			logger.NewField("error", err),
		).Warn("tracking refresh failed")
		return nil
	}

	t.orders.TrackAll(orders)

	for _, order := range orders {
		if order.Status.Terminal() {
			t.rooms.Leave(order.ID)
		} else {
			t.rooms.Join(order.ID)
		}
	}
	return nil
}

func (t *TrackingRefresh) Info() string {
	return "tracking refresh"
}
