package orders_refresh

import (
	"context"
	"time"

	"agent/internal/entities"
	"agent/internal/location"
	"agent/pkg/logger"
)

type Gateway interface {
	RiderOrders(ctx context.Context, riderID string) ([]entities.Order, error)
	AvailableOrders(ctx context.Context, point entities.GeoPoint) ([]entities.Offer, error)
}

type Orders interface {
	TrackAll(orders []entities.Order)
}

type Pool interface {
	Available() bool
	SyncOffers(offers []entities.Offer)
}

type Source interface {
	Last() (location.Fix, bool)
}

// OrdersRefresh сверяет локальный кэш с REST-снапшотом бэкенда.
// Socket авторитетен в реальном времени, REST закрывает пропуски.
type OrdersRefresh struct {
	log      logger.Logger
	riderID  string
	gateway  Gateway
	orders   Orders
	pool     Pool
	source   Source
	interval time.Duration
}

func NewOrdersRefresh(
	log logger.Logger,
	riderID string,
	gateway Gateway,
	orders Orders,
	pool Pool,
	source Source,
	interval time.Duration,
) *OrdersRefresh {
	return &OrdersRefresh{
		log:      log,
		riderID:  riderID,
		gateway:  gateway,
		orders:   orders,
		pool:     pool,
		source:   source,
		interval: interval,
	}
}

func (o *OrdersRefresh) TTL() time.Duration {
	return o.interval
}

func (o *OrdersRefresh) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	orders, err := o.gateway.RiderOrders(ctxWithTimeout, o.riderID)
	if err != nil {
		// Агент обязан переживать недоступный бэкенд, ошибка не фатальна.
		o.log.With(
			logger.NewField("error", err),
		).Warn("orders refresh failed")
		return nil
	}
	o.orders.TrackAll(orders)

	if o.pool.Available() {
		o.refreshOffers(ctxWithTimeout)
	}
	return nil
}

func (o *OrdersRefresh) refreshOffers(ctx context.Context) {
	fix, ok := o.source.Last()
	if !ok {
		return
	}

	offers, err := o.gateway.AvailableOrders(ctx, fix.Point)
	if err != nil {
		o.log.With(
			logger.NewField("error", err),
		).Warn("offers refresh failed")
		return
	}
	o.pool.SyncOffers(offers)
}

func (o *OrdersRefresh) Info() string {
	return "orders refresh"
}
