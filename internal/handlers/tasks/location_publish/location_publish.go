package location_publish

import (
	"context"
	"time"

	"agent/internal/location"
	"agent/internal/socket"
	"agent/pkg/logger"
)

type Pool interface {
	Available() bool
}

type Orders interface {
	NonTerminalCount() int
}

type Source interface {
	Last() (location.Fix, bool)
}

type Emitter interface {
	Emit(event string, payload any) error
}

// LocationPublish периодически шлет позицию райдера на сервер.
// Публикация идет только пока райдер доступен или везет заказ,
// в простое координаты не утекают.
type LocationPublish struct {
	log      logger.Logger
	riderID  string
	pool     Pool
	orders   Orders
	source   Source
	emitter  Emitter
	interval time.Duration
}

func NewLocationPublish(
	log logger.Logger,
	riderID string,
	pool Pool,
	orders Orders,
	source Source,
	emitter Emitter,
	interval time.Duration,
) *LocationPublish {
	return &LocationPublish{
		log:      log,
		riderID:  riderID,
		pool:     pool,
		orders:   orders,
		source:   source,
		emitter:  emitter,
		interval: interval,
	}
}

func (l *LocationPublish) TTL() time.Duration {
	return l.interval
}

func (l *LocationPublish) Do(_ context.Context) error {
	if !l.pool.Available() && l.orders.NonTerminalCount() == 0 {
		return nil
	}

	fix, ok := l.source.Last()
	if !ok {
		l.log.Warn("location publish skipped, no fresh fix")
		return nil
	}

	err := l.emitter.Emit(socket.EventRiderLocationUpdate, socket.RiderLocationUpdatePayload{
		RiderID: l.riderID,
		Coordinates: socket.Coordinates{
			Latitude:  fix.Point.Latitude,
			Longitude: fix.Point.Longitude,
		},
	})
	if err != nil {
		l.log.With(
			logger.NewField("error", err),
		).Warn("location publish failed")
	}
	return nil
}

func (l *LocationPublish) Info() string {
	return "location publish"
}
