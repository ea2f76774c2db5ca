//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pool_test
package pool

import (
	"context"

	"agent/internal/entities"
	"agent/internal/location"
	"agent/pkg/logger"
)

type Emitter interface {
	Emit(event string, payload any) error
}

type AvailabilityGateway interface {
	SetAvailability(ctx context.Context, riderID string, available bool) error
}

type LocationSource interface {
	Acquire(ctx context.Context) (location.Fix, error)
}

type OrderCache interface {
	NonTerminalCount() int
	Track(order entities.Order)
	ApplyPatch(orderID string, patch entities.OrderPatch) (entities.Order, bool)
}

// Alerter привлекает внимание райдера к новому офферу. Реализация обязана
// не блокировать диспатч событий.
type Alerter interface {
	NewOffer(offer entities.Offer)
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
