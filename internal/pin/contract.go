//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pin_test
package pin

import (
	"context"

	"agent/internal/entities"
	"agent/pkg/logger"
)

// Gateway проверяет PIN на бэкенде. Код никогда не сверяется локально,
// у агента нет эталона.
type Gateway interface {
	VerifyPickupPin(ctx context.Context, orderID, pin string) error
	VerifyDeliveryPin(ctx context.Context, orderID, pin string) error
}

type OrderCache interface {
	Get(orderID string) (entities.Order, bool)
	ApplyPatch(orderID string, patch entities.OrderPatch) (entities.Order, bool)
}

type Emitter interface {
	Emit(event string, payload any) error
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
