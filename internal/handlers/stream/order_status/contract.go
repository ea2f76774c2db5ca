package order_status

import (
	"agent/internal/entities"
	"agent/pkg/logger"
)

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ApplyStatus(event entities.StatusEvent) (entities.Order, bool)
	UpdateRiderLocation(orderID string, loc entities.RiderLocation) bool
}
