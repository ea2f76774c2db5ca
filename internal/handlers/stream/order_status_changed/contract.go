package order_status_changed

import (
	"agent/internal/entities"
	"agent/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ApplyStatus(event entities.StatusEvent) (entities.Order, bool)
}
