package orders_get

import (
	"agent/internal/entities"
	"agent/pkg/logger"
)

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	List() []entities.Order
}
