package rider_location_live

import (
	"agent/internal/entities"
	"agent/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	UpdateRiderLocation(orderID string, loc entities.RiderLocation) bool
}
