package stats_get

import (
	"context"

	"agent/internal/entities"
	"agent/pkg/logger"
)

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Stats(ctx context.Context) (entities.RiderStats, error)
}
