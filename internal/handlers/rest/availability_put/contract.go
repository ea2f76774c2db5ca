package availability_put

import (
	"context"

	"agent/pkg/logger"
)

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Join(ctx context.Context) error
	Leave(ctx context.Context) error
}
