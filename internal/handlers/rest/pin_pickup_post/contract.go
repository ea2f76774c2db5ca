package pin_pickup_post

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
	VerifyPickup(ctx context.Context, orderID, pin string) error
}
