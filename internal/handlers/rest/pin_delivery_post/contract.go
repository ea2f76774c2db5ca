package pin_delivery_post

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
	VerifyDelivery(ctx context.Context, orderID, pin string) error
}
