package socket

import (
	"context"
	"encoding/json"

	"agent/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// HandlerFunc обрабатывает входящее событие. Обработчики вызываются
// последовательно в порядке прихода событий и обязаны не блокировать:
// сетевые вызовы изнутри - fire-and-forget.
type HandlerFunc func(ctx context.Context, data json.RawMessage)
