//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rooms_test
package rooms

import (
	"agent/pkg/logger"
)

type Emitter interface {
	Emit(event string, payload any) error
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
