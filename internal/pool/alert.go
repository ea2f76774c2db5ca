package pool

import (
	"fmt"
	"time"

	"agent/internal/entities"
	"agent/pkg/logger"
)

const (
	alertRepeats  = 5
	alertInterval = 2 * time.Second
)

// BeepAlerter сигналит о новом оффере терминальным BEL с повторами.
// Повторы ограничены по количеству и длительности, бесконечного
// зацикливания нет.
type BeepAlerter struct {
	log handlerLogger
}

func NewBeepAlerter(log handlerLogger) *BeepAlerter {
	return &BeepAlerter{
		log: log.With(logger.NewField("component", "alerter")),
	}
}

func (a *BeepAlerter) NewOffer(offer entities.Offer) {
	a.log.Info("new offer available",
		logger.NewField("order", offer.OrderID),
		logger.NewField("restaurant", offer.RestaurantName),
		logger.NewField("earnings", offer.EstimatedEarnings),
	)

	go func() {
		for i := 0; i < alertRepeats; i++ {
			fmt.Print("\a")
			time.Sleep(alertInterval)
		}
	}()
}

// NopAlerter для окружений без терминала (тесты, headless-запуск).
type NopAlerter struct{}

func (NopAlerter) NewOffer(entities.Offer) {}
