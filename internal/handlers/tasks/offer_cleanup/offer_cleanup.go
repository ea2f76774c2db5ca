package offer_cleanup

import (
	"context"
	"time"

	"agent/pkg/logger"
)

type Service interface {
	Sweep() int
}

// OfferCleanup выметает просроченные офферы. Страховка на случай, когда
// order_taken потерялся в реконнекте.
type OfferCleanup struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewOfferCleanup(log logger.Logger, service Service, interval time.Duration) *OfferCleanup {
	return &OfferCleanup{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (o *OfferCleanup) TTL() time.Duration {
	return o.interval
}

func (o *OfferCleanup) Do(_ context.Context) error {
	removed := o.service.Sweep()
	if removed > 0 {
		o.log.With(
			logger.NewField("expired_offers", removed),
		).Info("offer cleanup")
	}
	return nil
}

func (o *OfferCleanup) Info() string {
	return "offer cleanup"
}
