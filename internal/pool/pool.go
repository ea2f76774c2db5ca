package pool

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/AlekSi/pointer"
	"agent/internal/entities"
	"agent/internal/socket"
	"agent/pkg/logger"
	"agent/pkg/ttlcache"
)

// Pool - членство райдера в пуле доступных и локальный набор офферов.
// Ключевое свойство: заказ не висит в списке доступных дольше одного
// round-trip после того, как его забрал другой райдер.
type Pool struct {
	log      handlerLogger
	riderID  string
	offers   *ttlcache.Cache[string, entities.Offer]
	emitter  Emitter
	gateway  AvailabilityGateway
	location LocationSource
	orders   OrderCache
	alerter  Alerter

	available atomic.Bool
}

func New(
	log handlerLogger,
	riderID string,
	offers *ttlcache.Cache[string, entities.Offer],
	emitter Emitter,
	gateway AvailabilityGateway,
	location LocationSource,
	orders OrderCache,
	alerter Alerter,
) *Pool {
	return &Pool{
		log:      log.With(logger.NewField("component", "pool")),
		riderID:  riderID,
		offers:   offers,
		emitter:  emitter,
		gateway:  gateway,
		location: location,
		orders:   orders,
		alerter:  alerter,
	}
}

// Join объявляет райдера доступным. Без свежего геофикса вход запрещен -
// предусловие, а не повод ретраить.
func (p *Pool) Join(ctx context.Context) error {
	fix, err := p.location.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire location fix: %w", err)
	}

	if err := p.gateway.SetAvailability(ctx, p.riderID, true); err != nil {
		return fmt.Errorf("set availability: %w", err)
	}

	if err := p.emitter.Emit(socket.EventRiderJoinPool, socket.RiderJoinPoolPayload{
		RiderID: p.riderID,
		Coordinates: socket.Coordinates{
			Latitude:  fix.Point.Latitude,
			Longitude: fix.Point.Longitude,
		},
	}); err != nil {
		p.log.Warn("rider_join_pool not sent", logger.NewField("error", err))
	}

	p.available.Store(true)
	return nil
}

// Leave снимает доступность. Гвард клиентский, сервер авторитетен:
// с незавершенными доставками из пула не выходят.
func (p *Pool) Leave(ctx context.Context) error {
	if p.orders.NonTerminalCount() > 0 {
		return ErrActiveDeliveries
	}

	if err := p.gateway.SetAvailability(ctx, p.riderID, false); err != nil {
		return fmt.Errorf("set availability: %w", err)
	}

	if err := p.emitter.Emit(socket.EventRiderLeavePool, socket.RiderLeavePoolPayload{
		RiderID: p.riderID,
	}); err != nil {
		p.log.Warn("rider_leave_pool not sent", logger.NewField("error", err))
	}

	p.available.Store(false)
	return nil
}

// Rejoin повторно заявляет членство после реконнекта (socket.OnReady).
func (p *Pool) Rejoin(ctx context.Context) {
	if !p.available.Load() {
		return
	}

	fix, err := p.location.Acquire(ctx)
	if err != nil {
		p.log.Warn("rejoin skipped, no location fix", logger.NewField("error", err))
		return
	}

	if err := p.emitter.Emit(socket.EventRiderJoinPool, socket.RiderJoinPoolPayload{
		RiderID: p.riderID,
		Coordinates: socket.Coordinates{
			Latitude:  fix.Point.Latitude,
			Longitude: fix.Point.Longitude,
		},
	}); err != nil {
		p.log.Warn("rider_join_pool not re-sent", logger.NewField("error", err))
	}
}

// Accept - интент принятия заказа. Оффер убирается из локального списка
// немедленно, не дожидаясь подтверждения: ждать round-trip значит
// показывать протухший оффер.
func (p *Pool) Accept(ctx context.Context, orderID string) error {
	offer, ok := p.offers.Get(orderID)
	if !ok {
		return ErrOfferNotAvailable
	}

	p.offers.Delete(orderID)

	if err := p.emitter.Emit(socket.EventRiderAcceptOrder, socket.RiderAcceptOrderPayload{
		OrderID: orderID,
		RiderID: p.riderID,
	}); err != nil {
		p.log.Warn("rider_accept_order not sent",
			logger.NewField("order", orderID),
			logger.NewField("error", err),
		)
	}
	AcceptsTotal.Inc()

	// Оптимистично показываем заказ назначенным, авторитетное
	// order_accepted перетрет.
	p.orders.Track(entities.Order{
		ID:     orderID,
		Status: entities.OrderAwaitingRider,
		Restaurant: entities.RestaurantRef{
			Name:     offer.RestaurantName,
			Location: offer.RestaurantLocation,
		},
		PaymentMethod: offer.PaymentMethod,
	})
	p.orders.ApplyPatch(orderID, entities.OrderPatch{
		Status: pointer.To(entities.OrderRiderAssigned),
	})

	return nil
}

// HandleNewOffer кладет оффер из new_order_available и дергает алерт.
func (p *Pool) HandleNewOffer(offer entities.Offer) {
	if offer.OrderID == "" {
		return
	}
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = time.Now()
	}

	p.offers.SetAt(offer.OrderID, offer, offer.CreatedAt)
	OffersReceivedTotal.Inc()

	p.alerter.NewOffer(offer)
}

// HandleOrderTaken убирает оффер, который забрал другой райдер.
func (p *Pool) HandleOrderTaken(orderID string) {
	if p.offers.Delete(orderID) {
		OffersTakenTotal.Inc()
		p.log.Info("offer taken by another rider",
			logger.NewField("order", orderID),
		)
	}
}

// SyncOffers накатывает REST-снапшот доступных заказов (идемпотентно).
func (p *Pool) SyncOffers(offers []entities.Offer) {
	for _, offer := range offers {
		if offer.OrderID == "" {
			continue
		}
		createdAt := offer.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		p.offers.SetAt(offer.OrderID, offer, createdAt)
	}
}

// Sweep выметает офферы старше TTL - страховка от потерянного
// order_taken. Вызывается фоновой задачей.
func (p *Pool) Sweep() int {
	removed := p.offers.Sweep()
	if removed > 0 {
		OffersExpiredTotal.Add(float64(removed))
	}
	return removed
}

func (p *Pool) Offers() []entities.Offer {
	return p.offers.Values()
}

func (p *Pool) Available() bool {
	return p.available.Load()
}
