package pin

import (
	"context"
	"fmt"

	"github.com/AlekSi/pointer"
	"agent/internal/entities"
	"agent/internal/socket"
	"agent/pkg/logger"
)

const (
	stagePickup   = "pickup"
	stageDelivery = "delivery"

	outcomeOK       = "ok"
	outcomeRejected = "rejected"
)

// Verifier - подтверждение передачи заказа по PIN. Пикап и вручение
// идут через один и тот же флоу, различается только целевой статус.
type Verifier struct {
	log     handlerLogger
	gateway Gateway
	orders  OrderCache
	emitter Emitter
}

func New(log handlerLogger, gateway Gateway, orders OrderCache, emitter Emitter) *Verifier {
	return &Verifier{
		log:     log.With(logger.NewField("component", "pin")),
		gateway: gateway,
		orders:  orders,
		emitter: emitter,
	}
}

// VerifyPickup подтверждает получение заказа в ресторане. После успеха
// статус двигается двумя шагами: picked_up локально и сразу интент
// on_the_way на сервер, райдер не стоит на месте с заказом в руках.
func (v *Verifier) VerifyPickup(ctx context.Context, orderID, rawPin string) error {
	pin, err := normalizePin(rawPin)
	if err != nil {
		return err
	}

	order, ok := v.orders.Get(orderID)
	if !ok {
		return ErrOrderNotTracked
	}
	if order.Status.AtLeast(entities.OrderPickedUp) {
		return ErrAlreadyVerified
	}

	if err := v.gateway.VerifyPickupPin(ctx, orderID, pin); err != nil {
		VerificationsTotal.WithLabelValues(stagePickup, outcomeRejected).Inc()
		return fmt.Errorf("verify pickup pin: %w", err)
	}
	VerificationsTotal.WithLabelValues(stagePickup, outcomeOK).Inc()

	v.orders.ApplyPatch(orderID, entities.OrderPatch{
		Status: pointer.To(entities.OrderPickedUp),
	})

	if err := v.emitter.Emit(socket.EventUpdateOrderStatus, socket.UpdateOrderStatusPayload{
		OrderID: orderID,
		Status:  string(entities.OrderOnTheWay),
	}); err != nil {
		v.log.Warn("on_the_way intent not sent",
			logger.NewField("order", orderID),
			logger.NewField("error", err),
		)
	}

	v.log.Info("pickup verified", logger.NewField("order", orderID))
	return nil
}

// VerifyDelivery подтверждает вручение заказа клиенту.
func (v *Verifier) VerifyDelivery(ctx context.Context, orderID, rawPin string) error {
	pin, err := normalizePin(rawPin)
	if err != nil {
		return err
	}

	order, ok := v.orders.Get(orderID)
	if !ok {
		return ErrOrderNotTracked
	}
	if order.Status.AtLeast(entities.OrderDelivered) {
		return ErrAlreadyVerified
	}

	if err := v.gateway.VerifyDeliveryPin(ctx, orderID, pin); err != nil {
		VerificationsTotal.WithLabelValues(stageDelivery, outcomeRejected).Inc()
		return fmt.Errorf("verify delivery pin: %w", err)
	}
	VerificationsTotal.WithLabelValues(stageDelivery, outcomeOK).Inc()

	v.orders.ApplyPatch(orderID, entities.OrderPatch{
		Status: pointer.To(entities.OrderDelivered),
	})

	v.log.Info("delivery verified", logger.NewField("order", orderID))
	return nil
}
