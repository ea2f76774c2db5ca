package order_status_changed

import (
	"context"
	"encoding/json"
	"time"

	"agent/internal/entities"
	"agent/pkg/logger"
)

// Handler применяет события смены статуса к кэшу заказов. Одно тело
// обслуживает все три имени события: order_status_changed,
// order_status_update и order_accepted несут одинаковый смысл.
type Handler struct {
	log    handlerLogger
	orders Service
}

type statusChangedEvent struct {
	OrderID       string    `json:"orderId"`
	Status        string    `json:"status"`
	StatusMessage string    `json:"statusMessage"`
	RiderName     string    `json:"riderName"`
	RiderPhone    string    `json:"riderPhone"`
	Timestamp     time.Time `json:"timestamp"`
}

func New(log handlerLogger, orders Service) *Handler {
	return &Handler{
		log:    log.With(logger.NewField("handler", "order_status_changed")),
		orders: orders,
	}
}

func (h *Handler) Handle(_ context.Context, data json.RawMessage) {
	var event statusChangedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.log.Error("bad status event payload", logger.NewField("error", err))
		return
	}

	occurredAt := event.Timestamp
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	order, ok := h.orders.ApplyStatus(entities.StatusEvent{
		OrderID:    event.OrderID,
		Status:     entities.OrderStatusType(event.Status),
		Message:    event.StatusMessage,
		RiderName:  event.RiderName,
		RiderPhone: event.RiderPhone,
		OccurredAt: occurredAt,
	})
	if !ok {
		h.log.Warn("status event for untracked order ignored",
			logger.NewField("order", event.OrderID),
			logger.NewField("status", event.Status),
		)
		return
	}

	h.log.Info("order status applied",
		logger.NewField("order", order.ID),
		logger.NewField("event_status", event.Status),
		logger.NewField("current_status", order.Status.String()),
	)
}
