package order_taken

import (
	"context"
	"encoding/json"

	"agent/pkg/logger"
)

// Handler убирает оффер из пула, когда заказ забрал другой райдер.
type Handler struct {
	log  handlerLogger
	pool Service
}

type orderTakenEvent struct {
	OrderID string `json:"orderId"`
}

func New(log handlerLogger, pool Service) *Handler {
	return &Handler{
		log:  log.With(logger.NewField("handler", "order_taken")),
		pool: pool,
	}
}

func (h *Handler) Handle(_ context.Context, data json.RawMessage) {
	var event orderTakenEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.log.Error("bad order_taken payload", logger.NewField("error", err))
		return
	}
	if event.OrderID == "" {
		return
	}

	h.pool.HandleOrderTaken(event.OrderID)
}
