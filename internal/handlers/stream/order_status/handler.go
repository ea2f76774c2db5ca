package order_status

import (
	"context"
	"encoding/json"
	"time"

	"agent/internal/entities"
	"agent/pkg/logger"
)

// Handler принимает срез текущего состояния заказа, который сервер шлет
// в ответ на join_order_tracking. Закрывает дыру после реконнекта:
// статусы, пропущенные в оффлайне, доезжают одним событием.
type Handler struct {
	log    handlerLogger
	orders Service
}

type statusSnapshot struct {
	OrderID       string `json:"orderId"`
	Status        string `json:"status"`
	StatusMessage string `json:"statusMessage"`
	RiderName     string `json:"riderName"`
	RiderPhone    string `json:"riderPhone"`
	RiderLocation *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"riderLocation"`
	Timestamp time.Time `json:"timestamp"`
}

func New(log handlerLogger, orders Service) *Handler {
	return &Handler{
		log:    log.With(logger.NewField("handler", "order_status")),
		orders: orders,
	}
}

func (h *Handler) Handle(_ context.Context, data json.RawMessage) {
	var snapshot statusSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		h.log.Error("bad status snapshot payload", logger.NewField("error", err))
		return
	}

	occurredAt := snapshot.Timestamp
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	_, ok := h.orders.ApplyStatus(entities.StatusEvent{
		OrderID:    snapshot.OrderID,
		Status:     entities.OrderStatusType(snapshot.Status),
		Message:    snapshot.StatusMessage,
		RiderName:  snapshot.RiderName,
		RiderPhone: snapshot.RiderPhone,
		OccurredAt: occurredAt,
	})
	if !ok {
		h.log.Warn("status snapshot for untracked order ignored",
			logger.NewField("order", snapshot.OrderID),
		)
		return
	}

	if snapshot.RiderLocation != nil {
		h.orders.UpdateRiderLocation(snapshot.OrderID, entities.RiderLocation{
			Point: entities.GeoPoint{
				Latitude:  snapshot.RiderLocation.Lat,
				Longitude: snapshot.RiderLocation.Lng,
			},
			Timestamp: occurredAt,
		})
	}
}
