package rider_location_live

import (
	"context"
	"encoding/json"
	"time"

	"agent/internal/entities"
	"agent/pkg/logger"
)

// Handler обновляет живую позицию райдера на отслеживаемом заказе.
// Поток частый, поэтому логируем только на debug.
type Handler struct {
	log    handlerLogger
	orders Service
}

type locationEvent struct {
	OrderID  string `json:"orderId"`
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

func New(log handlerLogger, orders Service) *Handler {
	return &Handler{
		log:    log.With(logger.NewField("handler", "rider_location_live")),
		orders: orders,
	}
}

func (h *Handler) Handle(_ context.Context, data json.RawMessage) {
	var event locationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.log.Error("bad location payload", logger.NewField("error", err))
		return
	}

	at := event.Timestamp
	if at.IsZero() {
		at = time.Now()
	}

	updated := h.orders.UpdateRiderLocation(event.OrderID, entities.RiderLocation{
		Point: entities.GeoPoint{
			Latitude:  event.Location.Lat,
			Longitude: event.Location.Lng,
		},
		Timestamp: at,
	})
	if updated {
		h.log.Debug("rider location updated", logger.NewField("order", event.OrderID))
	}
}
