package new_order_available

import (
	"context"
	"encoding/json"
	"time"

	"agent/internal/entities"
	"agent/pkg/logger"
)

// Handler кладет броадкаст new_order_available в пул офферов.
// В payload нет контактов клиента и PIN-кодов, сервер шлет только
// витринную проекцию заказа.
type Handler struct {
	log  handlerLogger
	pool Service
}

type newOfferEvent struct {
	OrderID    string `json:"orderId"`
	Restaurant struct {
		Name     string `json:"name"`
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"restaurant"`
	DeliveryDistanceKm float64   `json:"deliveryDistanceKm"`
	EstimatedEarnings  float64   `json:"estimatedEarnings"`
	PaymentMethod      string    `json:"paymentMethod"`
	CreatedAt          time.Time `json:"createdAt"`
}

func New(log handlerLogger, pool Service) *Handler {
	return &Handler{
		log:  log.With(logger.NewField("handler", "new_order_available")),
		pool: pool,
	}
}

func (h *Handler) Handle(_ context.Context, data json.RawMessage) {
	var event newOfferEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.log.Error("bad offer payload", logger.NewField("error", err))
		return
	}

	h.pool.HandleNewOffer(entities.Offer{
		OrderID:        event.OrderID,
		RestaurantName: event.Restaurant.Name,
		RestaurantLocation: entities.GeoPoint{
			Latitude:  event.Restaurant.Location.Lat,
			Longitude: event.Restaurant.Location.Lng,
		},
		DeliveryDistanceKm: event.DeliveryDistanceKm,
		EstimatedEarnings:  event.EstimatedEarnings,
		PaymentMethod:      event.PaymentMethod,
		CreatedAt:          event.CreatedAt,
	})
}
