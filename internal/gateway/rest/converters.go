package rest

import (
	"time"

	"agent/internal/entities"
)

// Wire-представления ответов бэкенда. Идентификаторы приходят как _id,
// координаты как пара lat/lng.

type wireGeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type wireRestaurant struct {
	ID       string       `json:"_id"`
	Name     string       `json:"name"`
	Address  string       `json:"address"`
	Location wireGeoPoint `json:"location"`
}

type wirePerson struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type wireItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type wireAddress struct {
	FullAddress  string  `json:"fullAddress"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Instructions string  `json:"instructions"`
}

type wireRiderLocation struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

type wireOrder struct {
	ID               string               `json:"_id"`
	Status           string               `json:"status"`
	StatusMessage    string               `json:"statusMessage"`
	Restaurant       wireRestaurant       `json:"restaurant"`
	Customer         *wirePerson          `json:"customer"`
	Rider            *wirePerson          `json:"rider"`
	Items            []wireItem           `json:"items"`
	DeliveryAddress  wireAddress          `json:"deliveryAddress"`
	PaymentMethod    string               `json:"paymentMethod"`
	RiderLocation    *wireRiderLocation   `json:"riderLocation"`
	StatusTimestamps map[string]time.Time `json:"statusTimestamps"`
}

type wireOffer struct {
	OrderID            string         `json:"orderId"`
	Restaurant         wireRestaurant `json:"restaurant"`
	DeliveryDistanceKm float64        `json:"deliveryDistanceKm"`
	EstimatedEarnings  float64        `json:"estimatedEarnings"`
	PaymentMethod      string         `json:"paymentMethod"`
	CreatedAt          time.Time      `json:"createdAt"`
}

type wireStats struct {
	TotalDeliveries int64   `json:"totalDeliveries"`
	TotalEarnings   float64 `json:"totalEarnings"`
	TodayEarnings   float64 `json:"todayEarnings"`
	Rating          float64 `json:"rating"`
	RatingCount     int64   `json:"ratingCount"`
	ActiveOrders    int64   `json:"activeOrders"`
}

func toDomainOrders(wire []wireOrder) []entities.Order {
	orders := make([]entities.Order, 0, len(wire))
	for _, w := range wire {
		if order := toDomainOrder(w); order != nil {
			orders = append(orders, *order)
		}
	}
	return orders
}

func toDomainOrder(w wireOrder) *entities.Order {
	if w.ID == "" {
		return nil
	}

	order := &entities.Order{
		ID:            w.ID,
		Status:        entities.OrderStatusType(w.Status),
		StatusMessage: w.StatusMessage,
		Restaurant: entities.RestaurantRef{
			ID:      w.Restaurant.ID,
			Name:    w.Restaurant.Name,
			Address: w.Restaurant.Address,
			Location: entities.GeoPoint{
				Latitude:  w.Restaurant.Location.Lat,
				Longitude: w.Restaurant.Location.Lng,
			},
		},
		PaymentMethod: w.PaymentMethod,
		DeliveryAddress: entities.Address{
			FullAddress:  w.DeliveryAddress.FullAddress,
			Latitude:     w.DeliveryAddress.Lat,
			Longitude:    w.DeliveryAddress.Lng,
			Instructions: w.DeliveryAddress.Instructions,
		},
	}

	if w.Customer != nil {
		order.Customer = &entities.CustomerRef{
			ID:    w.Customer.ID,
			Name:  w.Customer.Name,
			Phone: w.Customer.Phone,
		}
	}
	if w.Rider != nil {
		order.Rider = &entities.RiderRef{
			ID:    w.Rider.ID,
			Name:  w.Rider.Name,
			Phone: w.Rider.Phone,
		}
	}
	if w.RiderLocation != nil {
		order.RiderLocation = &entities.RiderLocation{
			Point: entities.GeoPoint{
				Latitude:  w.RiderLocation.Lat,
				Longitude: w.RiderLocation.Lng,
			},
			Timestamp: w.RiderLocation.Timestamp,
		}
	}

	for _, item := range w.Items {
		order.Items = append(order.Items, entities.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	if len(w.StatusTimestamps) > 0 {
		order.Transitions = make(map[entities.OrderStatusType]time.Time, len(w.StatusTimestamps))
		for status, at := range w.StatusTimestamps {
			order.Transitions[entities.OrderStatusType(status)] = at
		}
	}

	return order
}

func toDomainOffers(wire []wireOffer) []entities.Offer {
	offers := make([]entities.Offer, 0, len(wire))
	for _, w := range wire {
		if w.OrderID == "" {
			continue
		}
		offers = append(offers, entities.Offer{
			OrderID:        w.OrderID,
			RestaurantName: w.Restaurant.Name,
			RestaurantLocation: entities.GeoPoint{
				Latitude:  w.Restaurant.Location.Lat,
				Longitude: w.Restaurant.Location.Lng,
			},
			DeliveryDistanceKm: w.DeliveryDistanceKm,
			EstimatedEarnings:  w.EstimatedEarnings,
			PaymentMethod:      w.PaymentMethod,
			CreatedAt:          w.CreatedAt,
		})
	}
	return offers
}

func toDomainStats(w wireStats) entities.RiderStats {
	return entities.RiderStats{
		TotalDeliveries: w.TotalDeliveries,
		TotalEarnings:   w.TotalEarnings,
		TodayEarnings:   w.TodayEarnings,
		Rating:          w.Rating,
		RatingCount:     w.RatingCount,
		ActiveOrders:    w.ActiveOrders,
	}
}
