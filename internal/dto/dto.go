// Package dto описывает тела запросов и ответов локального HTTP API
// агента. Валидация запросов через go-playground/validator.
package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate проверяет структуру запроса по validate-тегам.
func Validate(s any) error {
	return validate.Struct(s)
}

type PinRequest struct {
	Pin string `json:"pin" validate:"required"`
}

type AvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type LocationRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

type Offer struct {
	OrderID            string    `json:"orderId"`
	RestaurantName     string    `json:"restaurantName"`
	RestaurantLat      float64   `json:"restaurantLat"`
	RestaurantLng      float64   `json:"restaurantLng"`
	DeliveryDistanceKm float64   `json:"deliveryDistanceKm"`
	EstimatedEarnings  float64   `json:"estimatedEarnings"`
	PaymentMethod      string    `json:"paymentMethod"`
	CreatedAt          time.Time `json:"createdAt"`
}

type TimelineStep struct {
	Status    string     `json:"status"`
	Completed bool       `json:"completed"`
	At        *time.Time `json:"at,omitempty"`
}

type RiderLocation struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

type Rider struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	ID              string         `json:"id"`
	Status          string         `json:"status"`
	StatusMessage   string         `json:"statusMessage,omitempty"`
	RestaurantName  string         `json:"restaurantName"`
	DeliveryAddress string         `json:"deliveryAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	Items           []OrderItem    `json:"items,omitempty"`
	Rider           *Rider         `json:"rider,omitempty"`
	RiderLocation   *RiderLocation `json:"riderLocation,omitempty"`
	Timeline        []TimelineStep `json:"timeline"`
}

type Stats struct {
	TotalDeliveries int64   `json:"totalDeliveries"`
	TotalEarnings   float64 `json:"totalEarnings"`
	TodayEarnings   float64 `json:"todayEarnings"`
	Rating          float64 `json:"rating"`
	RatingCount     int64   `json:"ratingCount"`
	ActiveOrders    int64   `json:"activeOrders"`
}

type Error struct {
	Message string `json:"message"`
}

type PingResponse struct {
	Message string `json:"message"`
}
