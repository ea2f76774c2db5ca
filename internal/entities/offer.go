package entities

import "time"

// Offer - проекция заказа для пула райдеров до назначения.
// Контактов клиента и PIN-кодов здесь нет и быть не может: поля
// просто отсутствуют в типе, инвариант обеспечен конструкцией.
type Offer struct {
	OrderID            string
	RestaurantName     string
	RestaurantLocation GeoPoint
	DeliveryDistanceKm float64
	EstimatedEarnings  float64
	PaymentMethod      string
	CreatedAt          time.Time
}

type RiderStats struct {
	TotalDeliveries int64
	TotalEarnings   float64
	TodayEarnings   float64
	Rating          float64
	RatingCount     int64
	ActiveOrders    int64
}
