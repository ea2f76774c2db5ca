package entities

import "time"

type Order struct {
	ID              string
	Status          OrderStatusType
	StatusMessage   string
	Restaurant      RestaurantRef
	Customer        *CustomerRef
	Rider           *RiderRef
	Items           []OrderItem
	DeliveryAddress Address
	PaymentMethod   string
	RiderLocation   *RiderLocation
	// Transitions хранит время первого перехода в каждый статус (first-write-wins).
	Transitions map[OrderStatusType]time.Time
	Provenance  WriteProvenance
}

type OrderItem struct {
	Name     string
	Price    float64
	Quantity int
}

type RestaurantRef struct {
	ID       string
	Name     string
	Address  string
	Location GeoPoint
}

type CustomerRef struct {
	ID    string
	Name  string
	Phone string
}

type RiderRef struct {
	ID    string
	Name  string
	Phone string
}

type Address struct {
	FullAddress  string
	Latitude     float64
	Longitude    float64
	Instructions string
}

type RiderLocation struct {
	Point     GeoPoint
	Timestamp time.Time
}

// WriteProvenance помечает источник последней записи в кэш заказа.
// Подтвержденная запись (событие или REST) всегда перетирает оптимистичную.
type WriteProvenance string

const (
	WriteOptimistic WriteProvenance = "optimistic"
	WriteConfirmed  WriteProvenance = "confirmed"
)

type OrderStatusType string

const (
	OrderPending       OrderStatusType = "pending"
	OrderAccepted      OrderStatusType = "accepted"
	OrderAwaitingRider OrderStatusType = "awaiting_rider"
	OrderRiderAssigned OrderStatusType = "rider_assigned"
	OrderPreparing     OrderStatusType = "preparing"
	OrderReady         OrderStatusType = "ready"
	OrderPickedUp      OrderStatusType = "picked_up"
	OrderOnTheWay      OrderStatusType = "on_the_way"
	OrderDelivered     OrderStatusType = "delivered"
	OrderCancelled     OrderStatusType = "cancelled"
)

// StatusOrdering - единственный источник истины для прогресса заказа.
// Порядок фиксированный, cancelled в линейку не входит.
var StatusOrdering = []OrderStatusType{
	OrderPending,
	OrderAccepted,
	OrderAwaitingRider,
	OrderRiderAssigned,
	OrderPreparing,
	OrderReady,
	OrderPickedUp,
	OrderOnTheWay,
	OrderDelivered,
}

func (s OrderStatusType) String() string {
	return string(s)
}

// Rank возвращает позицию статуса в StatusOrdering, -1 для cancelled
// и любых неизвестных статусов (они сохраняются дословно, но прогресс не двигают).
func (s OrderStatusType) Rank() int {
	for i, status := range StatusOrdering {
		if status == s {
			return i
		}
	}
	return -1
}

func (s OrderStatusType) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// AtLeast true если статус достиг или прошел указанную точку линейки.
func (s OrderStatusType) AtLeast(other OrderStatusType) bool {
	rank, otherRank := s.Rank(), other.Rank()
	return rank >= 0 && otherRank >= 0 && rank >= otherRank
}

// OrderPatch - локальная оптимистичная правка полей заказа.
// Заполненные поля перетирают кэш, nil-поля не трогаются.
type OrderPatch struct {
	Status        *OrderStatusType
	StatusMessage *string
	Rider         *RiderRef
	RiderLocation *RiderLocation
}

// StatusEvent - входящее событие смены статуса
// (order_status_changed / order_status_update / order_accepted).
type StatusEvent struct {
	OrderID    string
	Status     OrderStatusType
	Message    string
	RiderName  string
	RiderPhone string
	OccurredAt time.Time
}
