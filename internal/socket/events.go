package socket

import "encoding/json"

// Имена событий протокола. Исходящие - интенты клиента,
// входящие - авторитетные уведомления бекенда.
const (
	EventAuthenticate        = "authenticate"
	EventRiderAuthenticate   = "rider_authenticate"
	EventJoinOrderTracking   = "join_order_tracking"
	EventLeaveOrderTracking  = "leave_order_tracking"
	EventRiderJoinPool       = "rider_join_pool"
	EventRiderLeavePool      = "rider_leave_pool"
	EventRiderLocationUpdate = "rider_location_update"
	EventRiderAcceptOrder    = "rider_accept_order"
	EventUpdateOrderStatus   = "update_order_status"

	EventNewOrderAvailable = "new_order_available"
	EventOrderTaken        = "order_taken"
	EventOrderAccepted     = "order_accepted"
	// order_status_changed и order_status_update - алиасы одного события,
	// бекенд шлет оба имени; обрабатываются идентично.
	EventOrderStatusChanged = "order_status_changed"
	EventOrderStatusUpdate  = "order_status_update"
	EventRiderLocationLive  = "rider_location_live"
	EventOrderStatus        = "order_status"
)

// Envelope - рамка сообщения: имя события + JSON-полезная нагрузка.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AuthenticatePayload struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}

type RiderAuthenticatePayload struct {
	RiderID   string `json:"riderId"`
	SessionID string `json:"sessionId"`
}

type JoinOrderTrackingPayload struct {
	OrderID string `json:"orderId"`
}

type LeaveOrderTrackingPayload struct {
	OrderID string `json:"orderId"`
}

type RiderJoinPoolPayload struct {
	RiderID     string      `json:"riderId"`
	Coordinates Coordinates `json:"coordinates"`
}

type RiderLeavePoolPayload struct {
	RiderID string `json:"riderId"`
}

type RiderLocationUpdatePayload struct {
	RiderID     string      `json:"riderId"`
	Coordinates Coordinates `json:"coordinates"`
}

type RiderAcceptOrderPayload struct {
	OrderID string `json:"orderId"`
	RiderID string `json:"riderId"`
}

type UpdateOrderStatusPayload struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}
