package pool

import "errors"

var (
	ErrActiveDeliveries  = errors.New("rider has active deliveries")
	ErrOfferNotAvailable = errors.New("offer is no longer available")
)
