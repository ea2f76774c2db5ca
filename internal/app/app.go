package app

import (
	"agent/internal/entities"
	restGateway "agent/internal/gateway/rest"
	"agent/internal/lifecycle"
	"agent/internal/location"
	"agent/internal/pin"
	"agent/internal/pool"
	"agent/internal/rooms"
	"agent/internal/socket"
	"agent/pkg/background"
	"agent/pkg/ttlcache"
)

// Application - граф зависимостей райдер-агента (cmd/agent).
type Application struct {
	Orders            *lifecycle.Store
	Pool              *pool.Pool
	Pin               *pin.Verifier
	Gateway           *restGateway.Gateway
	Location          *location.Source
	Rooms             *rooms.Subscriptions
	Socket            *socket.Client
	OfferCache        *ttlcache.Cache[string, entities.Offer]
	BackgroundWorkers *background.Worker
}

// TrackerApp - граф зависимостей customer-трекера (cmd/tracker).
type TrackerApp struct {
	Orders            *lifecycle.Store
	Gateway           *restGateway.Gateway
	Rooms             *rooms.Subscriptions
	Socket            *socket.Client
	BackgroundWorkers *background.Worker
}
