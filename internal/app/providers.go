package app

import (
	"context"
	"net/http"
	"time"

	"agent/internal/entities"
	restGateway "agent/internal/gateway/rest"
	"agent/internal/handlers/tasks/location_publish"
	"agent/internal/handlers/tasks/offer_cleanup"
	"agent/internal/handlers/tasks/orders_refresh"
	"agent/internal/handlers/tasks/tracking_refresh"
	"agent/internal/lifecycle"
	"agent/internal/location"
	"agent/internal/pin"
	"agent/internal/pkg/config"
	"agent/internal/pool"
	"agent/internal/rooms"
	"agent/internal/socket"
	"agent/pkg/background"
	"agent/pkg/logger"
	"agent/pkg/ttlcache"
)

func provideHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

func provideGateway(client *http.Client, cfg *config.Config) *restGateway.Gateway {
	return restGateway.New(client, cfg.Backend.APIURL, cfg.Backend.AuthToken)
}

func provideOrders() *lifecycle.Store {
	return lifecycle.New()
}

func provideLocationSource(cfg *config.Config) *location.Source {
	return location.NewSource(cfg.Geo.FixMaxAge, cfg.Geo.FixTimeout)
}

func provideSocket(log logger.Logger, cfg *config.Config) *socket.Client {
	client := socket.New(log, socket.Config{URL: cfg.Backend.SocketURL})
	client.SetIdentity(socket.Identity{
		UserID:  cfg.Identity.UserID,
		RiderID: cfg.Identity.RiderID,
	})
	return client
}

func provideOfferCache(cfg *config.Config) *ttlcache.Cache[string, entities.Offer] {
	return ttlcache.New[string, entities.Offer](cfg.Offers.TTL)
}

func provideAlerter(log logger.Logger) *pool.BeepAlerter {
	return pool.NewBeepAlerter(log)
}

func providePool(
	log logger.Logger,
	cfg *config.Config,
	offers *ttlcache.Cache[string, entities.Offer],
	socketClient *socket.Client,
	gateway *restGateway.Gateway,
	source *location.Source,
	orders *lifecycle.Store,
	alerter *pool.BeepAlerter,
) *pool.Pool {
	return pool.New(log, cfg.Identity.RiderID, offers, socketClient, gateway, source, orders, alerter)
}

func providePin(
	log logger.Logger,
	gateway *restGateway.Gateway,
	orders *lifecycle.Store,
	socketClient *socket.Client,
) *pin.Verifier {
	return pin.New(log, gateway, orders, socketClient)
}

func provideRooms(log logger.Logger, socketClient *socket.Client) *rooms.Subscriptions {
	return rooms.New(log, socketClient)
}

func provideOfferCleanupTask(
	log logger.Logger,
	riderPool *pool.Pool,
	cfg *config.Config,
) *offer_cleanup.OfferCleanup {
	return offer_cleanup.NewOfferCleanup(log, riderPool, cfg.Tasks.OfferCleanupInterval)
}

func provideLocationPublishTask(
	log logger.Logger,
	cfg *config.Config,
	riderPool *pool.Pool,
	orders *lifecycle.Store,
	source *location.Source,
	socketClient *socket.Client,
) *location_publish.LocationPublish {
	return location_publish.NewLocationPublish(
		log,
		cfg.Identity.RiderID,
		riderPool,
		orders,
		source,
		socketClient,
		cfg.Tasks.LocationPublishInterval,
	)
}

func provideOrdersRefreshTask(
	log logger.Logger,
	gateway *restGateway.Gateway,
	orders *lifecycle.Store,
	riderPool *pool.Pool,
	source *location.Source,
	cfg *config.Config,
) *orders_refresh.OrdersRefresh {
	return orders_refresh.NewOrdersRefresh(log, cfg.Identity.RiderID, gateway, orders, riderPool, source, cfg.Tasks.OrdersRefreshInterval)
}

func provideTaskList(
	offerCleanupTask *offer_cleanup.OfferCleanup,
	locationPublishTask *location_publish.LocationPublish,
	ordersRefreshTask *orders_refresh.OrdersRefresh,
) []background.Task {
	return []background.Task{
		offerCleanupTask,
		locationPublishTask,
		ordersRefreshTask,
	}
}

func provideTrackingRefreshTask(
	log logger.Logger,
	gateway *restGateway.Gateway,
	orders *lifecycle.Store,
	subscriptions *rooms.Subscriptions,
	cfg *config.Config,
) *tracking_refresh.TrackingRefresh {
	return tracking_refresh.NewTrackingRefresh(log, cfg.Identity.UserID, gateway, orders, subscriptions, cfg.Tasks.OrdersRefreshInterval)
}

func provideTrackerTaskList(
	trackingRefreshTask *tracking_refresh.TrackingRefresh,
) []background.Task {
	return []background.Task{
		trackingRefreshTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
