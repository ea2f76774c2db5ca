//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"agent/internal/pkg/config"
	"agent/pkg/logger"
)

// InitializeApplication для райдер-агента (cmd/agent)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideHTTPClient,
		provideGateway,
		provideOrders,
		provideLocationSource,
		provideSocket,
		provideOfferCache,
		provideAlerter,
		providePool,
		providePin,
		provideRooms,

		provideOfferCleanupTask,
		provideLocationPublishTask,
		provideOrdersRefreshTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}

// InitializeTrackerApp для customer-трекера (cmd/tracker)
func InitializeTrackerApp(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
) (*TrackerApp, error) {
	wire.Build(
		provideHTTPClient,
		provideGateway,
		provideOrders,
		provideSocket,
		provideRooms,

		provideTrackingRefreshTask,
		provideTrackerTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(TrackerApp), "*"),
	)
	return &TrackerApp{}, nil
}
