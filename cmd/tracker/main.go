package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "agent/internal/app"
	"agent/internal/handlers/rest/healthcheck_head"
	"agent/internal/handlers/rest/order_get"
	"agent/internal/handlers/rest/orders_get"
	"agent/internal/handlers/rest/ping_get"
	"agent/internal/handlers/stream/order_status"
	"agent/internal/handlers/stream/order_status_changed"
	"agent/internal/handlers/stream/rider_location_live"
	"agent/internal/pkg/config"
	"agent/internal/pkg/dotenv"
	"agent/internal/socket"
	"agent/pkg/logger"
	"agent/pkg/logger/zap_adapter"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting order tracker")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file",
				logger.NewField("error", err),
			)
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config",
			logger.NewField("error", err),
		)
		return
	}

	err = run(context.Background(), appLogger, cfg)
	if err != nil {
		mainLog.Error("application failed",
			logger.NewField("error", err),
		)
		return
	}
}

func run(ctx context.Context, log logger.Logger, cfg *config.Config) error {
	const (
		shutdownPeriod      = 15 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	businessApp, err := application.InitializeTrackerApp(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	registerStreamHandlers(log, businessApp)

	go func() {
		if err := businessApp.Socket.Run(ctx); err != nil {
			runLog.Error("socket loop stopped", logger.NewField("error", err))
		}
	}()

	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(log, &isShuttingDown, businessApp),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		runLog.Error("server shutdown error", logger.NewField("error", err))
	}

	stopOngoingGracefully()
	runLog.Info("Tracker stopped")
	return nil
}

// registerStreamHandlers подписывает обработчики socket-событий трекера.
func registerStreamHandlers(log logger.Logger, app *application.TrackerApp) {
	statusHandler := order_status_changed.New(log, app.Orders)
	app.Socket.Register(socket.EventOrderStatusChanged, statusHandler.Handle)
	app.Socket.Register(socket.EventOrderStatusUpdate, statusHandler.Handle)
	app.Socket.Register(socket.EventOrderAccepted, statusHandler.Handle)

	snapshotHandler := order_status.New(log, app.Orders)
	app.Socket.Register(socket.EventOrderStatus, snapshotHandler.Handle)

	locationHandler := rider_location_live.New(log, app.Orders)
	app.Socket.Register(socket.EventRiderLocationLive, locationHandler.Handle)

	app.Socket.OnReady(func(ctx context.Context) {
		app.Rooms.Resubscribe(ctx)
	})
}

func initRouter(log logger.Logger, isShuttingDown *atomic.Bool, app *application.TrackerApp) http.Handler {
	router := mux.NewRouter()

	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/orders", orders_get.New(log, app.Orders)).Methods("GET")
	router.Handle("/orders/{id}", order_get.New(log, app.Orders)).Methods("GET")

	return router
}
