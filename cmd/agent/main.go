package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "agent/internal/app"
	"agent/internal/handlers/rest/availability_put"
	"agent/internal/handlers/rest/healthcheck_head"
	"agent/internal/handlers/rest/location_post"
	"agent/internal/handlers/rest/offers_get"
	"agent/internal/handlers/rest/order_accept_post"
	"agent/internal/handlers/rest/order_get"
	"agent/internal/handlers/rest/orders_get"
	"agent/internal/handlers/rest/pin_delivery_post"
	"agent/internal/handlers/rest/pin_pickup_post"
	"agent/internal/handlers/rest/ping_get"
	"agent/internal/handlers/rest/stats_get"
	"agent/internal/handlers/stream/new_order_available"
	"agent/internal/handlers/stream/order_status"
	"agent/internal/handlers/stream/order_status_changed"
	"agent/internal/handlers/stream/order_taken"
	"agent/internal/pkg/config"
	"agent/internal/pkg/dotenv"
	metrics_system "agent/internal/pkg/metrics"
	"agent/internal/pkg/middlewares/graceful_shutdown"
	"agent/internal/pkg/middlewares/metrics"
	"agent/internal/pkg/middlewares/rate_limiter"
	"agent/internal/pkg/middlewares/timeout"
	"agent/internal/socket"
	"agent/pkg/logger"
	"agent/pkg/logger/zap_adapter"
	"agent/pkg/token_bucket"
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

	mainLog.Info("starting rider agent")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	businessApp, err := application.InitializeApplication(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	restoreOfferSnapshot(runLog, businessApp, cfg.Offers.SnapshotPath)
	registerStreamHandlers(log, businessApp)

	go func() {
		if err := businessApp.Socket.Run(ctx); err != nil {
			runLog.Error("socket loop stopped", logger.NewField("error", err))
		}
	}()

	metrics_system.StartSystemMetricsCollector()

	// ongoingCtx отменяется только после server.Shutdown(), чтобы
	// in-flight запросы дожили до конца.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg),
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

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr:
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	persistOfferSnapshot(runLog, businessApp, cfg.Offers.SnapshotPath)

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

// registerStreamHandlers подписывает обработчики socket-событий.
// order_status_changed, order_status_update и order_accepted - синонимы
// одного события, различаются только именем на проводе.
func registerStreamHandlers(log logger.Logger, app *application.Application) {
	statusHandler := order_status_changed.New(log, app.Orders)
	app.Socket.Register(socket.EventOrderStatusChanged, statusHandler.Handle)
	app.Socket.Register(socket.EventOrderStatusUpdate, statusHandler.Handle)
	app.Socket.Register(socket.EventOrderAccepted, statusHandler.Handle)

	offerHandler := new_order_available.New(log, app.Pool)
	app.Socket.Register(socket.EventNewOrderAvailable, offerHandler.Handle)

	takenHandler := order_taken.New(log, app.Pool)
	app.Socket.Register(socket.EventOrderTaken, takenHandler.Handle)

	snapshotHandler := order_status.New(log, app.Orders)
	app.Socket.Register(socket.EventOrderStatus, snapshotHandler.Handle)

	app.Socket.OnReady(func(ctx context.Context) {
		app.Rooms.Resubscribe(ctx)
		app.Pool.Rejoin(ctx)
	})
}

func restoreOfferSnapshot(log logger.Logger, app *application.Application, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("offer snapshot not restored", logger.NewField("error", err))
		}
		return
	}

	if err := app.OfferCache.Restore(data); err != nil {
		log.Warn("offer snapshot corrupted, starting empty", logger.NewField("error", err))
		return
	}

	// Протухшие за время простоя офферы выметаем сразу.
	app.Pool.Sweep()
	log.Info("offer snapshot restored", logger.NewField("path", path))
}

func persistOfferSnapshot(log logger.Logger, app *application.Application, path string) {
	if path == "" {
		return
	}

	data, err := app.OfferCache.Snapshot()
	if err != nil {
		log.Warn("offer snapshot not persisted", logger.NewField("error", err))
		return
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.Warn("offer snapshot not persisted", logger.NewField("error", err))
		return
	}
	log.Info("offer snapshot persisted", logger.NewField("path", path))
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg *config.Config) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.Server.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.Server.RateLimiterQPS, float64(cfg.Server.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/offers", offers_get.New(log, app.Pool)).Methods("GET")
	router.Handle("/orders", orders_get.New(log, app.Orders)).Methods("GET")
	router.Handle("/orders/{id}", order_get.New(log, app.Orders)).Methods("GET")
	router.Handle("/orders/{id}/accept", order_accept_post.New(log, app.Pool)).Methods("POST")
	router.Handle("/orders/{id}/pickup-pin", pin_pickup_post.New(log, app.Pin)).Methods("POST")
	router.Handle("/orders/{id}/delivery-pin", pin_delivery_post.New(log, app.Pin)).Methods("POST")

	router.Handle("/availability", availability_put.New(log, app.Pool)).Methods("PUT")
	router.Handle("/location", location_post.New(log, app.Location)).Methods("POST")
	router.Handle("/stats", stats_get.New(log, app.Gateway)).Methods("GET")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
