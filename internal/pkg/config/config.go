package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		OfferCleanupInterval    time.Duration
		LocationPublishInterval time.Duration
		OrdersRefreshInterval   time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Backend struct {
		APIURL    string
		SocketURL string
		AuthToken string
	}

	Identity struct {
		UserID  string
		RiderID string
	}

	Geo struct {
		FixTimeout time.Duration
		FixMaxAge  time.Duration
	}

	Offers struct {
		TTL          time.Duration
		SnapshotPath string
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Backend  Backend
		Identity Identity
		Geo      Geo
		Offers   Offers
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	offerCleanupInterval, err := osGetEnvDuration("BACKGROUND_OFFER_CLEANUP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	locationPublishInterval, err := osGetEnvDuration("BACKGROUND_LOCATION_PUBLISH_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	ordersRefreshInterval, err := osGetEnvDuration("BACKGROUND_ORDERS_REFRESH_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	geoFixTimeout, err := osGetEnvDuration("GEO_FIX_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	geoFixMaxAge, err := osGetEnvDuration("GEO_FIX_MAX_AGE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	offerTTL, err := osGetEnvDuration("OFFER_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			OfferCleanupInterval:    offerCleanupInterval,
			LocationPublishInterval: locationPublishInterval,
			OrdersRefreshInterval:   ordersRefreshInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Backend: Backend{
			APIURL:    os.Getenv("BACKEND_API_URL"),
			SocketURL: os.Getenv("BACKEND_WS_URL"),
			AuthToken: os.Getenv("BACKEND_AUTH_TOKEN"),
		},
		Identity: Identity{
			UserID:  os.Getenv("USER_ID"),
			RiderID: os.Getenv("RIDER_ID"),
		},
		Geo: Geo{
			FixTimeout: geoFixTimeout,
			FixMaxAge:  geoFixMaxAge,
		},
		Offers: Offers{
			TTL:          offerTTL,
			SnapshotPath: os.Getenv("OFFER_SNAPSHOT_PATH"),
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Backend.APIURL == "" {
		return errors.New("BACKEND_API_URL is required")
	}
	if cfg.Backend.SocketURL == "" {
		return errors.New("BACKEND_WS_URL is required")
	}
	if cfg.Backend.AuthToken == "" {
		return errors.New("BACKEND_AUTH_TOKEN is required")
	}

	if cfg.Identity.UserID == "" && cfg.Identity.RiderID == "" {
		return errors.New("USER_ID or RIDER_ID is required")
	}

	if cfg.Tasks.OfferCleanupInterval == time.Duration(0) {
		return errors.New("BACKGROUND_OFFER_CLEANUP_INTERVAL is required")
	}
	if cfg.Tasks.LocationPublishInterval == time.Duration(0) {
		return errors.New("BACKGROUND_LOCATION_PUBLISH_INTERVAL is required")
	}
	if cfg.Tasks.OrdersRefreshInterval == time.Duration(0) {
		return errors.New("BACKGROUND_ORDERS_REFRESH_INTERVAL is required")
	}

	if cfg.Geo.FixTimeout == time.Duration(0) {
		return errors.New("GEO_FIX_TIMEOUT is required")
	}
	if cfg.Geo.FixMaxAge == time.Duration(0) {
		return errors.New("GEO_FIX_MAX_AGE is required")
	}

	if cfg.Offers.TTL == time.Duration(0) {
		return errors.New("OFFER_TTL is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
