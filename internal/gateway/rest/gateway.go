package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"agent/internal/entities"
	retrierconfig "agent/pkg/retrier"
	"agent/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "delivery-backend"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// Gateway - REST-клиент бэкенда доставки. Авторизация через Bearer-токен,
// ретраи только на 429/5xx и сетевых ошибках.
type Gateway struct {
	client    doer
	retrier   retrier
	baseURL   string
	authToken string
}

func New(client doer, baseURL, authToken string) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		client:    client,
		retrier:   backoff_adapter.New(retryConfig),
		baseURL:   baseURL,
		authToken: authToken,
	}
}

func (g *Gateway) CustomerOrders(ctx context.Context, customerID string) ([]entities.Order, error) {
	var wire []wireOrder

	err := g.executeWithMetrics(ctx, "CustomerOrders", func(ctx context.Context) error {
		return g.doJSON(ctx, http.MethodGet, "/api/orders/customer/"+url.PathEscape(customerID), nil, &wire)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway rest, customer orders: %w", err)
	}

	return toDomainOrders(wire), nil
}

func (g *Gateway) RiderOrders(ctx context.Context, riderID string) ([]entities.Order, error) {
	var wire []wireOrder

	err := g.executeWithMetrics(ctx, "RiderOrders", func(ctx context.Context) error {
		return g.doJSON(ctx, http.MethodGet, "/api/orders/rider/"+url.PathEscape(riderID), nil, &wire)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway rest, rider orders: %w", err)
	}

	return toDomainOrders(wire), nil
}

func (g *Gateway) AvailableOrders(ctx context.Context, point entities.GeoPoint) ([]entities.Offer, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(point.Longitude, 'f', -1, 64))

	var wire []wireOffer

	err := g.executeWithMetrics(ctx, "AvailableOrders", func(ctx context.Context) error {
		return g.doJSON(ctx, http.MethodGet, "/api/orders/available?"+query.Encode(), nil, &wire)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway rest, available orders: %w", err)
	}

	return toDomainOffers(wire), nil
}

func (g *Gateway) Order(ctx context.Context, orderID string) (*entities.Order, error) {
	var wire wireOrder

	err := g.executeWithMetrics(ctx, "Order", func(ctx context.Context) error {
		return g.doJSON(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(orderID), nil, &wire)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway rest, get order: %s: %w", orderID, err)
	}

	order := toDomainOrder(wire)
	if order == nil {
		return nil, fmt.Errorf("gateway rest, get order: %s: %w", orderID, ErrNotFound)
	}
	return order, nil
}

func (g *Gateway) VerifyPickupPin(ctx context.Context, orderID, pin string) error {
	return g.verifyPin(ctx, "VerifyPickupPin", orderID, "verify-pickup-pin", pin)
}

func (g *Gateway) VerifyDeliveryPin(ctx context.Context, orderID, pin string) error {
	return g.verifyPin(ctx, "VerifyDeliveryPin", orderID, "verify-delivery-pin", pin)
}

func (g *Gateway) verifyPin(ctx context.Context, method, orderID, action, pin string) error {
	body := map[string]string{"pin": pin}

	err := g.executeWithMetrics(ctx, method, func(ctx context.Context) error {
		path := "/api/orders/" + url.PathEscape(orderID) + "/" + action
		return g.doJSON(ctx, http.MethodPost, path, body, nil)
	})
	if err != nil {
		return fmt.Errorf("gateway rest, %s: %s: %w", action, orderID, err)
	}
	return nil
}

func (g *Gateway) SetAvailability(ctx context.Context, riderID string, available bool) error {
	body := map[string]any{
		"riderId":     riderID,
		"isAvailable": available,
	}

	err := g.executeWithMetrics(ctx, "SetAvailability", func(ctx context.Context) error {
		return g.doJSON(ctx, http.MethodPatch, "/api/rider/availability", body, nil)
	})
	if err != nil {
		return fmt.Errorf("gateway rest, set availability: %w", err)
	}
	return nil
}

// Stats не принимает riderID: бэкенд определяет райдера по Bearer-токену.
func (g *Gateway) Stats(ctx context.Context) (entities.RiderStats, error) {
	var wire wireStats

	err := g.executeWithMetrics(ctx, "Stats", func(ctx context.Context) error {
		return g.doJSON(ctx, http.MethodGet, "/api/rider/stats", nil, &wire)
	})
	if err != nil {
		return entities.RiderStats{}, fmt.Errorf("gateway rest, rider stats: %w", err)
	}

	return toDomainStats(wire), nil
}

func (g *Gateway) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.authToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := readErrorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrPinRejected, message)
	default:
		return &statusError{code: resp.StatusCode, message: message}
	}
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}

// isRetryable: сетевые ошибки и 429/5xx. Ошибки со смысловым кодом
// (401, 404, 400) ретраить бесполезно.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrPinRejected):
		return false
	}

	// Сетевая ошибка транспорта.
	return true
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	code := httpCode(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, code).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, code).Inc()
	}

	return err
}

func httpCode(err error) string {
	if err == nil {
		return "200"
	}

	var se *statusError
	switch {
	case errors.As(err, &se):
		return strconv.Itoa(se.code)
	case errors.Is(err, ErrUnauthorized):
		return "401"
	case errors.Is(err, ErrNotFound):
		return "404"
	case errors.Is(err, ErrPinRejected):
		return "400"
	default:
		return "transport_error"
	}
}
