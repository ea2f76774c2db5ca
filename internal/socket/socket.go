package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"agent/pkg/logger"
	retrierconfig "agent/pkg/retrier"
	"agent/pkg/retrier/backoff_adapter"
)

const (
	defaultWriteTimeout   = 10 * time.Second
	defaultOutboundBuffer = 256

	reconnectInitialInterval = 1 * time.Second
	reconnectMaxInterval     = 30 * time.Second
	reconnectRandomization   = 0.5
	reconnectMultiplier      = 2
)

type Config struct {
	URL            string
	WriteTimeout   time.Duration
	OutboundBuffer int
}

// Identity - кто мы на этом соединении. Транспорт аутентификацию между
// реконнектами не хранит, поэтому handshake повторяется на каждом коннекте.
type Identity struct {
	UserID  string
	RiderID string
}

// Client владеет единственным долгоживущим двунаправленным соединением.
// Входящие события диспатчатся последовательно из одной горутины,
// исходящие уходят через буферизованный канал (fire-and-forget).
type Client struct {
	log       handlerLogger
	url       string
	sessionID string

	writeTimeout time.Duration

	mu       sync.RWMutex
	identity Identity
	handlers map[string][]HandlerFunc
	onReady  []func(ctx context.Context)

	outbound chan Envelope

	connMu sync.Mutex
	isUp   bool
}

func New(log handlerLogger, cfg Config) *Client {
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	buffer := cfg.OutboundBuffer
	if buffer <= 0 {
		buffer = defaultOutboundBuffer
	}

	return &Client{
		log:          log.With(logger.NewField("component", "socket")),
		url:          cfg.URL,
		sessionID:    uuid.NewString(),
		writeTimeout: writeTimeout,
		handlers:     make(map[string][]HandlerFunc),
		outbound:     make(chan Envelope, buffer),
	}
}

// Register подписывает обработчик на событие. Вызывается до Run.
func (c *Client) Register(event string, fn HandlerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], fn)
}

// OnReady регистрирует хук, выполняемый после каждой успешной
// аутентификации: сервер не помнит комнаты прошлого соединения,
// подписки нужно пересобирать заново.
func (c *Client) OnReady(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReady = append(c.onReady, fn)
}

// SetIdentity задает личность. Если соединение уже установлено,
// аутентификация переотправляется немедленно: коннект до резолва
// личности допустим, но handshake обязан догнать.
func (c *Client) SetIdentity(identity Identity) {
	c.mu.Lock()
	c.identity = identity
	c.mu.Unlock()

	if c.Connected() {
		c.authenticate()
	}
}

func (c *Client) Connected() bool {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.isUp
}

// Emit ставит событие в исходящую очередь. Не блокирует: при
// переполненном буфере или ошибке маршалинга событие теряется с
// варнингом - доставка интентов best-effort, ресинк догонит.
func (c *Client) Emit(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		EmitDroppedTotal.WithLabelValues(event).Inc()
		return fmt.Errorf("marshal %s payload: %w", event, err)
	}

	select {
	case c.outbound <- Envelope{Event: event, Data: data}:
		return nil
	default:
		EmitDroppedTotal.WithLabelValues(event).Inc()
		c.log.Warn("outbound buffer full, event dropped",
			logger.NewField("event", event),
		)
		return ErrOutboundBufferFull
	}
}

// Run держит соединение до отмены контекста: дозвон с экспоненциальным
// бэкоффом, handshake, сериализованный read-loop, реконнект при обрыве.
func (c *Client) Run(ctx context.Context) error {
	for {
		conn, err := c.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("socket dial: %w", err)
		}

		ConnectsTotal.Inc()
		c.setUp(true)
		c.log.Info("socket connected",
			logger.NewField("url", c.url),
			logger.NewField("session", c.sessionID),
		)

		c.authenticate()
		for _, fn := range c.readyHooks() {
			fn(ctx)
		}

		c.serve(ctx, conn)

		c.setUp(false)
		DisconnectsTotal.Inc()

		if ctx.Err() != nil {
			return nil
		}
		c.log.Warn("socket disconnected, reconnecting")
	}
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	retryConfig := retrierconfig.Config{
		InitialInterval: reconnectInitialInterval,
		MaxInterval:     reconnectMaxInterval,
		MaxElapsedTime:  0, // дозваниваемся пока жив контекст
		Randomization:   reconnectRandomization,
		Multiplier:      reconnectMultiplier,
		ShouldRetry:     nil,
	}

	retrier := backoff_adapter.New(retryConfig)

	var conn *websocket.Conn
	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		c.log.With(
			logger.NewField("attempt", attempt),
		).Info("attempting socket connection")

		dialed, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			return err
		}
		conn = dialed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// serve гоняет writer-горутину и read-loop до первого сбоя.
func (c *Client) serve(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case env := <-c.outbound:
				deadline := time.Now().Add(c.writeTimeout)
				if err := conn.SetWriteDeadline(deadline); err != nil {
					return
				}
				if err := conn.WriteJSON(env); err != nil {
					c.log.Warn("socket write failed",
						logger.NewField("event", env.Event),
						logger.NewField("error", err),
					)
					_ = conn.Close()
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				_ = conn.Close()
				return
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				c.log.Warn("socket read failed",
					logger.NewField("error", err),
				)
			}
			_ = conn.Close()
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.log.Warn("bad inbound frame",
				logger.NewField("error", err),
			)
			continue
		}

		c.dispatch(ctx, env)
	}
}

// dispatch вызывает обработчики события один за другим. Паника в
// обработчике гасится здесь: ничто не пересекает границу event-loop.
func (c *Client) dispatch(ctx context.Context, env Envelope) {
	EventsInTotal.WithLabelValues(env.Event).Inc()

	c.mu.RLock()
	handlers := c.handlers[env.Event]
	c.mu.RUnlock()

	for _, fn := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.log.Error("event handler panic",
						logger.NewField("event", env.Event),
						logger.NewField("recover", r),
						logger.NewField("stack", debug.Stack()),
					)
				}
			}()
			fn(ctx, env.Data)
		}()
	}
}

func (c *Client) authenticate() {
	c.mu.RLock()
	identity := c.identity
	c.mu.RUnlock()

	if identity.UserID != "" {
		_ = c.Emit(EventAuthenticate, AuthenticatePayload{
			UserID:    identity.UserID,
			SessionID: c.sessionID,
		})
	}
	if identity.RiderID != "" {
		_ = c.Emit(EventRiderAuthenticate, RiderAuthenticatePayload{
			RiderID:   identity.RiderID,
			SessionID: c.sessionID,
		})
	}
}

func (c *Client) readyHooks() []func(ctx context.Context) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]func(context.Context){}, c.onReady...)
}

func (c *Client) setUp(up bool) {
	c.connMu.Lock()
	c.isUp = up
	c.connMu.Unlock()
}
