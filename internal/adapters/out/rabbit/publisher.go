// Package rabbit publishes order lifecycle events to RabbitMQ. The publisher
// owns one connection and one channel, watches for broker-initiated closes,
// and re-dials in the background so a broker restart does not take the
// service down with it.
package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrNotConnected is returned by Publish while the broker link is down.
// Callers fail fast and retry later; the outbox relay treats it like any
// other dispatch failure.
var ErrNotConnected = errors.New("broker is not connected")

// ConnectionState tracks the broker link lifecycle.
type ConnectionState int32

const (
	// Disconnected means no usable channel exists.
	Disconnected ConnectionState = iota
	// Connecting means a dial attempt is in flight.
	Connecting
	// Connected means the channel is open and the exchange is declared.
	Connected
)

// String returns the lowercase state name for logging.
func (s ConnectionState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Exchange is the durable topic exchange all lifecycle events go through.
const Exchange = "order_events"

// Config holds broker connection settings.
type Config struct {
	URL        string
	RetryCount int
	RetryDelay time.Duration
}

// envelope is the wire format wrapping every published event.
type envelope struct {
	MessageID   string          `json:"messageId"`
	MessageType string          `json:"messageType"`
	Message     json.RawMessage `json:"message"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func newEnvelope(messageType string, payload json.RawMessage) envelope {
	return envelope{
		MessageID:   uuid.NewString(),
		MessageType: messageType,
		Message:     payload,
		CreatedAt:   time.Now().UTC(),
	}
}

// Publisher implements the EventPublisher port over amqp091.
type Publisher struct {
	cfg    Config
	logger *slog.Logger

	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	state atomic.Int32

	done chan struct{}
}

// NewPublisher creates a publisher in the Disconnected state.
// Call Connect before publishing.
func NewPublisher(cfg Config, logger *slog.Logger) *Publisher {
	return &Publisher{
		cfg:    cfg,
		logger: logger.With("component", "rabbit"),
		done:   make(chan struct{}),
	}
}

// State reports the current link state.
func (p *Publisher) State() ConnectionState {
	return ConnectionState(p.state.Load())
}

// Connect dials the broker with a bounded retry loop. The broker routinely
// comes up after the service in containerized deployments, so startup waits
// out RetryCount attempts before giving up.
func (p *Publisher) Connect(ctx context.Context) error {
	attempts := p.cfg.RetryCount
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}

		if err = p.dial(); err == nil {
			return nil
		}

		p.logger.Warn("broker connection failed",
			"attempt", attempt,
			"of", attempts,
			"error", err,
		)

		if attempt < attempts {
			select {
			case <-time.After(p.cfg.RetryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("broker unreachable after %d attempts: %w", attempts, err)
}

// dial opens the connection and channel, declares the exchange, and installs
// the close watcher. Holds the lock for the whole handshake so Publish never
// observes a half-built channel.
func (p *Publisher) dial() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Store(int32(Connecting))

	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		p.state.Store(int32(Disconnected))
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		p.state.Store(int32(Disconnected))
		return err
	}

	err = ch.ExchangeDeclare(
		Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = conn.Close()
		p.state.Store(int32(Disconnected))
		return err
	}

	p.conn = conn
	p.ch = ch
	p.state.Store(int32(Connected))
	p.logger.Info("broker connected", "exchange", Exchange)

	go p.watch(conn.NotifyClose(make(chan *amqp.Error, 1)))
	return nil
}

// watch invalidates the channel when the broker closes the connection and
// re-dials in the background until the link is back or the publisher closes.
func (p *Publisher) watch(closed <-chan *amqp.Error) {
	reason, ok := <-closed
	if !ok {
		// graceful Close, nothing to recover
		return
	}

	p.mu.Lock()
	p.conn = nil
	p.ch = nil
	p.state.Store(int32(Disconnected))
	p.mu.Unlock()

	p.logger.Warn("broker connection lost", "reason", reason)

	for {
		select {
		case <-p.done:
			return
		case <-time.After(p.cfg.RetryDelay):
		}

		if err := p.dial(); err == nil {
			return
		}
		p.logger.Warn("broker reconnect failed")
	}
}

// Publish sends one persistent message to the topic exchange. It fails fast
// with ErrNotConnected while the link is down instead of blocking the caller.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload json.RawMessage) error {
	p.mu.Lock()
	ch := p.ch
	p.mu.Unlock()

	if ch == nil || p.State() != Connected {
		return ErrNotConnected
	}

	body, err := json.Marshal(newEnvelope(routingKey, payload))
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	return nil
}

// Close shuts the broker link down and stops any reconnect loop.
func (p *Publisher) Close() error {
	close(p.done)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Store(int32(Disconnected))
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		p.ch = nil
		return err
	}

	return nil
}
