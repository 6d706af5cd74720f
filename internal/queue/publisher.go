package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	// dialTimeout bounds how long a request waits on an unreachable broker.
	dialTimeout = 2 * time.Second
	// redialAfter is how long publishes fail fast after a failed dial.
	redialAfter = 10 * time.Second
)

// ErrBrokerUnavailable is returned while the publisher waits out
// redialAfter following a failed connection attempt.
var ErrBrokerUnavailable = errors.New("rabbitmq unavailable")

// Publisher publishes ReservationEvents to QueueName over one long-lived
// connection and channel.  A broken connection is replaced on the next
// publish; while the broker is unreachable publishes fail without dialling
// so requests do not each pay the dial timeout.
type Publisher struct {
	url  string
	log  *zap.Logger
	dial func(url string) (*amqp.Connection, error)
	now  func() time.Time

	mu        sync.Mutex
	conn      *amqp.Connection
	ch        *amqp.Channel
	downUntil time.Time
}

// NewPublisher returns a Publisher for the broker at url.  It does not
// connect until the first Publish.
func NewPublisher(url string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{url: url, log: log, dial: dialBroker, now: time.Now}
}

func dialBroker(url string) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
}

// Publish sends ev as a persistent JSON message.  Errors are logged and
// returned so the caller can choose to ignore them.
func (p *Publisher) Publish(ctx context.Context, ev ReservationEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", QueueName, false, false, pub); err != nil {
		p.log.Warn("rabbitmq publish failed", zap.Error(err), zap.String("type", ev.Type))
		p.reset()
		return err
	}
	return nil
}

// channel returns the open channel, connecting first when needed.  p.mu
// must be held.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.reset()
	if p.now().Before(p.downUntil) {
		return nil, ErrBrokerUnavailable
	}

	conn, err := p.dial(p.url)
	if err != nil {
		p.markDown("rabbitmq dial failed", err)
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		p.markDown("rabbitmq channel open failed", err)
		return nil, err
	}
	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		p.markDown("rabbitmq queue declare failed", err)
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) markDown(msg string, err error) {
	p.downUntil = p.now().Add(redialAfter)
	p.log.Warn(msg, zap.Error(err), zap.Duration("retry_in", redialAfter))
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

// Close releases the broker connection.  A later Publish reconnects.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// NopPublisher discards events.  It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ReservationEvent) error { return nil }
