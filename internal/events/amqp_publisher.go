package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPPublisher queues events in memory and delivers them to RabbitMQ from
// a single background goroutine started by Run.  When the buffer is full
// new events are dropped and logged.
type AMQPPublisher struct {
	url     string
	log     *zap.Logger
	pending chan ActivityEvent
	dial    func(url string) (*amqp.Connection, error)
}

// NewAMQPPublisher returns a publisher for the broker at url with room for
// buffer undelivered events.
func NewAMQPPublisher(url string, buffer int, log *zap.Logger) *AMQPPublisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &AMQPPublisher{
		url:     url,
		log:     log,
		pending: make(chan ActivityEvent, buffer),
		dial:    amqp.Dial,
	}
}

// Publish enqueues ev without blocking.
func (p *AMQPPublisher) Publish(_ context.Context, ev ActivityEvent) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	select {
	case p.pending <- ev:
	default:
		p.log.Warn("activity event dropped, buffer full",
			zap.String("type", ev.Type), zap.Uint64("lista_id", ev.ListID))
	}
}

// Run delivers queued events until ctx is cancelled.  A broker connection
// is opened lazily and reopened after any failure.
func (p *AMQPPublisher) Run(ctx context.Context) {
	var (
		conn *amqp.Connection
		ch   *amqp.Channel
	)
	closeAll := func() {
		if ch != nil {
			_ = ch.Close()
			ch = nil
		}
		if conn != nil {
			_ = conn.Close()
			conn = nil
		}
	}
	defer closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-p.pending:
			if ch == nil || ch.IsClosed() {
				closeAll()
				var err error
				conn, ch, err = p.open()
				if err != nil {
					p.log.Error("rabbitmq: connect failed, event dropped",
						zap.String("type", ev.Type), zap.Error(err))
					continue
				}
			}
			if err := publish(ctx, ch, ev); err != nil {
				p.log.Error("rabbitmq: publish failed",
					zap.String("type", ev.Type), zap.Error(err))
				closeAll()
			}
		}
	}
}

func (p *AMQPPublisher) open() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := p.dial(p.url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("channel open: %w", err)
	}
	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("queue declare: %w", err)
	}
	return conn, ch, nil
}

func publish(ctx context.Context, ch *amqp.Channel, ev ActivityEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return ch.PublishWithContext(ctx,
		"",        // default exchange
		QueueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.OccurredAt,
			Body:         body,
		})
}
