package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/electramart-api/internal/queue"
)

// DefaultDialTimeout bounds connecting to the broker and the AMQP handshake.
const DefaultDialTimeout = 3 * time.Second

// AMQPPublisher publishes domain events to RabbitMQ.  Each publish opens its
// own connection, so a broker outage never outlives a single request.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url, DialTimeout: DefaultDialTimeout}
}

// dialTimeout is DialTimeout capped by the time left on ctx.
func (p *AMQPPublisher) dialTimeout(ctx context.Context) time.Duration {
	d := p.DialTimeout
	if d <= 0 {
		d = DefaultDialTimeout
	}
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < d {
			d = left
		}
	}
	return d
}

// PublishTransactionRecorded sends ev to the durable transaction.recorded
// queue as a persistent JSON message.
func (p *AMQPPublisher) PublishTransactionRecorded(ctx context.Context, ev queue.TransactionRecordedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.publish(ctx, queue.TransactionQueue, body)
}

func (p *AMQPPublisher) publish(ctx context.Context, queueName string, body []byte) error {
	timeout := p.dialTimeout(ctx)
	if err := ctx.Err(); err != nil || timeout <= 0 {
		if err == nil {
			err = context.DeadlineExceeded
		}
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Locale: "en_US",
		Dial:   amqp.DefaultDial(timeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}
