// internal/messaging/rabbit.go
package messaging

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"tenant-platform/internal/metrics"
	"tenant-platform/internal/model"
)

// EventsExchange is the fanout exchange carrying tenant lifecycle events.
const EventsExchange = "tenant.events"

func QueueName(tenantID string) string { return fmt.Sprintf("tenant_%s_queue", tenantID) }

func DLQName(tenantID string) string { return fmt.Sprintf("tenant_%s_dlq", tenantID) }

type RabbitClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  chan *amqp.Error
	URL     string

	mu sync.Mutex
}

func NewRabbitClient(url string) (*RabbitClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err := ch.ExchangeDeclare(EventsExchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return &RabbitClient{
		conn:    conn,
		channel: ch,
		closed:  ch.NotifyClose(make(chan *amqp.Error, 1)),
		URL:     url,
	}, nil
}

// ensureChannel reopens the shared channel after the broker closed it, for
// example on a channel exception. Callers hold r.mu.
func (r *RabbitClient) ensureChannel() error {
	select {
	case cerr, ok := <-r.closed:
		if ok {
			log.Warn().Str("reason", cerr.Error()).Msg("[Rabbit] channel closed by broker, reopening")
		}
	default:
		return nil
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("reopen channel: %w", err)
	}
	r.channel = ch
	r.closed = ch.NotifyClose(make(chan *amqp.Error, 1))
	return nil
}

func (r *RabbitClient) GetConnection() *amqp.Connection {
	return r.conn
}

// DeclareQueue creates a tenant-specific durable chat queue with its DLQ
func (r *RabbitClient) DeclareQueue(tenantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureChannel(); err != nil {
		return err
	}

	queueName := QueueName(tenantID)
	dlqName := DLQName(tenantID)

	// 1. DLQ
	_, err := r.channel.QueueDeclare(
		dlqName,
		true, false, false, false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}

	// 2. Main Queue with DLQ binding
	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dlqName,
	}
	_, err = r.channel.QueueDeclare(
		queueName,
		true, false, false, false,
		args,
	)
	if err != nil {
		return fmt.Errorf("declare main queue: %w", err)
	}

	log.Debug().Str("tenant", tenantID).Msg("[Rabbit] queues declared")
	return nil
}

// DeleteQueues removes the tenant's chat queue and DLQ.
func (r *RabbitClient) DeleteQueues(tenantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureChannel(); err != nil {
		return err
	}

	for _, name := range []string{QueueName(tenantID), DLQName(tenantID)} {
		if _, err := r.channel.QueueDelete(name, false, false, false); err != nil {
			return fmt.Errorf("delete queue %s: %w", name, err)
		}
	}
	return nil
}

// Publish sends a message to the specified tenant queue
func (r *RabbitClient) Publish(tenantID string, body []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureChannel(); err != nil {
		return err
	}

	queueName := QueueName(tenantID)
	err := r.channel.Publish(
		"",        // default exchange
		queueName, // routing key (queue name)
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to queue %s: %w", queueName, err)
	}
	return nil
}

// PublishEvent announces a tenant lifecycle change on the events exchange.
func (r *RabbitClient) PublishEvent(eventType string, tenantID uuid.UUID) error {
	body, err := json.Marshal(model.TenantEvent{Type: eventType, TenantID: tenantID, At: time.Now().UTC()})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureChannel(); err != nil {
		return err
	}

	err = r.channel.Publish(EventsExchange, eventType, false, false, amqp.Publishing{
		ContentType: "application/json",
		Type:        eventType,
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

// Close cleans up connection and channel
func (r *RabbitClient) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	if err := r.conn.Close(); err != nil {
		return err
	}
	return nil
}

// UpdateQueueDepth inspects the tenant queue on a throwaway channel. A
// missing queue makes the broker close the channel it was asked on, which
// must not be the shared one.
func (r *RabbitClient) UpdateQueueDepth(tenantID string) {
	q, err := r.inspect(QueueName(tenantID))
	if err != nil {
		log.Warn().Err(err).Str("tenant", tenantID).Msg("[Rabbit] failed to inspect queue")
		return
	}

	metrics.QueueDepth.WithLabelValues(tenantID).Set(float64(q.Messages))
}

func (r *RabbitClient) inspect(name string) (amqp.Queue, error) {
	ch, err := r.conn.Channel()
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("open inspect channel: %w", err)
	}
	defer ch.Close()
	return ch.QueueInspect(name)
}
