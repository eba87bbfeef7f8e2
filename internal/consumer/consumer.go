// internal/consumer/consumer.go
package consumer

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"tenant-platform/internal/messaging"
	"tenant-platform/internal/worker"
)

// Consumer holds the channel and worker pool of a running tenant consumer
type Consumer struct {
	TenantID    string
	QueueName   string
	Channel     *amqp.Channel
	ConsumerTag string
	Pool        *worker.Pool
}

// StartConsumer subscribes to the tenant's chat queue and feeds deliveries
// to a pool of workers goroutines.
func StartConsumer(conn *amqp.Connection, tenantID string, workers int, handler worker.Handler) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("tenant %s: failed to open channel: %w", tenantID, err)
	}

	if workers <= 0 {
		workers = 1
	}
	if err := ch.Qos(prefetch(workers), 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("tenant %s: failed to set qos: %w", tenantID, err)
	}

	queueName := messaging.QueueName(tenantID)
	consumerTag := fmt.Sprintf("consumer-%s", tenantID)

	msgs, err := ch.Consume(
		queueName,
		consumerTag,
		false, // autoAck: false to handle manually
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("tenant %s: failed to start consuming: %w", tenantID, err)
	}

	c := &Consumer{
		TenantID:    tenantID,
		QueueName:   queueName,
		Channel:     ch,
		ConsumerTag: consumerTag,
		Pool:        worker.NewPool(tenantID, workers, handler),
	}
	c.Pool.Start(msgs)

	log.Info().Str("tenant", tenantID).Msg("Started consumer")
	return c, nil
}

// Stop cancels the subscription, drains the workers and closes the channel
func (c *Consumer) Stop() {
	_ = c.Channel.Cancel(c.ConsumerTag, false)
	c.Pool.Stop()
	_ = c.Channel.Close()
	log.Info().Str("tenant", c.TenantID).Msg("Stopped consumer")
}

func (c *Consumer) SetWorkerCount(n int) {
	if n <= 0 {
		return
	}
	if err := c.Channel.Qos(prefetch(n), 0, false); err != nil {
		log.Warn().Err(err).Str("tenant", c.TenantID).Msg("failed to update qos")
	}
	c.Pool.SetWorkerCount(n)
}

func prefetch(workers int) int { return workers * 2 }
