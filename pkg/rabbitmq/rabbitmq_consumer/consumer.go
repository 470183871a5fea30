package rabbitmq_consumer

import (
	"context"
	"fmt"

	"apartment-search-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одну доставку. Ошибка приводит к nack
// без повторной постановки: битое сообщение не должно крутиться вечно.
type MessageHandler func(d amqp.Delivery) error

// ConsumerConfig - конфигурация потребителя.
type ConsumerConfig struct {
	rabbitmq_common.Config
	QueueName    string
	DeclareQueue bool
	DurableQueue bool

	// Привязка очереди к обменнику; пустое имя - без привязки
	ExchangeNameForBind    string
	ExchangeTypeForBind    string
	DeclareExchangeForBind bool
	DurableExchangeForBind bool
	RoutingKeyForBind      string

	PrefetchCount int
	ConsumerTag   string

	Logger rabbitmq_common.Logger
}

// Consumer читает одну очередь и передает доставки обработчику.
type Consumer struct {
	config          ConsumerConfig
	connection      *amqp.Connection
	channel         *amqp.Channel
	actualQueueName string

	Logger rabbitmq_common.Logger
}

func NewConsumer(cfg ConsumerConfig, connManager *rabbitmq_common.ConnectionManager) (*Consumer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("consumer: invalid base config: %w", err)
	}
	if !cfg.DeclareQueue && cfg.QueueName == "" {
		return nil, fmt.Errorf("consumer: queue name is required if DeclareQueue is false")
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to get channel from manager: %w", err)
	}

	c := &Consumer{
		config:     cfg,
		connection: conn,
		channel:    ch,
		Logger:     logger,
	}

	if err := c.setup(); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consumer: setup failed: %w", err)
	}

	return c, nil
}

func (c *Consumer) setup() error {
	if c.config.PrefetchCount > 0 {
		if err := c.channel.Qos(c.config.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	c.actualQueueName = c.config.QueueName
	if c.config.DeclareQueue {
		q, err := c.channel.QueueDeclare(
			c.config.QueueName,
			c.config.DurableQueue,
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue '%s': %w", c.config.QueueName, err)
		}
		c.actualQueueName = q.Name
	}

	if c.config.ExchangeNameForBind != "" {
		if c.config.DeclareExchangeForBind {
			err := c.channel.ExchangeDeclare(
				c.config.ExchangeNameForBind,
				c.config.ExchangeTypeForBind,
				c.config.DurableExchangeForBind,
				false, // auto-delete
				false, // internal
				false, // no-wait
				nil,
			)
			if err != nil {
				return fmt.Errorf("failed to declare exchange '%s': %w", c.config.ExchangeNameForBind, err)
			}
		}

		err := c.channel.QueueBind(
			c.actualQueueName,
			c.config.RoutingKeyForBind,
			c.config.ExchangeNameForBind,
			false, // no-wait
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to bind queue '%s': %w", c.actualQueueName, err)
		}
	}

	c.Logger.Debug("Consumer setup complete", "queue", c.actualQueueName)
	return nil
}

// StartConsuming блокируется до отмены контекста или закрытия канала доставок.
func (c *Consumer) StartConsuming(ctx context.Context, handler MessageHandler) error {
	deliveries, err := c.channel.Consume(
		c.actualQueueName,
		c.config.ConsumerTag,
		false, // auto-ack выключен, подтверждаем вручную
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consumer: failed to start consuming from '%s': %w", c.actualQueueName, err)
	}

	c.Logger.Info("Consumer started", "queue", c.actualQueueName)

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Consumer stopping: context cancelled", "queue", c.actualQueueName)
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				c.Logger.Warn("Consumer stopping: delivery channel closed", "queue", c.actualQueueName)
				return fmt.Errorf("consumer: delivery channel closed")
			}

			if err := handler(d); err != nil {
				c.Logger.Error(err, "Message handler failed, rejecting message",
					"queue", c.actualQueueName)
				_ = d.Nack(false, false)
			} else {
				_ = d.Ack(false)
			}
		}
	}
}

// Close закрывает канал. Вызывать после возврата StartConsuming:
// обработка идет в том же цикле, сообщений в полете после выхода нет.
func (c *Consumer) Close() error {
	if c.channel == nil {
		return nil
	}
	err := c.channel.Close()
	c.channel = nil
	if err != nil {
		c.Logger.Error(err, "Error closing consumer channel")
		return err
	}
	c.Logger.Info("Consumer closed", "queue", c.actualQueueName)
	return nil
}
