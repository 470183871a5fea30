package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/contracts"
	"apartment-search-service/internal/core/port"
	"apartment-search-service/internal/core/port/usecases_port"
	"apartment-search-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RefreshTasksConsumerAdapter читает очередь задач обновления и передает
// их в use case. Невалидное сообщение отбрасывается без повторной доставки.
type RefreshTasksConsumerAdapter struct {
	consumer  *rabbitmq_consumer.Consumer
	refreshUC usecases_port.RefreshListingsUseCase
	logger    port.LoggerPort
}

func NewRefreshTasksConsumerAdapter(
	consumer *rabbitmq_consumer.Consumer,
	refreshUC usecases_port.RefreshListingsUseCase,
	logger port.LoggerPort,
) (*RefreshTasksConsumerAdapter, error) {
	if consumer == nil {
		return nil, fmt.Errorf("consumer cannot be nil")
	}
	if refreshUC == nil {
		return nil, fmt.Errorf("refresh use case cannot be nil")
	}
	return &RefreshTasksConsumerAdapter{
		consumer:  consumer,
		refreshUC: refreshUC,
		logger:    logger,
	}, nil
}

// Start блокируется до отмены контекста.
func (a *RefreshTasksConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx, func(d amqp.Delivery) error {
		return a.messageHandler(ctx, d)
	})
}

func (a *RefreshTasksConsumerAdapter) messageHandler(ctx context.Context, d amqp.Delivery) error {
	msgLogger := a.logger.WithFields(port.Fields{
		"component":  "RefreshTasksConsumer",
		"message_id": d.MessageId,
	})

	if err := contracts.ValidateEvent(refreshTaskEventName, refreshTaskEventVersion, d.Body); err != nil {
		msgLogger.Error("Refresh task message failed schema validation", err, nil)
		return fmt.Errorf("invalid refresh task message: %w", err)
	}

	var msg refreshTaskMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		msgLogger.Error("Failed to unmarshal refresh task message", err, nil)
		return fmt.Errorf("failed to unmarshal refresh task: %w", err)
	}

	taskID, err := uuid.Parse(msg.TaskID)
	if err != nil {
		msgLogger.Error("Refresh task carries malformed task id", err, port.Fields{"task_id": msg.TaskID})
		return fmt.Errorf("malformed task id %q: %w", msg.TaskID, err)
	}

	taskLogger := msgLogger.WithFields(port.Fields{"task_id": taskID.String()})
	taskCtx := contextkeys.ContextWithLogger(ctx, taskLogger)
	taskCtx = contextkeys.ContextWithTraceID(taskCtx, taskID.String())

	taskLogger.Info("Processing refresh task from queue", nil)

	if _, err := a.refreshUC.Execute(taskCtx, msg.Criteria.toDomain(), taskID); err != nil {
		taskLogger.Error("Refresh task processing failed", err, nil)
		return err
	}
	return nil
}

func (a *RefreshTasksConsumerAdapter) Close() error {
	return a.consumer.Close()
}
