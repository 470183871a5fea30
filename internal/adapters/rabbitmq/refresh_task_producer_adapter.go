package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"apartment-search-service/internal/constants"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RefreshTaskProducerAdapter реализует RefreshDispatcherPort через RabbitMQ:
// задача обновления уходит в очередь, обработкой занимается потребитель.
type RefreshTaskProducerAdapter struct {
	publisher *rabbitmq_producer.Publisher
}

func NewRefreshTaskProducerAdapter(publisher *rabbitmq_producer.Publisher) (*RefreshTaskProducerAdapter, error) {
	if publisher == nil {
		return nil, fmt.Errorf("publisher cannot be nil")
	}
	return &RefreshTaskProducerAdapter{publisher: publisher}, nil
}

func (a *RefreshTaskProducerAdapter) Dispatch(ctx context.Context, criteria domain.SearchCriteria, taskID uuid.UUID) error {
	msg := refreshTaskMessage{
		TaskID:      taskID.String(),
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
		Criteria:    toCriteriaDTO(criteria),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh task message: %w", err)
	}

	err = a.publisher.Publish(ctx, constants.RoutingKeyRefreshTask, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    taskID.String(),
		Timestamp:    time.Now(),
		Type:         refreshTaskEventName,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish refresh task: %w", err)
	}
	return nil
}
