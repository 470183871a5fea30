package background

import (
	"context"
	"fmt"

	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port"
	"apartment-search-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

// Dispatcher запускает обновление кеша отсоединенной горутиной в том же
// процессе. Вариант по умолчанию, когда RabbitMQ не настроен.
type Dispatcher struct {
	refreshUC usecases_port.RefreshListingsUseCase
	logger    port.LoggerPort
}

func NewDispatcher(refreshUC usecases_port.RefreshListingsUseCase, logger port.LoggerPort) (*Dispatcher, error) {
	if refreshUC == nil {
		return nil, fmt.Errorf("refresh use case cannot be nil")
	}
	return &Dispatcher{refreshUC: refreshUC, logger: logger}, nil
}

// Dispatch возвращается сразу. Задача живет на собственном контексте:
// завершение породившего запроса ее не отменяет.
func (d *Dispatcher) Dispatch(_ context.Context, criteria domain.SearchCriteria, taskID uuid.UUID) error {
	taskLogger := d.logger.WithFields(port.Fields{
		"component": "BackgroundDispatcher",
		"task_id":   taskID.String(),
	})

	go func() {
		defer func() {
			if r := recover(); r != nil {
				taskLogger.Error("Background refresh panicked", fmt.Errorf("panic: %v", r), nil)
			}
		}()

		taskCtx := contextkeys.ContextWithLogger(context.Background(), taskLogger)
		taskCtx = contextkeys.ContextWithTraceID(taskCtx, taskID.String())

		if _, err := d.refreshUC.Execute(taskCtx, criteria, taskID); err != nil {
			taskLogger.Error("Background refresh failed", err, nil)
		}
	}()

	return nil
}
