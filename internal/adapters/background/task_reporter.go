package background

import (
	"context"

	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port"

	"github.com/google/uuid"
)

// LogTaskReporter сообщает итоги задачи в лог. Отдельного сервиса
// уведомлений у системы нет, журнала достаточно.
type LogTaskReporter struct {
	logger port.LoggerPort
}

func NewLogTaskReporter(logger port.LoggerPort) *LogTaskReporter {
	return &LogTaskReporter{logger: logger}
}

func (r *LogTaskReporter) ReportResults(_ context.Context, taskID uuid.UUID, stats *domain.ReconcileStats) error {
	r.logger.Info("Refresh task results", port.Fields{
		"task_id":  taskID.String(),
		"inserted": stats.Inserted,
		"updated":  stats.Updated,
		"failed":   stats.Failed,
	})
	return nil
}
