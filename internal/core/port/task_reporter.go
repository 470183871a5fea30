package port

import (
	"context"

	"apartment-search-service/internal/core/domain"

	"github.com/google/uuid"
)

// TaskReporterPort сообщает итоги задачи обновления кеша.
type TaskReporterPort interface {
	ReportResults(ctx context.Context, taskID uuid.UUID, stats *domain.ReconcileStats) error
}
