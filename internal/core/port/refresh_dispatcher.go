package port

import (
	"context"

	"apartment-search-service/internal/core/domain"

	"github.com/google/uuid"
)

// RefreshDispatcherPort отправляет задачу фонового обновления кеша.
// Dispatch не ждет завершения скрейпинга: поисковый запрос отвечает сразу.
type RefreshDispatcherPort interface {
	Dispatch(ctx context.Context, criteria domain.SearchCriteria, taskID uuid.UUID) error
}
