package usecases_port

import (
	"context"

	"apartment-search-service/internal/core/domain"

	"github.com/google/uuid"
)

type RefreshListingsUseCase interface {
	Execute(ctx context.Context, criteria domain.SearchCriteria, taskID uuid.UUID) (*domain.ReconcileStats, error)
}
