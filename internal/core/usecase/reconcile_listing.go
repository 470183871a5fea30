package usecase

import (
	"context"
	"errors"
	"fmt"

	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port"

	"github.com/google/uuid"
)

// ReconcileListingUseCase решает insert-или-update для канонического объявления
// по идентичности (source, external_id). Уникальность пары обеспечивается
// здесь, а не ограничениями хранилища: сначала поиск, потом запись.
type ReconcileListingUseCase struct {
	store port.ListingStorePort
}

func NewReconcileListingUseCase(store port.ListingStorePort) *ReconcileListingUseCase {
	return &ReconcileListingUseCase{store: store}
}

// Reconcile идемпотентен: повторная сверка того же снимка сходится
// к одной записи с последними значениями полей.
func (uc *ReconcileListingUseCase) Reconcile(ctx context.Context, listing domain.Listing) (domain.ReconcileOutcome, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "ReconcileListing",
		"source":      listing.Source,
		"external_id": listing.ExternalID,
	})

	// Без external_id совпадение невозможно: всегда вставка.
	// Такие объявления могут дублироваться между прогонами - известное
	// ограничение источников без стабильного идентификатора.
	if listing.ExternalID != "" {
		existing, err := uc.store.FindOne(ctx, domain.ByExternalIdentity(listing.Source, listing.ExternalID))
		switch {
		case err == nil:
			// Перезапись всех полей кроме идентичности, id сохраняется
			listing.ID = existing.ID
			filter := domain.ByExternalIdentity(listing.Source, listing.ExternalID)
			if err := uc.store.UpdateOne(ctx, filter, listing); err != nil {
				logger.Error("failed to update cached listing", err, nil)
				return domain.OutcomeFailed, &domain.StoreError{Op: "updateOne", Err: err}
			}
			logger.Debug("cached listing updated", nil)
			return domain.OutcomeUpdated, nil
		case errors.Is(err, domain.ErrListingNotFound):
			// Совпадения нет, идем на вставку
		default:
			logger.Error("failed to look up cached listing", err, nil)
			return domain.OutcomeFailed, &domain.StoreError{Op: "findOne", Err: err}
		}
	}

	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	if err := uc.store.Insert(ctx, listing); err != nil {
		logger.Error("failed to insert listing into cache", err, nil)
		return domain.OutcomeFailed, &domain.StoreError{Op: "insert", Err: err}
	}
	logger.Debug("listing inserted into cache", nil)
	return domain.OutcomeInserted, nil
}

// ReconcileBatch сверяет партию: отказ хранилища по одной записи не
// останавливает сверку остальных.
func (uc *ReconcileListingUseCase) ReconcileBatch(ctx context.Context, listings []domain.Listing) *domain.ReconcileStats {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":      "ReconcileListing",
		"listing_count": len(listings),
	})

	stats := &domain.ReconcileStats{}
	for _, listing := range listings {
		outcome, err := uc.Reconcile(ctx, listing)
		if err != nil {
			logger.Warn("listing reconciliation failed", port.Fields{
				"source":      listing.Source,
				"external_id": listing.ExternalID,
				"error":       fmt.Sprintf("%v", err),
			})
		}
		stats.Add(outcome)
	}

	logger.Info("batch reconciliation finished", port.Fields{
		"inserted": stats.Inserted,
		"updated":  stats.Updated,
		"failed":   stats.Failed,
	})
	return stats
}
