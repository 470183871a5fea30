package usecase

import (
	"context"
	"fmt"
	"time"

	"apartment-search-service/internal/constants"
	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port"
	"apartment-search-service/internal/core/queryplanner"

	"github.com/google/uuid"
)

const refreshInflightTTL = 2 * constants.SourceScrapeTimeout

// SearchListingsUseCase - поиск по кешу со стратегией cache-first.
// Попадание отвечает данными кеша; промах немедленно отвечает
// ориентировочными данными и ставит фоновую задачу обновления,
// не дожидаясь скрейпинга.
type SearchListingsUseCase struct {
	store      port.ListingStorePort
	dispatcher port.RefreshDispatcherPort
	samples    port.SampleListingsPort
	inflight   *inflightGuard
}

func NewSearchListingsUseCase(
	store port.ListingStorePort,
	dispatcher port.RefreshDispatcherPort,
	samples port.SampleListingsPort,
) *SearchListingsUseCase {
	return &SearchListingsUseCase{
		store:      store,
		dispatcher: dispatcher,
		samples:    samples,
		inflight:   newInflightGuard(refreshInflightTTL),
	}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SearchListings",
		"location": criteria.Location,
	})

	filter := queryplanner.Plan(criteria)

	cached, err := uc.store.Find(ctx, filter, constants.MaxSearchResults)
	if err != nil {
		logger.Error("cache lookup failed", err, nil)
		return nil, fmt.Errorf("failed to query listing cache: %w", err)
	}

	if len(cached) > 0 {
		logger.Info("cache hit", port.Fields{"listings_count": len(cached)})
		return &domain.SearchResult{
			Listings: cached,
			Total:    len(cached),
			Cached:   true,
		}, nil
	}

	// Промах: отвечаем сразу, настоящие данные появятся в кеше позже
	uc.scheduleRefresh(ctx, criteria, logger)

	placeholder := uc.samples.Listings(criteria)
	logger.Info("cache miss, responding with placeholder data", port.Fields{
		"placeholder_count": len(placeholder),
	})
	return &domain.SearchResult{
		Listings: placeholder,
		Total:    len(placeholder),
		Cached:   false,
		Message:  "Scraping in progress, results will be cached shortly",
	}, nil
}

func (uc *SearchListingsUseCase) scheduleRefresh(ctx context.Context, criteria domain.SearchCriteria, logger port.LoggerPort) {
	fingerprint := criteria.Fingerprint()
	token, ok := uc.inflight.TryAcquire(fingerprint)
	if !ok {
		logger.Debug("refresh already in flight for identical criteria, skipping dispatch", nil)
		return
	}

	taskID := uuid.New()
	if err := uc.dispatcher.Dispatch(ctx, criteria, taskID); err != nil {
		uc.inflight.Release(fingerprint, token)
		// Отказ диспетчера не фатален для поиска: ответ уже готов
		logger.Error("failed to dispatch background refresh", err, port.Fields{
			"task_id": taskID.String(),
		})
		return
	}

	logger.Info("background refresh dispatched", port.Fields{"task_id": taskID.String()})

	// Запись стареет сама: завершение задачи наблюдать не из чего,
	// диспетчеризация отвязана от жизни запроса
	time.AfterFunc(refreshInflightTTL, func() {
		uc.inflight.Release(fingerprint, token)
	})
}
