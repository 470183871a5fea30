package usecase

import (
	"context"
	"fmt"
	"sync"

	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/normalizer"
	"apartment-search-service/internal/core/port"

	"github.com/google/uuid"
)

// RefreshListingsUseCase - оркестратор фонового обновления кеша:
// параллельный опрос всех источников, нормализация, сверка с кешем, отчет.
type RefreshListingsUseCase struct {
	adapters   []port.SourceAdapterPort
	normalizer *normalizer.Normalizer
	reconciler *ReconcileListingUseCase
	reporter   port.TaskReporterPort
}

func NewRefreshListingsUseCase(
	adapters []port.SourceAdapterPort,
	norm *normalizer.Normalizer,
	reconciler *ReconcileListingUseCase,
	reporter port.TaskReporterPort,
) *RefreshListingsUseCase {
	return &RefreshListingsUseCase{
		adapters:   adapters,
		normalizer: norm,
		reconciler: reconciler,
		reporter:   reporter,
	}
}

// Результат одного источника. err заполняется только при полном отказе
// источника, кандидаты при этом теряются лишь у него одного.
type sourceResult struct {
	source   string
	listings []domain.Listing
	rejected int
	err      error
}

// ScrapeAll запускает все адаптеры параллельно и дожидается каждого.
// Отказ источника (ошибка или паника) изолируется и логируется, частичный
// успех - это успех: возвращается всё, что собрали выжившие источники.
// Порядок кандидатов внутри одного источника сохраняется.
func (uc *RefreshListingsUseCase) ScrapeAll(ctx context.Context, criteria domain.SearchCriteria) []domain.Listing {
	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{
		"use_case": "RefreshListings",
	})

	ucLogger.Info("Starting scrape across all sources", port.Fields{"sources_count": len(uc.adapters)})

	var wg sync.WaitGroup
	resultsChan := make(chan sourceResult, len(uc.adapters))

	for _, adapter := range uc.adapters {
		wg.Add(1)
		go func(a port.SourceAdapterPort) {
			defer wg.Done()

			sourceLogger := ucLogger.WithFields(port.Fields{"source": a.Name()})
			sourceCtx := contextkeys.ContextWithLogger(ctx, sourceLogger)

			res := sourceResult{source: a.Name()}
			defer func() {
				if r := recover(); r != nil {
					res.err = domain.NewSourceError(a.Name(), fmt.Errorf("panic: %v", r))
				}
				resultsChan <- res
			}()

			raws, err := a.Scrape(sourceCtx, criteria)
			if err != nil {
				res.err = domain.NewSourceError(a.Name(), err)
				return
			}

			res.listings, res.rejected = uc.normalizer.NormalizeBatch(sourceCtx, raws)
		}(adapter)
	}

	// Ждем ВСЕ источники, ранний выход по первому отказу запрещен
	wg.Wait()
	close(resultsChan)

	var aggregated []domain.Listing
	totalRejected := 0
	for res := range resultsChan {
		if res.err != nil {
			ucLogger.Error("source failed, excluding from aggregate", res.err, port.Fields{"source": res.source})
			continue
		}
		aggregated = append(aggregated, res.listings...)
		totalRejected += res.rejected
	}

	ucLogger.Info("Scrape across sources completed", port.Fields{
		"listings_count": len(aggregated),
		"rejected_count": totalRejected,
	})
	return aggregated
}

// Execute - полный прогон обновления: скрейпинг, сверка, отчет о задаче.
func (uc *RefreshListingsUseCase) Execute(ctx context.Context, criteria domain.SearchCriteria, taskID uuid.UUID) (*domain.ReconcileStats, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "RefreshListings",
		"task_id":  taskID.String(),
	})
	ctx = contextkeys.ContextWithLogger(ctx, ucLogger)

	ucLogger.Info("Refresh task started", port.Fields{"location": criteria.Location})

	listings := uc.ScrapeAll(ctx, criteria)
	stats := uc.reconciler.ReconcileBatch(ctx, listings)

	if uc.reporter != nil {
		if err := uc.reporter.ReportResults(ctx, taskID, stats); err != nil {
			// Основная работа сделана, неудавшийся отчет не делает задачу проваленной
			ucLogger.Error("Failed to report refresh task results", err, nil)
		}
	}

	ucLogger.Info("Refresh task finished", port.Fields{
		"inserted": stats.Inserted,
		"updated":  stats.Updated,
		"failed":   stats.Failed,
	})
	return stats, nil
}
