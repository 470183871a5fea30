package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/normalizer"
	"apartment-search-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdapter struct {
	name  string
	raws  []domain.RawCandidate
	err   error
	panic bool
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Scrape(_ context.Context, _ domain.SearchCriteria) ([]domain.RawCandidate, error) {
	if s.panic {
		panic("browser session lost")
	}
	return s.raws, s.err
}

func rawCandidate(source, externalID string, price int) domain.RawCandidate {
	return domain.RawCandidate{
		Title:      "Appartement " + externalID,
		RawPrice:   fmt.Sprintf("%d €", price),
		RawSurface: "40 m²",
		RawRooms:   "2 pièces",
		Source:     source,
		ExternalID: externalID,
	}
}

func TestScrapeAllPartialSuccess(t *testing.T) {
	uc := NewRefreshListingsUseCase(
		[]port.SourceAdapterPort{
			&stubAdapter{name: "leboncoin", err: errors.New("captcha wall")},
			&stubAdapter{name: "seloger", raws: []domain.RawCandidate{
				rawCandidate("seloger", "1", 800),
				rawCandidate("seloger", "2", 900),
				rawCandidate("seloger", "3", 1000),
			}},
		},
		normalizer.New(),
		NewReconcileListingUseCase(newMemListingStore()),
		nil,
	)

	listings := uc.ScrapeAll(context.Background(), domain.SearchCriteria{Location: "Paris"})

	require.Len(t, listings, 3, "failed source must not discard survivors")
	for _, l := range listings {
		assert.Equal(t, "seloger", l.Source)
	}
}

func TestScrapeAllContainsPanics(t *testing.T) {
	uc := NewRefreshListingsUseCase(
		[]port.SourceAdapterPort{
			&stubAdapter{name: "leboncoin", panic: true},
			&stubAdapter{name: "seloger", raws: []domain.RawCandidate{rawCandidate("seloger", "1", 800)}},
		},
		normalizer.New(),
		NewReconcileListingUseCase(newMemListingStore()),
		nil,
	)

	listings := uc.ScrapeAll(context.Background(), domain.SearchCriteria{})

	require.Len(t, listings, 1)
}

func TestScrapeAllPreservesPerSourceOrder(t *testing.T) {
	uc := NewRefreshListingsUseCase(
		[]port.SourceAdapterPort{
			&stubAdapter{name: "seloger", raws: []domain.RawCandidate{
				rawCandidate("seloger", "a", 800),
				rawCandidate("seloger", "b", 900),
				rawCandidate("seloger", "c", 1000),
			}},
		},
		normalizer.New(),
		NewReconcileListingUseCase(newMemListingStore()),
		nil,
	)

	listings := uc.ScrapeAll(context.Background(), domain.SearchCriteria{})

	require.Len(t, listings, 3)
	assert.Equal(t, []string{"a", "b", "c"},
		[]string{listings[0].ExternalID, listings[1].ExternalID, listings[2].ExternalID})
}

type recordingReporter struct {
	mu     sync.Mutex
	taskID uuid.UUID
	stats  *domain.ReconcileStats
	err    error
}

func (r *recordingReporter) ReportResults(_ context.Context, taskID uuid.UUID, stats *domain.ReconcileStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taskID = taskID
	r.stats = stats
	return r.err
}

func TestExecuteScrapesReconcilesAndReports(t *testing.T) {
	store := newMemListingStore(domain.Listing{ID: "old", Source: "seloger", ExternalID: "1", Price: 700})
	reporter := &recordingReporter{}
	uc := NewRefreshListingsUseCase(
		[]port.SourceAdapterPort{
			&stubAdapter{name: "seloger", raws: []domain.RawCandidate{
				rawCandidate("seloger", "1", 800), // уже в кеше: update
				rawCandidate("seloger", "2", 900), // новый: insert
			}},
		},
		normalizer.New(),
		NewReconcileListingUseCase(store),
		reporter,
	)

	taskID := uuid.New()
	stats, err := uc.Execute(context.Background(), domain.SearchCriteria{Location: "Paris"}, taskID)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 0, stats.Failed)

	assert.Equal(t, taskID, reporter.taskID)
	assert.Equal(t, stats, reporter.stats)
	assert.Len(t, store.all(), 2)
}

func TestExecuteSurvivesReporterFailure(t *testing.T) {
	reporter := &recordingReporter{err: errors.New("broker unavailable")}
	uc := NewRefreshListingsUseCase(
		[]port.SourceAdapterPort{
			&stubAdapter{name: "seloger", raws: []domain.RawCandidate{rawCandidate("seloger", "1", 800)}},
		},
		normalizer.New(),
		NewReconcileListingUseCase(newMemListingStore()),
		reporter,
	)

	stats, err := uc.Execute(context.Background(), domain.SearchCriteria{}, uuid.New())

	require.NoError(t, err, "a failed report must not fail the refresh")
	assert.Equal(t, 1, stats.Inserted)
}
