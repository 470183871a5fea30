package seloger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"apartment-search-service/internal/constants"
	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port"

	"github.com/gocolly/colly/v2"
)

func (a *SeLogerAdapter) buildURLFromCriteria(criteria domain.SearchCriteria) (string, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return "", err
	}

	c := criteria.Normalized()

	q := u.Query()
	q.Set("projects", "1") // аренда
	q.Set("types", c.PropertyType)
	if c.Location != "" {
		q.Set("places", c.Location)
	}
	if c.MinPrice > 0 || c.MaxPrice > 0 {
		q.Set("price", fmt.Sprintf("%d/%d", c.MinPrice, c.MaxPrice))
	}
	if c.MinSurface > 0 || c.MaxSurface > 0 {
		q.Set("surface", fmt.Sprintf("%d/%d", c.MinSurface, c.MaxSurface))
	}
	if c.Rooms > 0 {
		q.Set("rooms", strconv.Itoa(c.Rooms))
	}
	if c.Furnished != nil && *c.Furnished {
		q.Set("furnished", "1")
	}
	q.Set("limit", strconv.Itoa(constants.MaxCandidatesPerSource))

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Scrape выполняет один поисковый запрос к API и возвращает сырых кандидатов.
// Любой сбой (сеть, статус, JSON) возвращается ошибкой, не паникой.
func (a *SeLogerAdapter) Scrape(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RawCandidate, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SeLogerAdapter(Scrape)",
	})

	// Одноразовый клон: наследует лимиты, но несет свои обработчики
	collector := a.collector.Clone()

	var candidates []domain.RawCandidate
	var responseErr error

	targetURL, err := a.buildURLFromCriteria(criteria)
	if err != nil {
		return nil, fmt.Errorf("seloger adapter: failed to build URL from criteria: %w", err)
	}

	collector.OnRequest(func(r *colly.Request) {
		logger.Debug("Making search request", port.Fields{"url": r.URL.String()})
	})

	collector.OnResponse(func(r *colly.Response) {
		var data selogerSearchResponse
		if jsonErr := json.Unmarshal(r.Body, &data); jsonErr != nil {
			responseErr = fmt.Errorf("seloger adapter: failed to parse JSON from %s: %w", r.Request.URL.String(), jsonErr)
			return
		}

		for _, item := range data.Items {
			if len(candidates) >= constants.MaxCandidatesPerSource {
				break
			}
			candidates = append(candidates, toRawCandidate(item))
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		logger.Error("Search request failed", err, port.Fields{
			"url":    r.Request.URL.String(),
			"status": r.StatusCode,
		})
		responseErr = fmt.Errorf("seloger adapter: request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	if visitErr := collector.Visit(targetURL); visitErr != nil {
		logger.Error("Failed to initiate search visit", visitErr, port.Fields{"url": targetURL})
		return nil, fmt.Errorf("seloger adapter: visit failed: %w", visitErr)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}

	logger.Info("Search page fetched", port.Fields{"candidates_count": len(candidates)})
	return candidates, nil
}
