package seloger

import (
	"fmt"

	"apartment-search-service/internal/constants"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// SeLogerAdapter отвечает за все взаимодействия с поисковым API SeLoger.
type SeLogerAdapter struct {
	// родительский коллектор, разделяющий лимиты между клонами
	collector *colly.Collector
	baseURL   string
}

func NewSeLogerAdapter(baseURL string) (*SeLogerAdapter, error) {
	c := colly.NewCollector(
		colly.AllowedDomains("www.seloger.com", "api.seloger.com"),
		colly.AllowURLRevisit(),
	)

	// Пауза между запросами - случайная величина из настроенного диапазона,
	// правило наследуется всеми клонами коллектора
	err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*seloger.com",
		Parallelism: 1,
		Delay:       constants.ScrapeDelayMin,
		RandomDelay: constants.ScrapeDelayMax - constants.ScrapeDelayMin,
	})
	if err != nil {
		return nil, fmt.Errorf("SeLogerAdapter: failed to set limit rule: %w", err)
	}

	extensions.RandomUserAgent(c) // User-Agent реального браузера на каждый запрос
	extensions.Referer(c)         // Referer имитирует навигацию

	return &SeLogerAdapter{
		collector: c,
		baseURL:   baseURL,
	}, nil
}

func (a *SeLogerAdapter) Name() string {
	return constants.SourceSeLoger
}
