package leboncoin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"apartment-search-service/internal/constants"
	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port"

	"github.com/chromedp/chromedp"
)

type cardData struct {
	Title    string   `json:"title"`
	Price    string   `json:"price"`
	Surface  string   `json:"surface"`
	Rooms    string   `json:"rooms"`
	Location string   `json:"location"`
	URL      string   `json:"url"`
	Images   []string `json:"images"`
}

func (a *LeBonCoinAdapter) buildURLFromCriteria(criteria domain.SearchCriteria) (string, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return "", err
	}

	c := criteria.Normalized()

	q := u.Query()
	q.Set("category", "10") // аренда жилья
	if c.Location != "" {
		q.Set("locations", c.Location)
	}
	if c.MinPrice > 0 || c.MaxPrice > 0 {
		q.Set("price", fmt.Sprintf("%d-%d", c.MinPrice, c.MaxPrice))
	}
	if c.MinSurface > 0 || c.MaxSurface > 0 {
		q.Set("square", fmt.Sprintf("%d-%d", c.MinSurface, c.MaxSurface))
	}
	if c.Rooms > 0 {
		q.Set("rooms", strconv.Itoa(c.Rooms)+"-max")
	}
	if c.Furnished != nil && *c.Furnished {
		q.Set("furnished", "1")
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Scrape открывает выдачу в headless-браузере и снимает карточки объявлений.
// Сессия браузера закрывается на любом пути выхода, включая таймаут.
func (a *LeBonCoinAdapter) Scrape(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RawCandidate, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "LeBonCoinAdapter(Scrape)",
	})

	targetURL, err := a.buildURLFromCriteria(criteria)
	if err != nil {
		return nil, fmt.Errorf("leboncoin adapter: failed to build URL from criteria: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if a.execPath != "" {
		opts = append(opts, chromedp.ExecPath(a.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, constants.SourceScrapeTimeout)
	defer cancelTimeout()

	logger.Debug("Opening search page", port.Fields{"url": targetURL})

	var cards []cardData
	err = chromedp.Run(runCtx,
		chromedp.Navigate(targetURL),
		chromedp.Sleep(randomDelay()),

		// Прокрутка подгружает ленивые карточки
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`, nil),
		chromedp.Sleep(randomDelay()),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(randomDelay()),

		chromedp.Evaluate(extractCardsJS(constants.MaxCandidatesPerSource), &cards),
	)
	if err != nil {
		logger.Error("Browser session failed", err, port.Fields{"url": targetURL})
		return nil, fmt.Errorf("leboncoin adapter: browser run failed: %w", err)
	}

	candidates := make([]domain.RawCandidate, 0, len(cards))
	for _, card := range cards {
		candidates = append(candidates, toRawCandidate(card))
	}

	logger.Info("Search page scraped", port.Fields{"candidates_count": len(candidates)})
	return candidates, nil
}

func extractCardsJS(limit int) string {
	return `
		(function() {
			var results = [];
			var limit = ` + strconv.Itoa(limit) + `;

			var cards = document.querySelectorAll('[data-qa-id="aditem_container"]');
			if (cards.length === 0) {
				cards = document.querySelectorAll('a[href*="/ad/"], a[href*="/locations/"]');
			}

			var seen = {};
			for (var i = 0; i < cards.length && results.length < limit; i++) {
				var card = cards[i];
				var link = card.tagName === 'A' ? card : card.querySelector('a');
				var href = link ? link.href : '';
				if (!href || seen[href]) continue;
				seen[href] = true;

				var titleEl = card.querySelector('[data-qa-id="aditem_title"]') || card.querySelector('h2, h3');
				var priceEl = card.querySelector('[data-qa-id="aditem_price"]') || card.querySelector('[class*="price"]');

				var lines = card.innerText.split('\n').map(function(l){ return l.trim(); }).filter(Boolean);
				var surface = lines.find(function(l){ return /\d+\s*m/.test(l); }) || '';
				var rooms = lines.find(function(l){ return /pi[eè]ces?/.test(l); }) || '';
				var location = lines.length > 0 ? lines[lines.length - 1] : '';

				var images = [];
				var imgs = card.querySelectorAll('img');
				for (var j = 0; j < imgs.length; j++) {
					if (imgs[j].src) images.push(imgs[j].src);
				}

				results.push({
					title:    titleEl ? titleEl.innerText.trim() : (lines[0] || ''),
					price:    priceEl ? priceEl.innerText.trim() : '',
					surface:  surface,
					rooms:    rooms,
					location: location,
					url:      href,
					images:   images
				});
			}
			return results;
		})()`
}
