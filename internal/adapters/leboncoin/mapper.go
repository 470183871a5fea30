package leboncoin

import (
	"net/url"
	"path"
	"strings"

	"apartment-search-service/internal/constants"
	"apartment-search-service/internal/core/domain"
)

// toRawCandidate переносит карточку как есть, числа остаются строками.
func toRawCandidate(card cardData) domain.RawCandidate {
	return domain.RawCandidate{
		Title:      card.Title,
		RawPrice:   card.Price,
		RawSurface: card.Surface,
		RawRooms:   card.Rooms,
		Address:    card.Location,
		Images:     card.Images,
		Source:     constants.SourceLeBonCoin,
		ExternalID: externalIDFromURL(card.URL),
		URL:        card.URL,
	}
}

// externalIDFromURL вытаскивает нативный идентификатор объявления из ссылки
// вида .../ad/locations/2490612345.htm. Пустой результат допустим: сверка
// тогда считает объявление новым.
func externalIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	base = strings.TrimSuffix(base, ".htm")
	if base == "." || base == "/" {
		return ""
	}
	for _, r := range base {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return base
}
