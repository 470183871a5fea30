package normalizer

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"apartment-search-service/internal/contextkeys"
	"apartment-search-service/internal/core/domain"
	"apartment-search-service/internal/core/port"
)

var digitsRe = regexp.MustCompile(`\d+`)

// Normalizer превращает сырых кандидатов в канонические объявления.
// Чистая логика без I/O, время подставляется для тестируемости.
type Normalizer struct {
	now func() time.Time
}

func New() *Normalizer {
	return &Normalizer{now: time.Now}
}

// Normalize приводит типы и проверяет три обязательных числовых поля.
// Кандидат без распарсиваемой цены/площади/комнат отбраковывается с ошибкой,
// заглушечные нули в хранилище не попадают.
func (n *Normalizer) Normalize(raw domain.RawCandidate) (domain.Listing, error) {
	if strings.TrimSpace(raw.Source) == "" {
		return domain.Listing{}, domain.ErrEmptySource
	}

	price, ok := extractPrice(raw.RawPrice)
	if !ok {
		return domain.Listing{}, domain.ErrNoParsablePrice
	}

	surface, ok := extractFirstInt(raw.RawSurface)
	if !ok || surface <= 0 {
		return domain.Listing{}, domain.ErrNoParsableSurface
	}

	rooms, ok := extractFirstInt(raw.RawRooms)
	if !ok || rooms < 1 {
		return domain.Listing{}, domain.ErrNoParsableRooms
	}

	listing := domain.Listing{
		Title:       strings.TrimSpace(raw.Title),
		Price:       price,
		Surface:     surface,
		Rooms:       rooms,
		Address:     strings.TrimSpace(raw.Address),
		Description: strings.TrimSpace(raw.Description),
		Images:      append([]string(nil), raw.Images...),
		Source:      raw.Source,
		ExternalID:  raw.ExternalID,
		URL:         raw.URL,
		Furnished:   boolOrFalse(raw.Furnished),
		Balcony:     boolOrFalse(raw.Balcony),
		Parking:     boolOrFalse(raw.Parking),
		Pets:        boolOrFalse(raw.Pets),
	}

	// Опциональные числовые поля: не повод для отбраковки
	if bedrooms, ok := extractFirstInt(raw.RawBedrooms); ok && bedrooms >= 0 {
		listing.Bedrooms = bedrooms
	}
	if charges, ok := extractFirstInt(raw.RawCharges); ok && charges >= 0 {
		listing.Charges = charges
	}
	if floor, ok := extractFirstInt(raw.RawFloor); ok {
		listing.Floor = floor
	}

	if raw.PublishedAt != nil {
		listing.PublishedAt = *raw.PublishedAt
	} else {
		listing.PublishedAt = n.now()
	}

	return listing, nil
}

// NormalizeBatch обрабатывает партию целиком: отбраковка отдельного кандидата
// считается и логируется, но никогда не прерывает остальных.
func (n *Normalizer) NormalizeBatch(ctx context.Context, raws []domain.RawCandidate) ([]domain.Listing, int) {
	log := contextkeys.LoggerFromContext(ctx)

	listings := make([]domain.Listing, 0, len(raws))
	rejected := 0
	for _, raw := range raws {
		listing, err := n.Normalize(raw)
		if err != nil {
			rejected++
			log.Warn("candidate rejected by normalizer", port.Fields{
				"source":      raw.Source,
				"external_id": raw.ExternalID,
				"reason":      err.Error(),
			})
			continue
		}
		listings = append(listings, listing)
	}
	return listings, rejected
}

// extractPrice склеивает все группы цифр: "1 200 €/мес" -> 1200.
func extractPrice(s string) (int, bool) {
	groups := digitsRe.FindAllString(s, -1)
	if len(groups) == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(strings.Join(groups, ""))
	if err != nil {
		return 0, false
	}
	return v, true
}

// extractFirstInt берет первую группу цифр: "45 м² (2 этаж)" -> 45.
func extractFirstInt(s string) (int, bool) {
	group := digitsRe.FindString(s)
	if group == "" {
		return 0, false
	}
	v, err := strconv.Atoi(group)
	if err != nil {
		return 0, false
	}
	return v, true
}

func boolOrFalse(v *bool) bool {
	return v != nil && *v
}
