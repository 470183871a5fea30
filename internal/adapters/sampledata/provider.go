package sampledata

import (
	"strings"
	"time"

	"apartment-search-service/internal/core/domain"
)

// Provider отдает ориентировочные объявления для ответа на промах кеша.
// Данные не настоящие и в кеш не попадают: их единственная задача -
// показать форму ответа, пока фоновый скрейпинг не наполнил хранилище.
type Provider struct {
	now func() time.Time
}

func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

func (p *Provider) Listings(criteria domain.SearchCriteria) []domain.Listing {
	all := p.catalog()

	matched := make([]domain.Listing, 0, len(all))
	for _, l := range all {
		if matchesCriteria(l, criteria) {
			matched = append(matched, l)
		}
	}
	// Слишком узкие критерии: лучше показать хоть что-то, чем пустой ответ
	if len(matched) == 0 {
		return all
	}
	return matched
}

func matchesCriteria(l domain.Listing, c domain.SearchCriteria) bool {
	if c.Location != "" && !strings.Contains(strings.ToLower(l.Address), strings.ToLower(c.Location)) {
		return false
	}
	if c.MinPrice > 0 && l.Price < c.MinPrice {
		return false
	}
	if c.MaxPrice > 0 && l.Price > c.MaxPrice {
		return false
	}
	if c.MinSurface > 0 && l.Surface < c.MinSurface {
		return false
	}
	if c.MaxSurface > 0 && l.Surface > c.MaxSurface {
		return false
	}
	if c.Rooms > 0 && l.Rooms < c.Rooms {
		return false
	}
	return true
}

func (p *Provider) catalog() []domain.Listing {
	published := p.now().Add(-24 * time.Hour)
	return []domain.Listing{
		{
			ID:          "sample-1",
			Title:       "Bel appartement 2 pièces au coeur de Paris",
			Price:       1200,
			Surface:     45,
			Rooms:       2,
			Bedrooms:    1,
			Address:     "Rue de Rivoli, 75001 Paris",
			Description: "Charmant appartement lumineux, proche métro et commerces",
			Source:      "sample",
			PublishedAt: published,
			Furnished:   true,
		},
		{
			ID:          "sample-2",
			Title:       "Studio étudiant quartier latin",
			Price:       850,
			Surface:     25,
			Rooms:       1,
			Address:     "Boulevard Saint-Michel, 75005 Paris",
			Description: "Studio rénové, idéal étudiant, charges comprises",
			Source:      "sample",
			PublishedAt: published,
			Charges:     50,
		},
		{
			ID:          "sample-3",
			Title:       "Grand 3 pièces avec balcon",
			Price:       1800,
			Surface:     72,
			Rooms:       3,
			Bedrooms:    2,
			Address:     "Avenue Jean-Baptiste Clément, Boulogne-Billancourt",
			Description: "Appartement familial avec balcon et parking en sous-sol",
			Source:      "sample",
			PublishedAt: published,
			Balcony:     true,
			Parking:     true,
		},
	}
}
