package queryplanner

import (
	"apartment-search-service/internal/core/domain"
)

// Plan переводит критерии поиска в независимый от хранилища фильтр.
// Отсутствующий критерий не дает условия: пустые критерии матчат всё,
// потолок выдачи накладывается на этапе Find.
func Plan(criteria domain.SearchCriteria) domain.StoreFilter {
	c := criteria.Normalized()

	var f domain.StoreFilter

	if c.Location != "" {
		f.Add("address", domain.OpContains, c.Location)
	}
	if c.MinPrice > 0 {
		f.Add("price", domain.OpGte, c.MinPrice)
	}
	if c.MaxPrice > 0 {
		f.Add("price", domain.OpLte, c.MaxPrice)
	}
	if c.MinSurface > 0 {
		f.Add("surface", domain.OpGte, c.MinSurface)
	}
	if c.MaxSurface > 0 {
		f.Add("surface", domain.OpLte, c.MaxSurface)
	}
	// Порог, а не точное совпадение: rooms >= N дает полноту выдачи
	if c.Rooms > 0 {
		f.Add("rooms", domain.OpGte, c.Rooms)
	}
	if c.Bedrooms > 0 {
		f.Add("bedrooms", domain.OpGte, c.Bedrooms)
	}
	if c.Floor > 0 {
		f.Add("floor", domain.OpEq, c.Floor)
	}

	if c.Furnished != nil {
		f.Add("furnished", domain.OpEq, *c.Furnished)
	}
	if c.Balcony != nil {
		f.Add("balcony", domain.OpEq, *c.Balcony)
	}
	if c.Parking != nil {
		f.Add("parking", domain.OpEq, *c.Parking)
	}
	if c.Pets != nil {
		f.Add("pets", domain.OpEq, *c.Pets)
	}

	return f
}
