package domain

import (
	"fmt"
	"strings"
)

// SearchCriteria - критерии поиска, неизменяемые в рамках одного запроса.
// Нулевые значения означают "без ограничения".
type SearchCriteria struct {
	Location     string
	PropertyType string
	Rooms        int // минимальный порог: rooms >= N
	MinSurface   int
	MaxSurface   int
	MinPrice     int
	MaxPrice     int
	Bedrooms     int
	Floor        int
	Charges      string // "included" | "excluded"

	// Тройственные флаги: nil - фильтр не задан.
	Furnished *bool
	Balcony   *bool
	Parking   *bool
	Pets      *bool
}

const DefaultPropertyType = "appartement"

// Normalized возвращает копию с заполненными значениями по умолчанию.
func (c SearchCriteria) Normalized() SearchCriteria {
	c.Location = strings.TrimSpace(c.Location)
	if c.PropertyType == "" {
		c.PropertyType = DefaultPropertyType
	}
	if c.Charges == "" {
		c.Charges = "excluded"
	}
	return c
}

// Fingerprint - стабильный ключ критериев. Используется как ключ дедупликации
// фоновых обновлений: два одинаковых промаха кеша запускают один скрейпинг.
func (c SearchCriteria) Fingerprint() string {
	n := c.Normalized()
	var b strings.Builder
	fmt.Fprintf(&b, "loc=%s|type=%s|rooms=%d|surf=%d-%d|price=%d-%d|bed=%d|floor=%d|chg=%s",
		strings.ToLower(n.Location), n.PropertyType, n.Rooms,
		n.MinSurface, n.MaxSurface, n.MinPrice, n.MaxPrice,
		n.Bedrooms, n.Floor, n.Charges)
	for _, f := range []struct {
		name string
		val  *bool
	}{
		{"furn", n.Furnished},
		{"balc", n.Balcony},
		{"park", n.Parking},
		{"pets", n.Pets},
	} {
		if f.val != nil {
			fmt.Fprintf(&b, "|%s=%t", f.name, *f.val)
		}
	}
	return b.String()
}
