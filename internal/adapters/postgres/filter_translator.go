package postgres

import (
	"fmt"
	"strings"

	"apartment-search-service/internal/core/domain"
)

// Соответствие полей доменного фильтра колонкам таблицы listings.
// Неизвестное поле - ошибка трансляции, а не тихий пропуск условия.
var listingColumns = map[string]string{
	"id":           "id",
	"title":        "title",
	"price":        "price",
	"surface":      "surface",
	"rooms":        "rooms",
	"bedrooms":     "bedrooms",
	"address":      "address",
	"source":       "source",
	"external_id":  "external_id",
	"furnished":    "furnished",
	"balcony":      "balcony",
	"parking":      "parking",
	"pets":         "pets",
	"charges":      "charges",
	"floor":        "floor_number",
	"published_at": "published_at",
}

type filterTranslator struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newFilterTranslator() *filterTranslator {
	return &filterTranslator{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (t *filterTranslator) addCondition(condition string, column string, arg interface{}) {
	t.conditions = append(t.conditions, fmt.Sprintf(condition, column, t.argId))
	t.args = append(t.args, arg)
	t.argId++
}

// translateFilter строит WHERE-часть из доменного фильтра.
// Пустой фильтр дает пустую строку: запрос без ограничений.
func translateFilter(filter domain.StoreFilter) (string, []interface{}, error) {
	t := newFilterTranslator()

	for _, clause := range filter.Clauses {
		column, ok := listingColumns[clause.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown filter field %q", clause.Field)
		}

		switch clause.Op {
		case domain.OpEq:
			t.addCondition("%s = $%d", column, clause.Value)
		case domain.OpGte:
			t.addCondition("%s >= $%d", column, clause.Value)
		case domain.OpLte:
			t.addCondition("%s <= $%d", column, clause.Value)
		case domain.OpContains:
			t.addCondition("%s ILIKE $%d", column, fmt.Sprintf("%%%v%%", clause.Value))
		default:
			return "", nil, fmt.Errorf("unsupported filter op %q", clause.Op)
		}
	}

	if len(t.conditions) == 0 {
		return "", t.args, nil
	}
	return "WHERE " + strings.Join(t.conditions, " AND "), t.args, nil
}
