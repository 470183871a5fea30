package domain

// FilterOp - операция сравнения в независимом от хранилища фильтре.
type FilterOp string

const (
	OpEq       FilterOp = "eq"
	OpGte      FilterOp = "gte"
	OpLte      FilterOp = "lte"
	OpContains FilterOp = "contains" // подстрока без учета регистра
)

// FilterClause - одно условие вида field <op> value.
type FilterClause struct {
	Field string
	Op    FilterOp
	Value interface{}
}

// StoreFilter - конъюнкция условий. Пустой фильтр матчит всё.
// В SQL транслируется адаптером хранилища, ядро про SQL не знает.
type StoreFilter struct {
	Clauses []FilterClause
}

func (f *StoreFilter) Add(field string, op FilterOp, value interface{}) {
	f.Clauses = append(f.Clauses, FilterClause{Field: field, Op: op, Value: value})
}

func (f StoreFilter) Empty() bool {
	return len(f.Clauses) == 0
}

// ByID - фильтр по первичному идентификатору.
func ByID(id string) StoreFilter {
	var f StoreFilter
	f.Add("id", OpEq, id)
	return f
}

// ByExternalIdentity - фильтр по паре (source, external_id),
// которой кеш различает объявления разных источников.
func ByExternalIdentity(source, externalID string) StoreFilter {
	var f StoreFilter
	f.Add("source", OpEq, source)
	f.Add("external_id", OpEq, externalID)
	return f
}
