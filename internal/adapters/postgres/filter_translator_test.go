package postgres

import (
	"testing"

	"apartment-search-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateEmptyFilter(t *testing.T) {
	where, args, err := translateFilter(domain.StoreFilter{})

	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestTranslateConjunction(t *testing.T) {
	var f domain.StoreFilter
	f.Add("price", domain.OpGte, 1000)
	f.Add("price", domain.OpLte, 1500)
	f.Add("rooms", domain.OpGte, 2)

	where, args, err := translateFilter(f)

	require.NoError(t, err)
	assert.Equal(t, "WHERE price >= $1 AND price <= $2 AND rooms >= $3", where)
	assert.Equal(t, []interface{}{1000, 1500, 2}, args)
}

func TestTranslateContainsUsesILike(t *testing.T) {
	var f domain.StoreFilter
	f.Add("address", domain.OpContains, "Paris")

	where, args, err := translateFilter(f)

	require.NoError(t, err)
	assert.Equal(t, "WHERE address ILIKE $1", where)
	assert.Equal(t, []interface{}{"%Paris%"}, args)
}

func TestTranslateMapsFloorToColumnName(t *testing.T) {
	var f domain.StoreFilter
	f.Add("floor", domain.OpEq, 3)

	where, _, err := translateFilter(f)

	require.NoError(t, err)
	assert.Equal(t, "WHERE floor_number = $1", where)
}

func TestTranslateRejectsUnknownField(t *testing.T) {
	var f domain.StoreFilter
	f.Add("salary", domain.OpEq, 1)

	_, _, err := translateFilter(f)
	require.Error(t, err)
}

func TestTranslateRejectsUnknownOp(t *testing.T) {
	var f domain.StoreFilter
	f.Add("price", domain.FilterOp("between"), 1)

	_, _, err := translateFilter(f)
	require.Error(t, err)
}

func TestTranslateExternalIdentity(t *testing.T) {
	where, args, err := translateFilter(domain.ByExternalIdentity("leboncoin", "42"))

	require.NoError(t, err)
	assert.Equal(t, "WHERE source = $1 AND external_id = $2", where)
	assert.Equal(t, []interface{}{"leboncoin", "42"}, args)
}
