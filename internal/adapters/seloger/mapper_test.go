package seloger

import (
	"encoding/json"
	"testing"
	"time"

	"apartment-search-service/internal/constants"
	"apartment-search-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRawCandidate(t *testing.T) {
	published := "2026-02-10T09:30:00Z"
	raw := toRawCandidate(selogerItem{
		ID:              json.Number("12345"),
		Title:           "Appartement 2 pièces",
		Price:           "1 200 €/mois",
		Surface:         "45 m²",
		Rooms:           json.Number("2"),
		Bedrooms:        json.Number("1"),
		City:            "Paris",
		Zipcode:         "75011",
		Permalink:       "https://www.seloger.com/annonces/12345",
		PublicationDate: published,
		Tags:            []string{"Meublé", "Balcon"},
	})

	assert.Equal(t, constants.SourceSeLoger, raw.Source)
	assert.Equal(t, "12345", raw.ExternalID)
	assert.Equal(t, "1 200 €/mois", raw.RawPrice)
	assert.Equal(t, "Paris, 75011", raw.Address)

	require.NotNil(t, raw.PublishedAt)
	want, _ := time.Parse(time.RFC3339, published)
	assert.Equal(t, want, *raw.PublishedAt)

	require.NotNil(t, raw.Furnished)
	assert.True(t, *raw.Furnished)
	require.NotNil(t, raw.Balcony)
	assert.True(t, *raw.Balcony)
	assert.Nil(t, raw.Parking, "absent tag must stay unset, not false")
}

func TestToRawCandidateMissingFields(t *testing.T) {
	raw := toRawCandidate(selogerItem{Title: "Minimal"})

	assert.Empty(t, raw.ExternalID)
	assert.Empty(t, raw.RawRooms)
	assert.Nil(t, raw.PublishedAt)
	assert.Empty(t, raw.Address)
}

func TestBuildURLFromCriteria(t *testing.T) {
	a, err := NewSeLogerAdapter("https://www.seloger.com/search-bff/api/externalsearch")
	require.NoError(t, err)

	u, err := a.buildURLFromCriteria(domain.SearchCriteria{
		Location: "Paris",
		MinPrice: 1000,
		MaxPrice: 1500,
		Rooms:    2,
	})
	require.NoError(t, err)
	assert.Contains(t, u, "projects=1")
	assert.Contains(t, u, "types=appartement")
	assert.Contains(t, u, "places=Paris")
	assert.Contains(t, u, "price=1000%2F1500")
	assert.Contains(t, u, "rooms=2")
}
