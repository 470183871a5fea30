package rest

import (
	"time"

	"apartment-search-service/internal/core/domain"
)

// SearchRequestDTO - тело POST /search. Отсутствующее поле - нет ограничения.
type SearchRequestDTO struct {
	Location     string `json:"location"`
	PropertyType string `json:"property_type"`
	Rooms        int    `json:"rooms"`
	MinSurface   int    `json:"min_surface"`
	MaxSurface   int    `json:"max_surface"`
	MinPrice     int    `json:"min_price"`
	MaxPrice     int    `json:"max_price"`
	Bedrooms     int    `json:"bedrooms"`
	Floor        int    `json:"floor"`
	Charges      string `json:"charges"`
	Furnished    *bool  `json:"furnished"`
	Balcony      *bool  `json:"balcony"`
	Parking      *bool  `json:"parking"`
	Pets         *bool  `json:"pets"`
}

func (d SearchRequestDTO) toDomain() domain.SearchCriteria {
	return domain.SearchCriteria{
		Location:     d.Location,
		PropertyType: d.PropertyType,
		Rooms:        d.Rooms,
		MinSurface:   d.MinSurface,
		MaxSurface:   d.MaxSurface,
		MinPrice:     d.MinPrice,
		MaxPrice:     d.MaxPrice,
		Bedrooms:     d.Bedrooms,
		Floor:        d.Floor,
		Charges:      d.Charges,
		Furnished:    d.Furnished,
		Balcony:      d.Balcony,
		Parking:      d.Parking,
		Pets:         d.Pets,
	}
}

type ListingDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       int       `json:"price"`
	Surface     int       `json:"surface"`
	Rooms       int       `json:"rooms"`
	Bedrooms    int       `json:"bedrooms"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Furnished   bool      `json:"furnished"`
	Balcony     bool      `json:"balcony"`
	Parking     bool      `json:"parking"`
	Pets        bool      `json:"pets"`
	Charges     int       `json:"charges"`
	Floor       int       `json:"floor"`
	URL         string    `json:"url,omitempty"`
}

func toListingDTO(l domain.Listing) ListingDTO {
	return ListingDTO{
		ID:          l.ID,
		Title:       l.Title,
		Price:       l.Price,
		Surface:     l.Surface,
		Rooms:       l.Rooms,
		Bedrooms:    l.Bedrooms,
		Address:     l.Address,
		Description: l.Description,
		Images:      l.Images,
		Source:      l.Source,
		PublishedAt: l.PublishedAt,
		Furnished:   l.Furnished,
		Balcony:     l.Balcony,
		Parking:     l.Parking,
		Pets:        l.Pets,
		Charges:     l.Charges,
		Floor:       l.Floor,
		URL:         l.URL,
	}
}

func toListingDTOs(listings []domain.Listing) []ListingDTO {
	dtos := make([]ListingDTO, 0, len(listings))
	for _, l := range listings {
		dtos = append(dtos, toListingDTO(l))
	}
	return dtos
}

type SearchResponseDTO struct {
	Listings []ListingDTO `json:"listings"`
	Total    int          `json:"total"`
	Cached   bool         `json:"cached"`
	Message  string       `json:"message,omitempty"`
}

type FavoriteDTO struct {
	Listing ListingDTO `json:"listing"`
	AddedAt time.Time  `json:"added_at"`
}
