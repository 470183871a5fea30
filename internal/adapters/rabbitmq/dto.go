package rabbitmq

import (
	"apartment-search-service/internal/core/domain"
)

// Имя и версия события для валидации по схеме
const (
	refreshTaskEventName    = "refresh-task"
	refreshTaskEventVersion = "v1"
)

type criteriaDTO struct {
	Location     string `json:"location,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	Rooms        int    `json:"rooms,omitempty"`
	MinSurface   int    `json:"min_surface,omitempty"`
	MaxSurface   int    `json:"max_surface,omitempty"`
	MinPrice     int    `json:"min_price,omitempty"`
	MaxPrice     int    `json:"max_price,omitempty"`
	Bedrooms     int    `json:"bedrooms,omitempty"`
	Floor        int    `json:"floor,omitempty"`
	Charges      string `json:"charges,omitempty"`
	Furnished    *bool  `json:"furnished,omitempty"`
	Balcony      *bool  `json:"balcony,omitempty"`
	Parking      *bool  `json:"parking,omitempty"`
	Pets         *bool  `json:"pets,omitempty"`
}

type refreshTaskMessage struct {
	TaskID      string      `json:"task_id"`
	RequestedAt string      `json:"requested_at,omitempty"`
	Criteria    criteriaDTO `json:"criteria"`
}

func toCriteriaDTO(c domain.SearchCriteria) criteriaDTO {
	return criteriaDTO{
		Location:     c.Location,
		PropertyType: c.PropertyType,
		Rooms:        c.Rooms,
		MinSurface:   c.MinSurface,
		MaxSurface:   c.MaxSurface,
		MinPrice:     c.MinPrice,
		MaxPrice:     c.MaxPrice,
		Bedrooms:     c.Bedrooms,
		Floor:        c.Floor,
		Charges:      c.Charges,
		Furnished:    c.Furnished,
		Balcony:      c.Balcony,
		Parking:      c.Parking,
		Pets:         c.Pets,
	}
}

func (d criteriaDTO) toDomain() domain.SearchCriteria {
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
