package seloger

import (
	"encoding/json"
	"strings"
	"time"

	"apartment-search-service/internal/constants"
	"apartment-search-service/internal/core/domain"
)

type selogerSearchResponse struct {
	Items []selogerItem `json:"items"`
}

type selogerItem struct {
	ID              json.Number `json:"id"`
	Title           string      `json:"title"`
	Price           string      `json:"pricing"`
	ChargesIncluded string      `json:"chargesIncluded"`
	Surface         string      `json:"surface"`
	Rooms           json.Number `json:"rooms"`
	Bedrooms        json.Number `json:"bedrooms"`
	Floor           json.Number `json:"floor"`
	City            string      `json:"city"`
	Zipcode         string      `json:"zipcode"`
	Description     string      `json:"description"`
	Photos          []string    `json:"photos"`
	Permalink       string      `json:"permalink"`
	PublicationDate string      `json:"publicationDate"`
	Tags            []string    `json:"tags"`
}

// toRawCandidate переносит поля ответа как есть, приведение типов -
// забота нормализатора.
func toRawCandidate(item selogerItem) domain.RawCandidate {
	raw := domain.RawCandidate{
		Title:       item.Title,
		RawPrice:    item.Price,
		RawSurface:  item.Surface,
		RawRooms:    item.Rooms.String(),
		RawBedrooms: item.Bedrooms.String(),
		RawFloor:    item.Floor.String(),
		Address:     joinAddress(item.City, item.Zipcode),
		Description: item.Description,
		Images:      item.Photos,
		Source:      constants.SourceSeLoger,
		ExternalID:  item.ID.String(),
		URL:         item.Permalink,
	}

	if ts, err := time.Parse(time.RFC3339, item.PublicationDate); err == nil {
		raw.PublishedAt = &ts
	}

	// Теги вида "meublé"/"balcon" - единственный источник флагов в выдаче
	for _, tag := range item.Tags {
		switch strings.ToLower(tag) {
		case "meublé", "furnished":
			raw.Furnished = boolPtr(true)
		case "balcon", "balcony", "terrasse":
			raw.Balcony = boolPtr(true)
		case "parking", "garage":
			raw.Parking = boolPtr(true)
		case "animaux acceptés", "pets allowed":
			raw.Pets = boolPtr(true)
		}
	}

	return raw
}

func joinAddress(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

func boolPtr(v bool) *bool { return &v }
