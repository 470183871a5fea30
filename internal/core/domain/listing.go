package domain

import (
	"time"
)

// Listing - каноническое объявление об аренде квартиры после нормализации.
// ID назначается один раз при первой вставке и больше не меняется.
type Listing struct {
	ID          string
	Title       string
	Price       int // €/месяц
	Surface     int // м²
	Rooms       int
	Bedrooms    int
	Address     string
	Description string
	Images      []string
	Source      string
	PublishedAt time.Time

	Furnished bool
	Balcony   bool
	Parking   bool
	Pets      bool
	Charges   int
	Floor     int

	// Идентичность записи на стороне источника. Может отсутствовать,
	// тогда объявление всегда вставляется как новое.
	ExternalID string
	URL        string
}

// RawCandidate - сырой кандидат из адаптера источника, до нормализации.
// Все поля опциональны, приведением типов занимается Normalizer.
type RawCandidate struct {
	Title       string
	RawPrice    string
	RawSurface  string
	RawRooms    string
	RawBedrooms string
	Address     string
	Description string
	Images      []string

	Source     string
	ExternalID string
	URL        string

	PublishedAt *time.Time

	Furnished *bool
	Balcony   *bool
	Parking   *bool
	Pets      *bool

	RawCharges string
	RawFloor   string
}

// ReconcileStats - итог сверки партии объявлений с кешем.
type ReconcileStats struct {
	Inserted int
	Updated  int
	Failed   int
}

func (s *ReconcileStats) Add(o ReconcileOutcome) {
	switch o {
	case OutcomeInserted:
		s.Inserted++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeFailed:
		s.Failed++
	}
}

type ReconcileOutcome int

const (
	OutcomeInserted ReconcileOutcome = iota
	OutcomeUpdated
	OutcomeFailed
)
