package domain

import (
	"errors"
	"fmt"
)

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("favorite already exists")
)

// Причины отбраковки кандидата нормализатором. Кандидат с такой ошибкой
// не попадает в хранилище, он только считается и логируется.
var (
	ErrNoParsablePrice   = errors.New("no parsable price")
	ErrNoParsableSurface = errors.New("no parsable surface")
	ErrNoParsableRooms   = errors.New("no parsable rooms")
	ErrEmptySource       = errors.New("empty source name")
)

// SourceError - отказ одного источника. Оркестратор изолирует его,
// не прерывая работу остальных адаптеров.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func NewSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}

// StoreError - отказ хранилища при обработке одной записи.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
