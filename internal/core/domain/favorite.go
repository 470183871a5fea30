package domain

import "time"

// FavoriteRef - ссылка на сохраненное пользователем объявление.
type FavoriteRef struct {
	ListingID string
	AddedAt   time.Time
}
