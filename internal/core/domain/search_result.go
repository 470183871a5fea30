package domain

// SearchResult - ответ поиска по кешу.
// Cached=false означает промах: вернулись ориентировочные данные,
// а настоящий скрейпинг запущен в фоне.
type SearchResult struct {
	Listings []Listing
	Total    int
	Cached   bool
	Message  string
}

// FavoriteItem - избранное объявление вместе с данными из кеша.
type FavoriteItem struct {
	Listing Listing
	Ref     FavoriteRef
}
