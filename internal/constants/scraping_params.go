package constants

import "time"

// Имена источников
const (
	SourceLeBonCoin = "leboncoin"
	SourceSeLoger   = "seloger"
)

// Ограничения скрейпинга
const (
	// Максимум кандидатов с одного источника за прогон
	MaxCandidatesPerSource = 10

	// Диапазон случайной паузы между обращениями к источнику
	ScrapeDelayMin = 2 * time.Second
	ScrapeDelayMax = 5 * time.Second

	// Потолок одного прогона источника целиком
	SourceScrapeTimeout = 90 * time.Second
)

// Ограничения поиска
const (
	MaxSearchResults = 50
)
