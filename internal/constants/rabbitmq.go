package constants

// Имена очередей
const (
	QueueRefreshTasks = "listing_refresh_tasks"
)

// Обменники и ключи маршрутизации
const (
	RefreshExchange       = "apartment_search_events"
	RoutingKeyRefreshTask = "search.refresh.task"
)
