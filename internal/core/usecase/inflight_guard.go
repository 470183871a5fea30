package usecase

import (
	"sync"
	"time"
)

// inflightGuard дедуплицирует фоновые обновления: два одновременных промаха
// кеша с одинаковыми критериями запускают один скрейпинг, а не два.
// Записи стареют по TTL, поэтому зависшая или потерянная задача
// не блокирует обновления навсегда.
type inflightGuard struct {
	mu      sync.Mutex
	ttl     time.Duration
	started map[string]time.Time
	now     func() time.Time
}

func newInflightGuard(ttl time.Duration) *inflightGuard {
	return &inflightGuard{
		ttl:     ttl,
		started: make(map[string]time.Time),
		now:     time.Now,
	}
}

// TryAcquire помечает обновление по отпечатку критериев запущенным,
// если оно еще не идет (или просрочено). Возвращенный токен предъявляется
// при освобождении: Release с чужим токеном слот не трогает.
func (g *inflightGuard) TryAcquire(fingerprint string) (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if startedAt, ok := g.started[fingerprint]; ok && g.now().Sub(startedAt) < g.ttl {
		return time.Time{}, false
	}
	token := g.now()
	g.started[fingerprint] = token
	return token, true
}

// Release снимает пометку, только если слот все еще принадлежит этому
// захвату. Опоздавший таймер просроченной записи не должен освобождать
// слот, перезанятый следующим обновлением.
func (g *inflightGuard) Release(fingerprint string, token time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if startedAt, ok := g.started[fingerprint]; ok && startedAt.Equal(token) {
		delete(g.started, fingerprint)
	}
}
