package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInflightGuardDeduplicates(t *testing.T) {
	g := newInflightGuard(time.Minute)

	_, ok := g.TryAcquire("fp")
	assert.True(t, ok)
	_, ok = g.TryAcquire("fp")
	assert.False(t, ok)
	_, ok = g.TryAcquire("other")
	assert.True(t, ok)
}

func TestInflightGuardReleaseAllowsReacquire(t *testing.T) {
	g := newInflightGuard(time.Minute)

	token, ok := g.TryAcquire("fp")
	require.True(t, ok)
	g.Release("fp", token)
	_, ok = g.TryAcquire("fp")
	assert.True(t, ok)
}

func TestInflightGuardEntriesExpire(t *testing.T) {
	g := newInflightGuard(time.Minute)
	current := time.Now()
	g.now = func() time.Time { return current }

	_, ok := g.TryAcquire("fp")
	require.True(t, ok)

	current = current.Add(30 * time.Second)
	_, ok = g.TryAcquire("fp")
	assert.False(t, ok, "entry within ttl must block")

	current = current.Add(31 * time.Second)
	_, ok = g.TryAcquire("fp")
	assert.True(t, ok, "expired entry must not block forever")
}

func TestInflightGuardStaleReleaseKeepsSuccessorSlot(t *testing.T) {
	g := newInflightGuard(time.Minute)
	current := time.Now()
	g.now = func() time.Time { return current }

	staleToken, ok := g.TryAcquire("fp")
	require.True(t, ok)

	// Первая запись просрочилась, слот перезанят следующим обновлением
	current = current.Add(2 * time.Minute)
	_, ok = g.TryAcquire("fp")
	require.True(t, ok)

	// Опоздавший таймер первого захвата не должен снимать чужую пометку
	g.Release("fp", staleToken)
	_, ok = g.TryAcquire("fp")
	assert.False(t, ok, "successor's slot must survive a stale release")
}
