package client

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lrucache/internal/cache"
	"lrucache/internal/server"
	"lrucache/pkg/errors"
	"lrucache/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}

func setupClient(t *testing.T, capacity int) *CacheClient {
	t.Helper()
	store, err := cache.NewSynced[string](capacity)
	require.NoError(t, err)
	ts := httptest.NewServer(server.New(store).Handler())
	t.Cleanup(ts.Close)
	return NewCacheClient(ts.URL)
}

func TestClient_HealthCheck(t *testing.T) {
	c := setupClient(t, 2)

	ok, err := c.HealthCheck()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_Scenario(t *testing.T) {
	c := setupClient(t, 3)

	for i, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, c.Put(k, string(rune('0'+i))))
	}

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{Size: 3, Capacity: 3}, stats)

	values, err := c.LRUValues()
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2", "1"}, values)

	v, err := c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	values, err = c.LRUValues()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "2"}, values)

	_, err = c.Get("a")
	assert.ErrorIs(t, err, errors.ErrKeyNotFound)
}

func TestClient_KeysWithReservedCharacters(t *testing.T) {
	c := setupClient(t, 4)

	for _, k := range []string{"db1/users", "a b?c", "x%2Fy"} {
		require.NoError(t, c.Put(k, "v:"+k))
		v, err := c.Get(k)
		require.NoError(t, err)
		assert.Equal(t, "v:"+k, v)
	}

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a b?c", "db1/users", "x%2Fy"}, keys)

	n, err := c.Invalidate("db1/users")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClient_Invalidation(t *testing.T) {
	c := setupClient(t, 10)
	for _, k := range []string{"a", "a.b", "a.a", "b"} {
		require.NoError(t, c.Put(k, k))
	}

	n, err := c.Invalidate("zzz")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = c.InvalidateByPrefix("a")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)

	n, err = c.InvalidateAll()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	keys, err = c.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestClient_ServerError(t *testing.T) {
	c := setupClient(t, 2)

	_, err := c.InvalidateByPrefix("")
	var cerr *CacheError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, http.StatusBadRequest, cerr.StatusCode)
}
