package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(true)
	c.Set("k", "v", time.Minute)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(true)
	c.Set("k", "v", -time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDisabledIsNoOp(t *testing.T) {
	c := New(false)
	c.Set("k", "v", time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, false, stats["enabled"])
	assert.Equal(t, 0, stats["total_keys"])
}

func TestClear(t *testing.T) {
	c := New(true)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Clear()

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats()["total_keys"])
}

func TestStatsCountsExpired(t *testing.T) {
	c := New(true)
	c.Set("live", 1, time.Minute)
	c.Set("dead", 2, -time.Second)

	stats := c.Stats()
	assert.Equal(t, 2, stats["total_keys"])
	assert.Equal(t, 1, stats["active_keys"])
	assert.Equal(t, 1, stats["expired_keys"])
}

func TestEvictDropsExpiredOnly(t *testing.T) {
	c := New(true)
	c.Set("live", 1, time.Minute)
	c.Set("dead", 2, -time.Second)
	c.evict()

	assert.Equal(t, 1, c.Stats()["total_keys"])
	_, ok := c.Get("live")
	assert.True(t, ok)
}

func TestComputeETag(t *testing.T) {
	a := ComputeETag([]byte(`{"team":"chiefs"}`))
	b := ComputeETag([]byte(`{"team":"chiefs"}`))
	other := ComputeETag([]byte(`{"team":"raiders"}`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.True(t, len(a) > 4 && a[:3] == `W/"`, "weak ETag format: %s", a)
}

func TestCheckETagMatch(t *testing.T) {
	etag := ComputeETag([]byte("x"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}
