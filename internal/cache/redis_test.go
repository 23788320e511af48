package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewClientFromRedis(rdb, 10*time.Minute), mr
}

func TestDenyToken(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	denied, err := client.IsTokenDenied(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, denied)

	require.NoError(t, client.DenyToken(ctx, "token-1", time.Hour))

	denied, err = client.IsTokenDenied(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, denied)

	// Entry drops out once the remaining token lifetime elapses.
	mr.FastForward(time.Hour + time.Second)

	denied, err = client.IsTokenDenied(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, denied)
}

func TestDenyTokenExpiredLifetime(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	// A token that has already expired needs no denylist entry.
	require.NoError(t, client.DenyToken(ctx, "token-2", -time.Minute))

	denied, err := client.IsTokenDenied(ctx, "token-2")
	require.NoError(t, err)
	assert.False(t, denied)
}

func TestAICacheKey(t *testing.T) {
	payload := []byte(`{"task":"grade_trend","data":{"studentId":5}}`)

	key := AICacheKey(payload)

	assert.Equal(t, key, AICacheKey(payload))
	assert.NotEqual(t, key, AICacheKey([]byte(`{"task":"grade_trend","data":{"studentId":6}}`)))
	assert.Contains(t, key, "ai:analyze:")
}

func TestAIResponseRoundtrip(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	key := AICacheKey([]byte(`{"task":"attendance_summary"}`))

	_, hit, err := client.GetAIResponse(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, client.SetAIResponse(ctx, key, `{"success":true}`))

	val, hit, err := client.GetAIResponse(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, `{"success":true}`, val)

	// Cached answers expire with the configured TTL.
	mr.FastForward(11 * time.Minute)

	_, hit, err = client.GetAIResponse(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
}
