package redis_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utmcookie/core/utm"
	"github.com/dmitrymomot/utmcookie/integration/database/redis"
)

func newClient(t *testing.T) (*miniredis.Miniredis, goredis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func touch(source string) utm.Touch {
	return utm.Touch{
		ID:       uuid.New(),
		Cookie:   "utm",
		Params:   map[string]string{utm.KeySource: source},
		URL:      "/?utm_source=" + source,
		ClientIP: "203.0.113.7",
		At:       time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}
}

func TestTouchRecorder(t *testing.T) {
	t.Parallel()

	t.Run("records newest first", func(t *testing.T) {
		ctx := context.Background()
		_, client := newClient(t)
		rec := redis.NewTouchRecorder(client)

		first, second := touch("google"), touch("newsletter")
		require.NoError(t, rec.Record(ctx, first))
		require.NoError(t, rec.Record(ctx, second))

		got, err := rec.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, "newsletter", got[0].Params[utm.KeySource])
		assert.Equal(t, first.ID, got[1].ID)
		assert.True(t, first.At.Equal(got[1].At))
	})

	t.Run("list is capped", func(t *testing.T) {
		ctx := context.Background()
		mr, client := newClient(t)
		rec := redis.NewTouchRecorder(client, redis.WithTouchKey("touches"), redis.WithTouchMaxLen(3))

		for i := 0; i < 5; i++ {
			require.NoError(t, rec.Record(ctx, touch(fmt.Sprintf("s%d", i))))
		}

		items, err := mr.List("touches")
		require.NoError(t, err)
		assert.Len(t, items, 3)

		got, err := rec.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "s4", got[0].Params[utm.KeySource])
		assert.Equal(t, "s2", got[2].Params[utm.KeySource])
	})

	t.Run("ttl applied", func(t *testing.T) {
		ctx := context.Background()
		mr, client := newClient(t)
		rec := redis.NewTouchRecorderFromConfig(client, redis.Config{
			TouchKey:    "utm:log",
			TouchMaxLen: 100,
			TouchTTL:    time.Hour,
		})

		require.NoError(t, rec.Record(ctx, touch("ads")))
		assert.Equal(t, time.Hour, mr.TTL("utm:log"))
	})

	t.Run("recent with non-positive count", func(t *testing.T) {
		_, client := newClient(t)
		got, err := redis.NewTouchRecorder(client).Recent(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("server failure is wrapped", func(t *testing.T) {
		mr, client := newClient(t)
		mr.Close()

		err := redis.NewTouchRecorder(client).Record(context.Background(), touch("x"))
		assert.ErrorIs(t, err, redis.ErrFailedToRecordTouch)
	})
}

func TestTouchRecorder_WithStore(t *testing.T) {
	t.Parallel()

	_, client := newClient(t)
	rec := redis.NewTouchRecorder(client)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/?utm_source=google&utm_medium=cpc", nil)
	store := utm.New(w, r, utm.WithRecorder(rec))
	require.NoError(t, store.Sync())

	got, err := rec.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]string{"utm_source": "google", "utm_medium": "cpc"}, got[0].Params)
	assert.Equal(t, "utm", got[0].Cookie)
}
