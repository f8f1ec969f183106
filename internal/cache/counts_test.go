package cache

import (
	"context"
	"io"
	"testing"

	"moodlist-svc/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestCache(t *testing.T) (*MoodCountCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewMoodCountCache(client, logger.New(io.Discard, logger.ErrorLevel)), mr
}

func TestMoodCountCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	counts := map[string]int{"mood-happy": 3, "mood-sad": 0}
	c.Set(ctx, "user1", counts)

	got := c.Get(ctx, "user1")
	assert.Equal(t, counts, got)
}

func TestMoodCountCache_MissReturnsNil(t *testing.T) {
	c, _ := newTestCache(t)

	assert.Nil(t, c.Get(context.Background(), "nobody"))
}

func TestMoodCountCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "user1", map[string]int{"mood-happy": 1})
	c.Invalidate(ctx, "user1")

	assert.Nil(t, c.Get(ctx, "user1"))
}

func TestMoodCountCache_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "user1", map[string]int{"mood-happy": 1})
	mr.FastForward(moodCountsTTL + 1)

	assert.Nil(t, c.Get(ctx, "user1"))
}

func TestMoodCountCache_NilClientDegrades(t *testing.T) {
	c := NewMoodCountCache(nil, logger.New(io.Discard, logger.ErrorLevel))
	ctx := context.Background()

	// 未配置Redis时全部操作安静降级
	c.Set(ctx, "user1", map[string]int{"mood-happy": 1})
	assert.Nil(t, c.Get(ctx, "user1"))
	c.Invalidate(ctx, "user1")
}
