package cache

import (
	"context"
	"encoding/json"
	"time"

	"moodlist-svc/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	moodCountsKeyPrefix = "mood_counts:"
	moodCountsTTL       = 5 * time.Minute
)

// MoodCountCache 心情歌曲数量缓存
// client为nil时所有操作降级为未命中，服务不依赖Redis可用
type MoodCountCache struct {
	client *redis.Client
	log    logger.Logger
}

// NewMoodCountCache 创建心情数量缓存
func NewMoodCountCache(client *redis.Client, log logger.Logger) *MoodCountCache {
	return &MoodCountCache{client: client, log: log}
}

// Get 读取用户的心情数量统计，未命中或缓存不可用返回nil
func (c *MoodCountCache) Get(ctx context.Context, userID string) map[string]int {
	if c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, moodCountsKeyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("failed to read mood counts cache", logger.String("user_id", userID), logger.Error(err))
		}
		return nil
	}
	var counts map[string]int
	if err := json.Unmarshal(data, &counts); err != nil {
		c.log.Warn("failed to decode mood counts cache", logger.String("user_id", userID), logger.Error(err))
		return nil
	}
	return counts
}

// Set 写入用户的心情数量统计
func (c *MoodCountCache) Set(ctx context.Context, userID string, counts map[string]int) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, moodCountsKeyPrefix+userID, data, moodCountsTTL).Err(); err != nil {
		c.log.Warn("failed to write mood counts cache", logger.String("user_id", userID), logger.Error(err))
	}
}

// Invalidate 歌曲或标签变更后清除用户的统计缓存
func (c *MoodCountCache) Invalidate(ctx context.Context, userID string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, moodCountsKeyPrefix+userID).Err(); err != nil {
		c.log.Warn("failed to invalidate mood counts cache", logger.String("user_id", userID), logger.Error(err))
	}
}
