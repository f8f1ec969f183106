package service

import (
	"context"
	"time"

	"moodlist-svc/internal/repository"
	"moodlist-svc/pkg/logger"
)

// CleanupService 歌单孤儿记录清理服务
// 歌单行落库后关联写入失败会留下空歌单，定时回收
type CleanupService struct {
	playlistRepo repository.PlaylistRepository
	minAge       time.Duration
	log          logger.Logger
}

// NewCleanupService 创建清理服务
func NewCleanupService(playlistRepo repository.PlaylistRepository, minAge time.Duration, log logger.Logger) *CleanupService {
	return &CleanupService{
		playlistRepo: playlistRepo,
		minAge:       minAge,
		log:          log,
	}
}

// RemoveOrphanPlaylists 删除超过最小存活时间且没有歌曲关联的歌单
// minAge避免误删正在写入关联的新歌单
func (s *CleanupService) RemoveOrphanPlaylists(ctx context.Context) (int64, error) {
	before := time.Now().Add(-s.minAge)
	removed, err := s.playlistRepo.DeleteOrphans(ctx, before)
	if err != nil {
		s.log.Error("orphan playlist cleanup failed", logger.Error(err))
		return 0, err
	}
	if removed > 0 {
		s.log.Info("orphan playlists removed", logger.Int64("count", removed))
	}
	return removed, nil
}
