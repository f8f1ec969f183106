package cron

import (
	"context"
	"time"

	"moodlist-svc/internal/service"
	"moodlist-svc/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronManager 定时任务管理器
type CronManager struct {
	cron           *cron.Cron
	cleanupService *service.CleanupService
	schedule       string
	log            logger.Logger
}

// NewCronManager 创建定时任务管理器
func NewCronManager(cleanupService *service.CleanupService, schedule string, log logger.Logger) *CronManager {
	return &CronManager{
		cron:           cron.New(cron.WithLocation(time.Local)),
		cleanupService: cleanupService,
		schedule:       schedule,
		log:            log,
	}
}

// Start 启动定时任务
func (m *CronManager) Start() error {
	_, err := m.cron.AddFunc(m.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		startTime := time.Now()
		removed, err := m.cleanupService.RemoveOrphanPlaylists(ctx)
		if err != nil {
			m.log.Error("scheduled cleanup job failed", logger.Error(err))
			return
		}
		m.log.Info("scheduled cleanup job completed",
			logger.Int64("removed", removed),
			logger.Duration("duration", time.Since(startTime)))
	})
	if err != nil {
		return err
	}

	m.cron.Start()
	m.log.Info("cron manager started", logger.String("schedule", m.schedule))
	return nil
}

// Stop 停止定时任务
func (m *CronManager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done() // 等待所有任务完成
	m.log.Info("cron manager stopped")
}

// RunCleanupNow 立即执行清理任务（用于测试或手动触发）
func (m *CronManager) RunCleanupNow(ctx context.Context) (int64, error) {
	return m.cleanupService.RemoveOrphanPlaylists(ctx)
}
