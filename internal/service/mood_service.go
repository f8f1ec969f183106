package service

import (
	"context"

	"moodlist-svc/internal/domain"
	"moodlist-svc/internal/repository"
)

// MoodService 心情标签服务
type MoodService struct {
	moodRepo repository.MoodRepository
}

// NewMoodService 创建心情标签服务
func NewMoodService(moodRepo repository.MoodRepository) *MoodService {
	return &MoodService{moodRepo: moodRepo}
}

// ListMoods 获取全部心情标签
func (s *MoodService) ListMoods(ctx context.Context) ([]*domain.Mood, error) {
	return s.moodRepo.List(ctx)
}

// GetMood 获取单个心情标签
func (s *MoodService) GetMood(ctx context.Context, id string) (*domain.Mood, error) {
	if id == "" {
		return nil, domain.ErrInvalidMoodID
	}
	return s.moodRepo.GetByID(ctx, id)
}
