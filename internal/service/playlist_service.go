package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"moodlist-svc/internal/cache"
	"moodlist-svc/internal/domain"
	"moodlist-svc/internal/repository"
	"moodlist-svc/pkg/logger"

	"github.com/google/uuid"
)

// PlaylistService 歌单生成与管理服务
type PlaylistService struct {
	playlistRepo     repository.PlaylistRepository
	playlistSongRepo repository.PlaylistSongRepository
	songRepo         repository.SongRepository
	moodRepo         repository.MoodRepository
	songMoodRepo     repository.SongMoodRepository
	countCache       *cache.MoodCountCache
	log              logger.Logger
}

// NewPlaylistService 创建歌单服务
func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	playlistSongRepo repository.PlaylistSongRepository,
	songRepo repository.SongRepository,
	moodRepo repository.MoodRepository,
	songMoodRepo repository.SongMoodRepository,
	countCache *cache.MoodCountCache,
	log logger.Logger,
) *PlaylistService {
	return &PlaylistService{
		playlistRepo:     playlistRepo,
		playlistSongRepo: playlistSongRepo,
		songRepo:         songRepo,
		moodRepo:         moodRepo,
		songMoodRepo:     songMoodRepo,
		countCache:       countCache,
		log:              log,
	}
}

// Generate 按心情随机生成歌单
// 候选不足请求数量时取全部；候选为空直接失败，不落任何记录
func (s *PlaylistService) Generate(ctx context.Context, userID, moodID, name string, songCount int) (*domain.Playlist, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	if moodID == "" {
		return nil, domain.ErrInvalidMoodID
	}
	if err := domain.ValidateSongCount(songCount); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name != "" {
		if err := domain.ValidatePlaylistName(name); err != nil {
			return nil, err
		}
	}

	mood, err := s.moodRepo.GetByID(ctx, moodID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.songRepo.ListByUserAndMood(ctx, userID, moodID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoEligibleSongs
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	take := songCount
	if take > len(candidates) {
		take = len(candidates)
	}
	selected := candidates[:take]

	now := time.Now()
	if name == "" {
		name = fmt.Sprintf("%s Playlist - %s", mood.Name, now.Format("2006-01-02 15:04"))
	}

	playlist := &domain.Playlist{
		ID:          uuid.New().String(),
		UserID:      userID,
		MoodID:      moodID,
		Name:        name,
		GeneratedAt: now,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}

	associations := make([]*domain.PlaylistSong, 0, take)
	for i, song := range selected {
		associations = append(associations, &domain.PlaylistSong{
			PlaylistID: playlist.ID,
			SongID:     song.ID,
			Position:   i + 1,
		})
	}
	if err := s.playlistSongRepo.AddBatch(ctx, associations); err != nil {
		// 空歌单留给定时清理任务回收
		s.log.Error("failed to attach songs to playlist",
			logger.String("playlist_id", playlist.ID),
			logger.String("user_id", userID),
			logger.Error(err))
		return nil, err
	}

	return s.GetPlaylist(ctx, playlist.ID, userID)
}

// GetPlaylist 获取歌单详情，歌曲按position升序
func (s *PlaylistService) GetPlaylist(ctx context.Context, id, userID string) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	songs, err := s.playlistSongRepo.ListByPlaylist(ctx, playlist.ID)
	if err != nil {
		return nil, err
	}
	playlist.Songs = songs
	playlist.SongCount = len(songs)
	return playlist, nil
}

// ListUserPlaylists 获取用户歌单列表，按生成时间倒序
func (s *PlaylistService) ListUserPlaylists(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	return s.playlistRepo.ListByUser(ctx, userID)
}

// RenamePlaylist 重命名歌单
func (s *PlaylistService) RenamePlaylist(ctx context.Context, id, userID, name string) error {
	name = strings.TrimSpace(name)
	if err := domain.ValidatePlaylistName(name); err != nil {
		return err
	}
	ok, err := s.playlistRepo.UpdateName(ctx, id, userID, name)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

// DeletePlaylist 删除歌单，关联行随之删除，歌曲本身不受影响
func (s *PlaylistService) DeletePlaylist(ctx context.Context, id, userID string) error {
	ok, err := s.playlistRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

// CountSongsPerMood 统计用户每个心情标签下的歌曲数量，无歌曲的标签计为0
func (s *PlaylistService) CountSongsPerMood(ctx context.Context, userID string) (map[string]int, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	if cached := s.countCache.Get(ctx, userID); cached != nil {
		return cached, nil
	}

	counts, err := s.songMoodRepo.CountByMoodForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	moods, err := s.moodRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string]int, len(moods))
	for _, mood := range moods {
		result[mood.ID] = counts[mood.ID]
	}

	s.countCache.Set(ctx, userID, result)
	return result, nil
}
