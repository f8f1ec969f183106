package service

import (
	"context"
	"io"
	"strings"
	"time"

	"moodlist-svc/internal/cache"
	"moodlist-svc/internal/domain"
	"moodlist-svc/internal/repository"
	"moodlist-svc/internal/service/media"
	"moodlist-svc/pkg/logger"

	"github.com/google/uuid"
)

// SongService 歌曲服务
type SongService struct {
	songRepo     repository.SongRepository
	songMoodRepo repository.SongMoodRepository
	storage      *media.Storage
	countCache   *cache.MoodCountCache
	log          logger.Logger
}

// NewSongService 创建歌曲服务
func NewSongService(
	songRepo repository.SongRepository,
	songMoodRepo repository.SongMoodRepository,
	storage *media.Storage,
	countCache *cache.MoodCountCache,
	log logger.Logger,
) *SongService {
	return &SongService{
		songRepo:     songRepo,
		songMoodRepo: songMoodRepo,
		storage:      storage,
		countCache:   countCache,
		log:          log,
	}
}

// CreateSong 创建歌曲并设置心情标签
func (s *SongService) CreateSong(ctx context.Context, userID, title, artist string, moodIDs []string) (*domain.Song, error) {
	song := &domain.Song{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Artist:    strings.TrimSpace(artist),
		CreatedAt: time.Now(),
	}
	if err := song.Validate(); err != nil {
		return nil, err
	}

	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, err
	}
	if len(moodIDs) > 0 {
		if err := s.songMoodRepo.Replace(ctx, song.ID, moodIDs); err != nil {
			return nil, err
		}
	}

	s.countCache.Invalidate(ctx, userID)
	return s.loadSongMoods(ctx, song)
}

// GetSong 获取歌曲详情，附带心情标签
func (s *SongService) GetSong(ctx context.Context, id, userID string) (*domain.Song, error) {
	if id == "" {
		return nil, domain.ErrInvalidSongID
	}
	song, err := s.songRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.loadSongMoods(ctx, song)
}

// ListUserSongs 获取用户歌曲列表
// moodID非空时按心情标签过滤，否则search非空时按标题或歌手模糊过滤
func (s *SongService) ListUserSongs(ctx context.Context, userID, moodID, search string) ([]*domain.Song, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	var songs []*domain.Song
	var err error
	if moodID != "" {
		songs, err = s.songRepo.ListByUserAndMood(ctx, userID, moodID)
	} else {
		songs, err = s.songRepo.ListByUser(ctx, userID, search)
	}
	if err != nil {
		return nil, err
	}
	for _, song := range songs {
		if _, err := s.loadSongMoods(ctx, song); err != nil {
			return nil, err
		}
	}
	return songs, nil
}

// UpdateSong 更新歌曲信息并整体替换心情标签
func (s *SongService) UpdateSong(ctx context.Context, id, userID, title, artist string, moodIDs []string) (*domain.Song, error) {
	song, err := s.songRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	song.Title = strings.TrimSpace(title)
	song.Artist = strings.TrimSpace(artist)
	if err := song.Validate(); err != nil {
		return nil, err
	}

	if err := s.songRepo.UpdateInfo(ctx, song); err != nil {
		return nil, err
	}
	if err := s.songMoodRepo.Replace(ctx, song.ID, moodIDs); err != nil {
		return nil, err
	}

	s.countCache.Invalidate(ctx, userID)
	return s.loadSongMoods(ctx, song)
}

// DeleteSong 删除歌曲，本地媒体文件尽力清理，清理失败不回滚删除
func (s *SongService) DeleteSong(ctx context.Context, id, userID string) error {
	song, err := s.songRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.songRepo.Delete(ctx, song.ID); err != nil {
		return err
	}
	if song.Media.IsLocal() {
		s.deleteFileQuietly(song.Media.Local.FilePath)
	}

	s.countCache.Invalidate(ctx, userID)
	return nil
}

// SetLocalMedia 上传并绑定本地媒体文件
// 顺序固定：先写新文件，再更新记录，最后删旧文件；记录更新失败时回收新文件
func (s *SongService) SetLocalMedia(ctx context.Context, id, userID string, r io.Reader, fileName string, declaredSize int64) (*domain.Song, error) {
	song, err := s.songRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	local, err := s.storage.Ingest(ctx, r, fileName, declaredSize, userID)
	if err != nil {
		return nil, err
	}

	oldMedia := song.Media
	song.SetLocal(local)
	if err := s.songRepo.UpdateMedia(ctx, song); err != nil {
		s.deleteFileQuietly(local.FilePath)
		return nil, err
	}

	if oldMedia.IsLocal() {
		s.deleteFileQuietly(oldMedia.Local.FilePath)
	}
	return s.loadSongMoods(ctx, song)
}

// SetRemoteMedia 绑定远程媒体链接，替换下来的本地文件在记录更新成功后清理
func (s *SongService) SetRemoteMedia(ctx context.Context, id, userID, url string) (*domain.Song, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, domain.ErrInvalidRemoteURL
	}

	song, err := s.songRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	oldMedia := song.Media
	song.SetRemote(url)
	if err := s.songRepo.UpdateMedia(ctx, song); err != nil {
		return nil, err
	}

	if oldMedia.IsLocal() {
		s.deleteFileQuietly(oldMedia.Local.FilePath)
	}
	return s.loadSongMoods(ctx, song)
}

// ClearMedia 清除媒体引用，对未设置媒体的歌曲重复调用视为成功
func (s *SongService) ClearMedia(ctx context.Context, id, userID string) (*domain.Song, error) {
	song, err := s.songRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	oldMedia := song.Media
	song.ClearMedia()
	if err := s.songRepo.UpdateMedia(ctx, song); err != nil {
		return nil, err
	}

	if oldMedia.IsLocal() {
		s.deleteFileQuietly(oldMedia.Local.FilePath)
	}
	return s.loadSongMoods(ctx, song)
}

// loadSongMoods 加载歌曲的心情标签
func (s *SongService) loadSongMoods(ctx context.Context, song *domain.Song) (*domain.Song, error) {
	moods, err := s.songMoodRepo.ListBySong(ctx, song.ID)
	if err != nil {
		return nil, err
	}
	song.Moods = moods
	return song, nil
}

// deleteFileQuietly 尽力删除文件，失败只记日志
func (s *SongService) deleteFileQuietly(filePath string) {
	if err := s.storage.Delete(filePath); err != nil {
		s.log.Warn("orphaned media file left on disk", logger.String("path", filePath), logger.Error(err))
	}
}
