package repository

import (
	"context"
	"time"

	"moodlist-svc/internal/domain"
)

// MoodRepository 心情标签仓储接口
type MoodRepository interface {
	List(ctx context.Context) ([]*domain.Mood, error)
	GetByID(ctx context.Context, id string) (*domain.Mood, error)
}

// SongRepository 歌曲仓储接口
type SongRepository interface {
	Create(ctx context.Context, song *domain.Song) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*domain.Song, error)
	ListByUser(ctx context.Context, userID, search string) ([]*domain.Song, error)
	ListByUserAndMood(ctx context.Context, userID, moodID string) ([]*domain.Song, error)
	UpdateInfo(ctx context.Context, song *domain.Song) error
	UpdateMedia(ctx context.Context, song *domain.Song) error
	Delete(ctx context.Context, id string) error
}

// SongMoodRepository 歌曲心情关联仓储接口
type SongMoodRepository interface {
	Replace(ctx context.Context, songID string, moodIDs []string) error
	ListBySong(ctx context.Context, songID string) ([]*domain.Mood, error)
	CountByMoodForUser(ctx context.Context, userID string) (map[string]int, error)
}

// PlaylistRepository 歌单仓储接口
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*domain.Playlist, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Playlist, error)
	UpdateName(ctx context.Context, id, userID, name string) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
	DeleteOrphans(ctx context.Context, before time.Time) (int64, error)
}

// PlaylistSongRepository 歌单歌曲关联仓储接口
type PlaylistSongRepository interface {
	AddBatch(ctx context.Context, songs []*domain.PlaylistSong) error
	ListByPlaylist(ctx context.Context, playlistID string) ([]*domain.PlaylistSong, error)
}
