package domain

import "time"

// 歌单生成参数边界
const (
	MinPlaylistSongCount  = 1
	MaxPlaylistSongCount  = 50
	MaxPlaylistNameLength = 100
)

// Playlist 歌单实体
type Playlist struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	MoodID      string          `json:"mood_id"`
	Name        string          `json:"name"`
	Mood        *Mood           `json:"mood,omitempty"`
	Songs       []*PlaylistSong `json:"songs,omitempty"`
	SongCount   int             `json:"song_count"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// ValidatePlaylistName 验证歌单名称
func ValidatePlaylistName(name string) error {
	if name == "" {
		return ErrInvalidPlaylistName
	}
	if len(name) > MaxPlaylistNameLength {
		return ErrPlaylistNameTooLong
	}
	return nil
}

// ValidateSongCount 验证请求的歌曲数量
func ValidateSongCount(count int) error {
	if count < MinPlaylistSongCount || count > MaxPlaylistSongCount {
		return ErrInvalidSongCount
	}
	return nil
}
