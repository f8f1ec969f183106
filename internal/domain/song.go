package domain

import "time"

// Song 歌曲实体
type Song struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Media     Media     `json:"media"`
	Moods     []*Mood   `json:"moods,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate 验证歌曲数据
func (s *Song) Validate() error {
	if s.UserID == "" {
		return ErrInvalidUserID
	}
	if s.Title == "" {
		return ErrInvalidTitle
	}
	if s.Artist == "" {
		return ErrInvalidArtist
	}
	return nil
}

// SetRemote 设置远程媒体引用，丢弃本地引用
func (s *Song) SetRemote(url string) {
	s.Media = NewRemoteMedia(url)
}

// SetLocal 设置本地媒体引用，丢弃远程引用
func (s *Song) SetLocal(local LocalMedia) {
	s.Media = NewLocalMedia(local)
}

// ClearMedia 清除媒体引用
func (s *Song) ClearMedia() {
	s.Media = Media{}
}
