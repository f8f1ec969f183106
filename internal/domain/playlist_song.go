package domain

// PlaylistSong 歌单-歌曲关联实体，position从1开始连续递增
type PlaylistSong struct {
	PlaylistID string `json:"playlist_id"`
	SongID     string `json:"song_id"`
	Position   int    `json:"position"`
	Song       *Song  `json:"song,omitempty"`
}

// Validate 验证歌单歌曲关联数据
func (ps *PlaylistSong) Validate() error {
	if ps.PlaylistID == "" {
		return ErrPlaylistNotFound
	}
	if ps.SongID == "" {
		return ErrInvalidSongID
	}
	if ps.Position < 1 {
		return ErrInvalidSongCount
	}
	return nil
}
