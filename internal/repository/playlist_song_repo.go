package repository

import (
	"context"

	"moodlist-svc/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PlaylistSongRepositoryImpl 歌单歌曲关联仓储实现
type PlaylistSongRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewPlaylistSongRepository 创建歌单歌曲关联仓储
func NewPlaylistSongRepository(db *pgxpool.Pool) PlaylistSongRepository {
	return &PlaylistSongRepositoryImpl{db: db}
}

// AddBatch 按选取顺序批量写入关联行，position即歌单内播放顺序
func (r *PlaylistSongRepositoryImpl) AddBatch(ctx context.Context, songs []*domain.PlaylistSong) error {
	query := `
		INSERT INTO playlist_songs (playlist_id, song_id, position)
		VALUES ($1, $2, $3)
	`
	for _, ps := range songs {
		if _, err := r.db.Exec(ctx, query, ps.PlaylistID, ps.SongID, ps.Position); err != nil {
			return err
		}
	}
	return nil
}

// ListByPlaylist 获取歌单的全部歌曲，按position升序，附带歌曲详情
func (r *PlaylistSongRepositoryImpl) ListByPlaylist(ctx context.Context, playlistID string) ([]*domain.PlaylistSong, error) {
	query := `
		SELECT ps.playlist_id, ps.song_id, ps.position, ` + prefixSongColumns("s") + `
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position ASC
	`
	rows, err := r.db.Query(ctx, query, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.PlaylistSong
	for rows.Next() {
		var ps domain.PlaylistSong
		var song domain.Song
		var kind, remoteURL, fileType string
		var local domain.LocalMedia
		err := rows.Scan(
			&ps.PlaylistID,
			&ps.SongID,
			&ps.Position,
			&song.ID,
			&song.UserID,
			&song.Title,
			&song.Artist,
			&kind,
			&remoteURL,
			&local.FilePath,
			&local.FileName,
			&fileType,
			&local.FileSize,
			&song.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		switch domain.MediaKind(kind) {
		case domain.MediaRemote:
			song.Media = domain.NewRemoteMedia(remoteURL)
		case domain.MediaLocal:
			local.FileType = domain.FileType(fileType)
			song.Media = domain.NewLocalMedia(local)
		}
		ps.Song = &song
		result = append(result, &ps)
	}
	return result, rows.Err()
}

// prefixSongColumns 给歌曲列加表别名前缀
func prefixSongColumns(alias string) string {
	return alias + ".id, " + alias + ".user_id, " + alias + ".title, " + alias + ".artist, " +
		alias + ".media_kind, " + alias + ".remote_url, " + alias + ".file_path, " +
		alias + ".file_name, " + alias + ".file_type, " + alias + ".file_size, " + alias + ".created_at"
}
