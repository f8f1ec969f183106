package repository

import (
	"context"
	"errors"

	"moodlist-svc/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const songColumns = `id, user_id, title, artist, media_kind, remote_url, file_path, file_name, file_type, file_size, created_at`

// SongRepositoryImpl 歌曲仓储实现
type SongRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewSongRepository 创建歌曲仓储
func NewSongRepository(db *pgxpool.Pool) SongRepository {
	return &SongRepositoryImpl{db: db}
}

// scanSong 扫描单行歌曲记录，重建媒体引用
func scanSong(row pgx.Row) (*domain.Song, error) {
	var song domain.Song
	var kind string
	var remoteURL string
	var local domain.LocalMedia
	var fileType string
	err := row.Scan(
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
	return &song, nil
}

// Create 创建歌曲
func (r *SongRepositoryImpl) Create(ctx context.Context, song *domain.Song) error {
	query := `
		INSERT INTO songs (id, user_id, title, artist, media_kind, remote_url, file_path, file_name, file_type, file_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		song.ID,
		song.UserID,
		song.Title,
		song.Artist,
		string(song.Media.Kind),
		song.Media.RemoteURL,
		song.Media.Local.FilePath,
		song.Media.Local.FileName,
		string(song.Media.Local.FileType),
		song.Media.Local.FileSize,
		song.CreatedAt,
	)
	return err
}

// GetByIDAndUser 按ID和所有者获取歌曲，未命中与无权访问同样返回未找到
func (r *SongRepositoryImpl) GetByIDAndUser(ctx context.Context, id, userID string) (*domain.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = $1 AND user_id = $2`
	song, err := scanSong(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSongNotFound
		}
		return nil, err
	}
	return song, nil
}

// ListByUser 获取用户的歌曲列表，可选按标题或歌手模糊过滤
func (r *SongRepositoryImpl) ListByUser(ctx context.Context, userID, search string) ([]*domain.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE user_id = $1`
	args := []interface{}{userID}
	if search != "" {
		query += ` AND (title ILIKE '%' || $2 || '%' OR artist ILIKE '%' || $2 || '%')`
		args = append(args, search)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSongs(rows)
}

// ListByUserAndMood 获取用户带指定心情标签的歌曲
func (r *SongRepositoryImpl) ListByUserAndMood(ctx context.Context, userID, moodID string) ([]*domain.Song, error) {
	query := `
		SELECT ` + songColumns + `
		FROM songs
		WHERE user_id = $1
		  AND EXISTS (SELECT 1 FROM song_moods sm WHERE sm.song_id = songs.id AND sm.mood_id = $2)
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID, moodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSongs(rows)
}

// UpdateInfo 更新歌曲基本信息
func (r *SongRepositoryImpl) UpdateInfo(ctx context.Context, song *domain.Song) error {
	query := `UPDATE songs SET title = $2, artist = $3 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, song.ID, song.Title, song.Artist)
	return err
}

// UpdateMedia 更新歌曲媒体引用
func (r *SongRepositoryImpl) UpdateMedia(ctx context.Context, song *domain.Song) error {
	query := `
		UPDATE songs
		SET media_kind = $2, remote_url = $3, file_path = $4, file_name = $5, file_type = $6, file_size = $7
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query,
		song.ID,
		string(song.Media.Kind),
		song.Media.RemoteURL,
		song.Media.Local.FilePath,
		song.Media.Local.FileName,
		string(song.Media.Local.FileType),
		song.Media.Local.FileSize,
	)
	return err
}

// Delete 删除歌曲，关联行级联删除
func (r *SongRepositoryImpl) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM songs WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// collectSongs 收集查询结果
func collectSongs(rows pgx.Rows) ([]*domain.Song, error) {
	var songs []*domain.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}
