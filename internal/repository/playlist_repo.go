package repository

import (
	"context"
	"errors"
	"time"

	"moodlist-svc/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlaylistRepositoryImpl 歌单仓储实现
type PlaylistRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewPlaylistRepository 创建歌单仓储
func NewPlaylistRepository(db *pgxpool.Pool) PlaylistRepository {
	return &PlaylistRepositoryImpl{db: db}
}

// Create 创建歌单
func (r *PlaylistRepositoryImpl) Create(ctx context.Context, playlist *domain.Playlist) error {
	query := `
		INSERT INTO playlists (id, user_id, mood_id, name, generated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		playlist.ID,
		playlist.UserID,
		playlist.MoodID,
		playlist.Name,
		playlist.GeneratedAt,
	)
	return err
}

// GetByIDAndUser 按ID和所有者获取歌单，未命中与无权访问同样返回未找到
func (r *PlaylistRepositoryImpl) GetByIDAndUser(ctx context.Context, id, userID string) (*domain.Playlist, error) {
	query := `
		SELECT p.id, p.user_id, p.mood_id, p.name, p.generated_at,
		       m.id, m.name, m.color, m.description
		FROM playlists p
		JOIN moods m ON m.id = p.mood_id
		WHERE p.id = $1 AND p.user_id = $2
	`
	var playlist domain.Playlist
	var mood domain.Mood
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&playlist.ID,
		&playlist.UserID,
		&playlist.MoodID,
		&playlist.Name,
		&playlist.GeneratedAt,
		&mood.ID,
		&mood.Name,
		&mood.Color,
		&mood.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlaylistNotFound
		}
		return nil, err
	}
	playlist.Mood = &mood
	return &playlist, nil
}

// ListByUser 获取用户的歌单列表，按生成时间倒序
func (r *PlaylistRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	query := `
		SELECT p.id, p.user_id, p.mood_id, p.name, p.generated_at,
		       m.id, m.name, m.color, m.description,
		       (SELECT COUNT(*) FROM playlist_songs ps WHERE ps.playlist_id = p.id)
		FROM playlists p
		JOIN moods m ON m.id = p.mood_id
		WHERE p.user_id = $1
		ORDER BY p.generated_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []*domain.Playlist
	for rows.Next() {
		var playlist domain.Playlist
		var mood domain.Mood
		err := rows.Scan(
			&playlist.ID,
			&playlist.UserID,
			&playlist.MoodID,
			&playlist.Name,
			&playlist.GeneratedAt,
			&mood.ID,
			&mood.Name,
			&mood.Color,
			&mood.Description,
			&playlist.SongCount,
		)
		if err != nil {
			return nil, err
		}
		playlist.Mood = &mood
		playlists = append(playlists, &playlist)
	}
	return playlists, rows.Err()
}

// UpdateName 重命名歌单，返回是否命中
func (r *PlaylistRepositoryImpl) UpdateName(ctx context.Context, id, userID, name string) (bool, error) {
	query := `UPDATE playlists SET name = $3 WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, id, userID, name)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete 删除歌单，关联行级联删除，返回是否命中
func (r *PlaylistRepositoryImpl) Delete(ctx context.Context, id, userID string) (bool, error) {
	query := `DELETE FROM playlists WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteOrphans 删除指定时间之前生成且没有任何歌曲关联的歌单
func (r *PlaylistRepositoryImpl) DeleteOrphans(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM playlists p
		WHERE p.generated_at < $1
		  AND NOT EXISTS (SELECT 1 FROM playlist_songs ps WHERE ps.playlist_id = p.id)
	`
	tag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
