package repository

import (
	"context"

	"moodlist-svc/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SongMoodRepositoryImpl 歌曲心情关联仓储实现
type SongMoodRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewSongMoodRepository 创建歌曲心情关联仓储
func NewSongMoodRepository(db *pgxpool.Pool) SongMoodRepository {
	return &SongMoodRepositoryImpl{db: db}
}

// Replace 整体替换歌曲的心情关联
func (r *SongMoodRepositoryImpl) Replace(ctx context.Context, songID string, moodIDs []string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM song_moods WHERE song_id = $1`, songID); err != nil {
		return err
	}
	for _, moodID := range moodIDs {
		query := `INSERT INTO song_moods (song_id, mood_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		if _, err := r.db.Exec(ctx, query, songID, moodID); err != nil {
			return err
		}
	}
	return nil
}

// ListBySong 获取歌曲的心情标签列表
func (r *SongMoodRepositoryImpl) ListBySong(ctx context.Context, songID string) ([]*domain.Mood, error) {
	query := `
		SELECT m.id, m.name, m.color, m.description
		FROM song_moods sm
		JOIN moods m ON m.id = sm.mood_id
		WHERE sm.song_id = $1
		ORDER BY m.name ASC
	`
	rows, err := r.db.Query(ctx, query, songID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moods []*domain.Mood
	for rows.Next() {
		var mood domain.Mood
		if err := rows.Scan(&mood.ID, &mood.Name, &mood.Color, &mood.Description); err != nil {
			return nil, err
		}
		moods = append(moods, &mood)
	}
	return moods, rows.Err()
}

// CountByMoodForUser 统计用户每个心情标签下的歌曲数量
func (r *SongMoodRepositoryImpl) CountByMoodForUser(ctx context.Context, userID string) (map[string]int, error) {
	query := `
		SELECT sm.mood_id, COUNT(*)
		FROM song_moods sm
		JOIN songs s ON s.id = sm.song_id
		WHERE s.user_id = $1
		GROUP BY sm.mood_id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var moodID string
		var count int
		if err := rows.Scan(&moodID, &count); err != nil {
			return nil, err
		}
		counts[moodID] = count
	}
	return counts, rows.Err()
}
