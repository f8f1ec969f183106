package repository

import (
	"context"
	"errors"

	"moodlist-svc/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MoodRepositoryImpl 心情标签仓储实现
type MoodRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewMoodRepository 创建心情标签仓储
func NewMoodRepository(db *pgxpool.Pool) MoodRepository {
	return &MoodRepositoryImpl{db: db}
}

// List 获取全部心情标签，按名称排序
func (r *MoodRepositoryImpl) List(ctx context.Context) ([]*domain.Mood, error) {
	query := `
		SELECT id, name, color, description
		FROM moods
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query)
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

// GetByID 根据ID获取心情标签
func (r *MoodRepositoryImpl) GetByID(ctx context.Context, id string) (*domain.Mood, error) {
	query := `SELECT id, name, color, description FROM moods WHERE id = $1`
	var mood domain.Mood
	err := r.db.QueryRow(ctx, query, id).Scan(&mood.ID, &mood.Name, &mood.Color, &mood.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMoodNotFound
		}
		return nil, err
	}
	return &mood, nil
}
