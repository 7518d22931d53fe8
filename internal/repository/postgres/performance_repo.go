package postgres

import (
	"context"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type performanceRepository struct {
	db *gorm.DB
}

func NewPerformanceRepository(db *gorm.DB) *performanceRepository {
	return &performanceRepository{db: db}
}

func (r *performanceRepository) Create(ctx context.Context, perf *domain.Performance) error {
	return r.db.WithContext(ctx).Create(perf).Error
}

func (r *performanceRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Performance, error) {
	var perfs []*domain.Performance
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&perfs).Error; err != nil {
		return nil, err
	}
	return perfs, nil
}

func (r *performanceRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Performance{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *performanceRepository) Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	query := `
		SELECT u.id AS user_id, u.full_name, u.sport,
		       AVG((p.speed + p.stamina + p.accuracy) / 3) AS score
		FROM users u
		JOIN performances p ON p.user_id = u.id
		WHERE u.role = 'athlete'
		GROUP BY u.id, u.full_name, u.sport
		ORDER BY score DESC, u.full_name ASC
		LIMIT ?
	`

	var entries []*domain.LeaderboardEntry
	if err := r.db.WithContext(ctx).Raw(query, limit).Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
