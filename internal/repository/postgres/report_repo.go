package postgres

import (
	"context"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *reportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.AnalysisReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.AnalysisReport, error) {
	var reports []*domain.AnalysisReport
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
