package repository

import (
	"context"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type PerformanceRepository interface {
	Create(ctx context.Context, perf *domain.Performance) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Performance, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *domain.AnalysisReport) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.AnalysisReport, error)
}

type Repositories struct {
	User        UserRepository
	Performance PerformanceRepository
	Report      ReportRepository
}
