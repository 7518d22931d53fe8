package service

import (
	"context"
	"time"

	"github.com/arya/athlete-insights/internal/ai"
	"github.com/arya/athlete-insights/internal/domain"
	"github.com/arya/athlete-insights/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PerformanceService struct {
	perfRepo repository.PerformanceRepository
	gateway  ai.Gateway
	logger   *zap.Logger
}

// NewPerformanceService accepts a nil gateway: submissions are still
// persisted, analysis degrades to the deterministic fallback text.
func NewPerformanceService(perfRepo repository.PerformanceRepository, gateway ai.Gateway, logger *zap.Logger) *PerformanceService {
	return &PerformanceService{perfRepo: perfRepo, gateway: gateway, logger: logger}
}

type Metrics struct {
	Height   float64
	Weight   float64
	Speed    float64
	Stamina  float64
	Accuracy float64
}

type PerformanceResult struct {
	Performance *domain.Performance
	Analysis    string
	AIAvailable bool
}

// Record persists one performance record for the user, then asks the
// gateway for narrative feedback. A gateway failure is recoverable: the
// record stays persisted and the fallback text is returned. Only the
// database write can fail this operation.
func (s *PerformanceService) Record(ctx context.Context, userID uuid.UUID, m Metrics) (*PerformanceResult, error) {
	perf := &domain.Performance{
		ID:        uuid.New(),
		UserID:    userID,
		Height:    m.Height,
		Weight:    m.Weight,
		Speed:     m.Speed,
		Stamina:   m.Stamina,
		Accuracy:  m.Accuracy,
		CreatedAt: time.Now(),
	}

	if err := s.perfRepo.Create(ctx, perf); err != nil {
		return nil, err
	}

	result := &PerformanceResult{Performance: perf}

	if s.gateway == nil {
		result.Analysis = ai.FallbackAnalysis(m.Height, m.Weight, m.Speed, m.Stamina, m.Accuracy)
		return result, nil
	}

	prompt := ai.PerformancePrompt(m.Height, m.Weight, m.Speed, m.Stamina, m.Accuracy)
	analysis, err := s.gateway.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("performance analysis unavailable, using fallback", zap.Error(err))
		result.Analysis = ai.FallbackAnalysis(m.Height, m.Weight, m.Speed, m.Stamina, m.Accuracy)
		return result, nil
	}

	result.Analysis = analysis
	result.AIAvailable = true
	return result, nil
}

func (s *PerformanceService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Performance, error) {
	return s.perfRepo.GetByUserID(ctx, userID, limit)
}

func (s *PerformanceService) Leaderboard(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	return s.perfRepo.Leaderboard(ctx, limit)
}
