package service

import (
	"github.com/arya/athlete-insights/internal/ai"
	"github.com/arya/athlete-insights/internal/config"
	"github.com/arya/athlete-insights/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth        *AuthService
	Performance *PerformanceService
	Video       *VideoAnalysisService
}

// NewServices wires the service layer. The gateway is nil when no API
// key is configured; dependent services carry that as an explicit state
// rather than an unguarded reference.
func NewServices(repos *repository.Repositories, cfg *config.Config, logger *zap.Logger) *Services {
	var gateway ai.Gateway
	if cfg.AIConfigured() {
		gateway = ai.NewGeminiGateway(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	return &Services{
		Auth:        NewAuthService(repos.User),
		Performance: NewPerformanceService(repos.Performance, gateway, logger),
		Video:       NewVideoAnalysisService(repos.Report, gateway, ai.ContainsReal, logger),
	}
}
