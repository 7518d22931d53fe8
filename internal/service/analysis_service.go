package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/arya/athlete-insights/internal/ai"
	"github.com/arya/athlete-insights/internal/domain"
	"github.com/arya/athlete-insights/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type VideoAnalysisService struct {
	reportRepo repository.ReportRepository
	gateway    ai.Gateway
	verdict    ai.VerdictFunc
	logger     *zap.Logger
}

func NewVideoAnalysisService(reportRepo repository.ReportRepository, gateway ai.Gateway, verdict ai.VerdictFunc, logger *zap.Logger) *VideoAnalysisService {
	if verdict == nil {
		verdict = ai.ContainsReal
	}
	return &VideoAnalysisService{
		reportRepo: reportRepo,
		gateway:    gateway,
		verdict:    verdict,
		logger:     logger,
	}
}

type VideoAnalysisResult struct {
	Authentic bool
	Verdict   string
	Analysis  string
}

// Analyze runs the two-step pipeline over the upload's metadata: the
// authenticity check first, the narrative analysis only if it passes.
// The caller owns the uploaded file and must delete it on every exit
// path; this method never touches the file's bytes.
func (s *VideoAnalysisService) Analyze(ctx context.Context, userID *uuid.UUID, file ai.FileInfo) (*VideoAnalysisResult, error) {
	if s.gateway == nil {
		return nil, ai.ErrUnavailable
	}

	verdictText, err := s.gateway.Generate(ctx, ai.AuthenticityPrompt(file))
	if err != nil {
		return nil, err
	}

	if !s.verdict(verdictText) {
		return &VideoAnalysisResult{Authentic: false, Verdict: verdictText}, nil
	}

	analysisText, err := s.gateway.Generate(ctx, ai.VideoAnalysisPrompt(file))
	if err != nil {
		return nil, err
	}

	result := &VideoAnalysisResult{
		Authentic: true,
		Verdict:   verdictText,
		Analysis:  analysisText,
	}

	// The report is a convenience record; a write failure must not turn a
	// finished analysis into an error page.
	if err := s.saveReport(ctx, userID, file, result); err != nil {
		s.logger.Warn("failed to persist analysis report", zap.Error(err))
	}

	return result, nil
}

// Reports lists the user's most recent analysis reports, newest first.
func (s *VideoAnalysisService) Reports(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.AnalysisReport, error) {
	return s.reportRepo.GetByUserID(ctx, userID, limit)
}

func (s *VideoAnalysisService) saveReport(ctx context.Context, userID *uuid.UUID, file ai.FileInfo, result *VideoAnalysisResult) error {
	meta, err := json.Marshal(map[string]interface{}{
		"filename": file.Name,
		"size":     file.Size,
		"mime":     file.Mime,
	})
	if err != nil {
		return err
	}

	report := &domain.AnalysisReport{
		ID:        uuid.New(),
		UserID:    userID,
		FileName:  file.Name,
		FileSize:  file.Size,
		FileType:  file.Mime,
		Verdict:   result.Verdict,
		Analysis:  result.Analysis,
		Meta:      datatypes.JSON(meta),
		CreatedAt: time.Now(),
	}
	return s.reportRepo.Create(ctx, report)
}
