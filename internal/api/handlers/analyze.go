package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/arya/athlete-insights/internal/ai"
	"github.com/arya/athlete-insights/internal/service"
	"github.com/arya/athlete-insights/internal/view"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadBytes = 200 << 20 // 200 MiB

type AnalyzeHandler struct {
	videoService *service.VideoAnalysisService
	renderer     *view.Renderer
	uploadDir    string
	logger       *zap.Logger
}

func NewAnalyzeHandler(videoService *service.VideoAnalysisService, renderer *view.Renderer, uploadDir string, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		videoService: videoService,
		renderer:     renderer,
		uploadDir:    uploadDir,
		logger:       logger,
	}
}

// Analyze accepts one file under the "video" field, runs the two-step
// AI pipeline on its metadata, and deletes the stored file on every exit
// path.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("video")
	if err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "error.html", map[string]string{
			"Message":  "No video uploaded.",
			"Details":  "Please select a video file before submitting.",
			"BackLink": "/",
		})
		return
	}
	defer file.Close()

	videoPath, err := h.store(file, header.Filename)
	if err != nil {
		h.renderer.RenderError(w, http.StatusInternalServerError, "Error in analyzing video", err.Error())
		return
	}
	defer func() {
		if err := os.Remove(videoPath); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("failed to delete uploaded video", zap.String("path", videoPath), zap.Error(err))
		}
	}()

	info := ai.FileInfo{
		Name: header.Filename,
		Size: header.Size,
		Mime: header.Header.Get("Content-Type"),
	}

	var userID *uuid.UUID
	if rec := currentUser(r); rec != nil {
		userID = &rec.UserID
	}

	result, err := h.videoService.Analyze(r.Context(), userID, info)
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			h.renderer.RenderError(w, http.StatusInternalServerError, "Error in analyzing video",
				"Video analysis is currently unavailable. Please check the API configuration.")
			return
		}
		h.renderer.RenderError(w, http.StatusInternalServerError, "Error in analyzing video", err.Error())
		return
	}

	if !result.Authentic {
		h.renderer.Render(w, http.StatusOK, "error.html", map[string]string{
			"Message":  "The uploaded video seems fake or inappropriate for sports analysis. Please upload a genuine sports performance video.",
			"Details":  result.Verdict,
			"BackLink": "/",
		})
		return
	}

	h.renderer.Render(w, http.StatusOK, "results.html", struct {
		FileName     string
		FileSize     int64
		FileType     string
		RealText     string
		AnalysisText string
		AnalysisDate time.Time
	}{
		FileName:     info.Name,
		FileSize:     info.Size,
		FileType:     info.Mime,
		RealText:     result.Verdict,
		AnalysisText: result.Analysis,
		AnalysisDate: time.Now(),
	})
}

// store writes the upload to the upload directory under a timestamped
// name, keeping only the original extension.
func (h *AnalyzeHandler) store(file io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(originalName))
	path := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return path, nil
}
