package handlers

import (
	"net/http"

	"github.com/arya/athlete-insights/internal/api/middleware"
	"github.com/arya/athlete-insights/internal/domain"
	"github.com/arya/athlete-insights/internal/service"
	"github.com/arya/athlete-insights/internal/session"
	"github.com/arya/athlete-insights/internal/view"
)

const (
	leaderboardSize = 25
	reportHistory   = 10
)

// PageHandler serves the GET-only view renders.
type PageHandler struct {
	perfService  *service.PerformanceService
	videoService *service.VideoAnalysisService
	renderer     *view.Renderer
}

func NewPageHandler(perfService *service.PerformanceService, videoService *service.VideoAnalysisService, renderer *view.Renderer) *PageHandler {
	return &PageHandler{perfService: perfService, videoService: videoService, renderer: renderer}
}

type sessionPage struct {
	User *session.Record
}

func currentUser(r *http.Request) *session.Record {
	rec, _ := middleware.FromContext(r.Context())
	return rec
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "index.html", sessionPage{User: currentUser(r)})
}

func (h *PageHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "signup.html", formPage{})
}

func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "login.html", formPage{})
}

func (h *PageHandler) UploadForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "upload.html", sessionPage{User: currentUser(r)})
}

func (h *PageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	reports, err := h.videoService.Reports(r.Context(), user.UserID, reportHistory)
	if err != nil {
		h.renderer.RenderError(w, http.StatusInternalServerError, "Failed to load profile", err.Error())
		return
	}

	h.renderer.Render(w, http.StatusOK, "profile.html", struct {
		User    *session.Record
		Reports []*domain.AnalysisReport
	}{User: user, Reports: reports})
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	perfs, err := h.perfService.Recent(r.Context(), user.UserID, 20)
	if err != nil {
		h.renderer.RenderError(w, http.StatusInternalServerError, "Failed to load dashboard", err.Error())
		return
	}

	h.renderer.Render(w, http.StatusOK, "dashboard.html", struct {
		User         *session.Record
		Performances []*domain.Performance
	}{User: user, Performances: perfs})
}

func (h *PageHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.perfService.Leaderboard(r.Context(), leaderboardSize)
	if err != nil {
		h.renderer.RenderError(w, http.StatusInternalServerError, "Failed to load leaderboard", err.Error())
		return
	}

	h.renderer.Render(w, http.StatusOK, "leaderboard.html", struct {
		Entries []*domain.LeaderboardEntry
	}{Entries: entries})
}
