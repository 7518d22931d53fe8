package handlers

import (
	"net/http"
	"strconv"

	"github.com/arya/athlete-insights/internal/domain"
	"github.com/arya/athlete-insights/internal/service"
	"github.com/arya/athlete-insights/internal/session"
	"github.com/arya/athlete-insights/internal/validate"
	"github.com/arya/athlete-insights/internal/view"
)

type PerformanceHandler struct {
	perfService *service.PerformanceService
	renderer    *view.Renderer
}

func NewPerformanceHandler(perfService *service.PerformanceService, renderer *view.Renderer) *PerformanceHandler {
	return &PerformanceHandler{perfService: perfService, renderer: renderer}
}

func performanceRules() validate.Chain {
	return validate.Chain{
		validate.Numeric("height", "Height is required and must be a number"),
		validate.Numeric("weight", "Weight is required and must be a number"),
		validate.Numeric("speed", "Speed is required and must be a number"),
		validate.Numeric("stamina", "Stamina is required and must be a number"),
		validate.Numeric("accuracy", "Accuracy is required and must be a number"),
	}
}

type performanceFormPage struct {
	User   *session.Record
	Errors []validate.FieldError
}

// Submit is reached only through the session middleware, so a user is
// always present here.
func (h *PerformanceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "performance.html", performanceFormPage{
			User:   user,
			Errors: []validate.FieldError{{Field: "form", Message: "Invalid form submission"}},
		})
		return
	}

	if errs := performanceRules().Validate(r.PostForm); len(errs) > 0 {
		h.renderer.Render(w, http.StatusBadRequest, "performance.html", performanceFormPage{
			User:   user,
			Errors: errs,
		})
		return
	}

	metrics := service.Metrics{
		Height:   formFloat(r, "height"),
		Weight:   formFloat(r, "weight"),
		Speed:    formFloat(r, "speed"),
		Stamina:  formFloat(r, "stamina"),
		Accuracy: formFloat(r, "accuracy"),
	}

	result, err := h.perfService.Record(r.Context(), user.UserID, metrics)
	if err != nil {
		h.renderer.RenderError(w, http.StatusInternalServerError, "Error while saving performance data", err.Error())
		return
	}

	h.renderer.Render(w, http.StatusOK, "analysis.html", struct {
		User        *session.Record
		Performance *domain.Performance
		Analysis    string
		AIAvailable bool
	}{
		User:        user,
		Performance: result.Performance,
		Analysis:    result.Analysis,
		AIAvailable: result.AIAvailable,
	})
}

// formFloat runs after validation, so parse failures cannot happen.
func formFloat(r *http.Request, field string) float64 {
	f, _ := strconv.ParseFloat(r.PostForm.Get(field), 64)
	return f
}
