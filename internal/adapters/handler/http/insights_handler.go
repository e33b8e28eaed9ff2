package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
)

// insightRoutes maps URL segments to artifact kinds.
var insightRoutes = map[string]domain.ArtifactKind{
	"coaching":  domain.ArtifactDailyCoaching,
	"habits":    domain.ArtifactHabitSuggestions,
	"sleep":     domain.ArtifactSleepAnalysis,
	"exercise":  domain.ArtifactExerciseRecommendation,
	"mood":      domain.ArtifactMoodAnalysis,
	"nutrition": domain.ArtifactNutritionAdvice,
}

type InsightsHandler struct {
	store *services.InsightsStore
}

func NewInsightsHandler(store *services.InsightsStore) *InsightsHandler {
	return &InsightsHandler{store: store}
}

// RegisterRoutes mounts read/clear routes on r and the fetch routes, which
// call the AI provider, on aiGroup.
func (h *InsightsHandler) RegisterRoutes(r, aiGroup *gin.RouterGroup) {
	r.GET("/insights", h.State)
	r.DELETE("/insights", h.ClearAll)
	r.DELETE("/insights/error", h.ClearError)
	aiGroup.POST("/insights/:kind", h.Fetch)
}

// State godoc
// @Summary  Current insights state
// @Tags     insights
// @Produce  json
// @Success  200  {object}  domain.InsightsState
// @Router   /insights [get]
func (h *InsightsHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State())
}

// Fetch godoc
// @Summary      Fetch one artifact
// @Description  Failures are reported in the error field of the returned state.
// @Tags         insights
// @Produce      json
// @Param        kind  path      string  true  "coaching, habits, sleep, exercise, mood or nutrition"
// @Success      200   {object}  domain.InsightsState
// @Failure      404   {object}  map[string]string
// @Router       /insights/{kind} [post]
func (h *InsightsHandler) Fetch(c *gin.Context) {
	kind, ok := insightRoutes[c.Param("kind")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown insight kind"})
		return
	}

	if err := h.store.Fetch(c.Request.Context(), kind); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.store.State())
}

// ClearAll godoc
// @Summary  Clear every artifact
// @Tags     insights
// @Success  204
// @Router   /insights [delete]
func (h *InsightsHandler) ClearAll(c *gin.Context) {
	h.store.ClearAll()
	c.Status(http.StatusNoContent)
}

// ClearError godoc
// @Summary  Clear the last error
// @Tags     insights
// @Success  204
// @Router   /insights/error [delete]
func (h *InsightsHandler) ClearError(c *gin.Context) {
	h.store.ClearError()
	c.Status(http.StatusNoContent)
}
