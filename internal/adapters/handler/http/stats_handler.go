package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
	"github.com/comitanigiacomo/kanso-insights/internal/core/workers"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/clock"
)

type StatsHandler struct {
	svc    *services.StatsService
	worker *workers.StreakWorker
	clk    clock.Clock
}

// NewStatsHandler accepts a nil worker; the streak endpoint then omits the
// background summary.
func NewStatsHandler(svc *services.StatsService, worker *workers.StreakWorker, clk clock.Clock) *StatsHandler {
	return &StatsHandler{svc: svc, worker: worker, clk: clk}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/weekly", h.GetWeeklyStats)
		stats.GET("/trends", h.GetTrends)
		stats.GET("/streak", h.GetStreak)
	}
}

// GetWeeklyStats godoc
// @Summary      Weekly aggregate
// @Description  Aggregates habits, sleep, exercise and meals over the Monday–Sunday week containing date.
// @Tags         stats
// @Produce      json
// @Param        date  query     string  false  "Any day of the week (YYYY-MM-DD), defaults to today"
// @Success      200   {object}  domain.WeeklyStats
// @Failure      400   {object}  map[string]string
// @Router       /stats/weekly [get]
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	date, ok := dateQuery(c, "date", h.clk.Now())
	if !ok {
		return
	}

	stats, err := h.svc.ComputeWeeklyStats(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetTrends godoc
// @Summary      Week over week trends
// @Tags         stats
// @Produce      json
// @Param        date  query     string  false  "Any day of the current week (YYYY-MM-DD)"
// @Success      200   {object}  domain.TrendData
// @Router       /stats/trends [get]
func (h *StatsHandler) GetTrends(c *gin.Context) {
	date, ok := dateQuery(c, "date", h.clk.Now())
	if !ok {
		return
	}

	trends, err := h.svc.ComputeTrends(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trends)
}

type streakResponse struct {
	Current int                   `json:"current"`
	Summary *domain.StreakSummary `json:"summary"`
}

// GetStreak godoc
// @Summary      Daily activity streak
// @Description  Current streak computed on demand plus the latest background summary.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  streakResponse
// @Router       /stats/streak [get]
func (h *StatsHandler) GetStreak(c *gin.Context) {
	current, err := h.svc.ComputeDailyStreak(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := streakResponse{Current: current}
	if h.worker != nil {
		resp.Summary = h.worker.Latest()
	}
	c.JSON(http.StatusOK, resp)
}
