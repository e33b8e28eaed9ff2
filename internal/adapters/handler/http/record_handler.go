package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/clock"
)

// RecordHandler serves the dated health records: sleep, exercise, meals
// and journal entries.
type RecordHandler struct {
	svc *services.ActivityService
	clk clock.Clock
}

func NewRecordHandler(svc *services.ActivityService, clk clock.Clock) *RecordHandler {
	return &RecordHandler{svc: svc, clk: clk}
}

type sleepRequest struct {
	Date            string `json:"date" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	Quality         int    `json:"quality" binding:"required"`
	Notes           string `json:"notes"`
}

type exerciseRequest struct {
	Date            string `json:"date" binding:"required"`
	Type            string `json:"type" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	CaloriesBurned  *int   `json:"calories_burned"`
	Notes           string `json:"notes"`
}

type mealRequest struct {
	Date          string  `json:"date" binding:"required"`
	MealType      string  `json:"meal_type" binding:"required"`
	Description   string  `json:"description"`
	TotalCalories float64 `json:"total_calories"`
}

type journalRequest struct {
	Date    string `json:"date" binding:"required"`
	Content string `json:"content" binding:"required"`
	Mood    *int   `json:"mood"`
}

func (h *RecordHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/sleep", h.LogSleep)
	r.GET("/sleep", h.ListSleep)
	r.POST("/exercise", h.LogExercise)
	r.GET("/exercise", h.ListExercise)
	r.POST("/meals", h.LogMeal)
	r.GET("/meals", h.ListMeals)
	r.POST("/journal", h.WriteJournal)
	r.GET("/journal", h.ListJournal)
}

// LogSleep godoc
// @Summary  Log a night of sleep
// @Tags     records
// @Accept   json
// @Produce  json
// @Param    entry  body      sleepRequest  true  "Sleep entry"
// @Success  201    {object}  domain.SleepEntry
// @Failure  400    {object}  map[string]string
// @Router   /sleep [post]
func (h *RecordHandler) LogSleep(c *gin.Context) {
	var req sleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.LogSleep(c.Request.Context(), services.LogSleepInput{
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Quality:         req.Quality,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListSleep godoc
// @Summary  List sleep entries
// @Tags     records
// @Produce  json
// @Param    start  query  string  false  "First day (YYYY-MM-DD), defaults to this Monday"
// @Param    end    query  string  false  "Last day (YYYY-MM-DD), defaults to this Sunday"
// @Success  200    {array}  domain.SleepEntry
// @Router   /sleep [get]
func (h *RecordHandler) ListSleep(c *gin.Context) {
	r, ok := rangeQuery(c, h.clk.Now())
	if !ok {
		return
	}

	list, err := h.svc.ListSleep(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *RecordHandler) LogExercise(c *gin.Context) {
	var req exerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.svc.LogExercise(c.Request.Context(), services.LogExerciseInput{
		Date:            req.Date,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *RecordHandler) ListExercise(c *gin.Context) {
	r, ok := rangeQuery(c, h.clk.Now())
	if !ok {
		return
	}

	list, err := h.svc.ListExercise(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *RecordHandler) LogMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.svc.LogMeal(c.Request.Context(), services.LogMealInput{
		Date:          req.Date,
		MealType:      req.MealType,
		Description:   req.Description,
		TotalCalories: req.TotalCalories,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *RecordHandler) ListMeals(c *gin.Context) {
	r, ok := rangeQuery(c, h.clk.Now())
	if !ok {
		return
	}

	list, err := h.svc.ListMeals(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *RecordHandler) WriteJournal(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.WriteJournal(c.Request.Context(), services.WriteJournalInput{
		Date:    req.Date,
		Content: req.Content,
		Mood:    req.Mood,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *RecordHandler) ListJournal(c *gin.Context) {
	r, ok := rangeQuery(c, h.clk.Now())
	if !ok {
		return
	}

	list, err := h.svc.ListJournal(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
