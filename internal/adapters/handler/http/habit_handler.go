package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/clock"
)

type HabitHandler struct {
	svc *services.ActivityService
	clk clock.Clock
}

func NewHabitHandler(svc *services.ActivityService, clk clock.Clock) *HabitHandler {
	return &HabitHandler{svc: svc, clk: clk}
}

type createHabitRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Frequency   string `json:"frequency"`
}

type updateHabitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Frequency   string `json:"frequency"`
}

type completeHabitRequest struct {
	Date      string `json:"date" binding:"required"`
	Completed *bool  `json:"completed"`
	Notes     string `json:"notes"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Archive)
		habits.POST("/:id/completions", h.Complete)
		habits.GET("/:id/completions", h.ListCompletions)
	}
}

// Create godoc
// @Summary  Create a habit
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    habit  body      createHabitRequest  true  "Habit"
// @Success  201    {object}  domain.Habit
// @Failure  400    {object}  map[string]string
// @Router   /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.CreateHabit(c.Request.Context(), services.CreateHabitInput{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		Frequency:   req.Frequency,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// List godoc
// @Summary  List active habits
// @Tags     habits
// @Produce  json
// @Success  200  {array}  domain.Habit
// @Router   /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	list, err := h.svc.ListHabits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *HabitHandler) Get(c *gin.Context) {
	habit, err := h.svc.GetHabit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// Update godoc
// @Summary  Update a habit
// @Description  Empty fields keep their current value.
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    id     path      string              true  "Habit ID"
// @Param    habit  body      updateHabitRequest  true  "Fields to change"
// @Success  200    {object}  domain.Habit
// @Failure  404    {object}  map[string]string
// @Router   /habits/{id} [put]
func (h *HabitHandler) Update(c *gin.Context) {
	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.svc.UpdateHabit(c.Request.Context(), services.UpdateHabitInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		Frequency:   req.Frequency,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// Archive godoc
// @Summary  Archive a habit
// @Tags     habits
// @Param    id  path  string  true  "Habit ID"
// @Success  204
// @Router   /habits/{id} [delete]
func (h *HabitHandler) Archive(c *gin.Context) {
	if err := h.svc.ArchiveHabit(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete godoc
// @Summary  Record a habit completion
// @Description  completed defaults to true.
// @Tags     habits
// @Accept   json
// @Produce  json
// @Param    id          path      string                true  "Habit ID"
// @Param    completion  body      completeHabitRequest  true  "Completion"
// @Success  201         {object}  domain.HabitCompletion
// @Failure  409         {object}  map[string]string
// @Router   /habits/{id}/completions [post]
func (h *HabitHandler) Complete(c *gin.Context) {
	var req completeHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	completion, err := h.svc.CompleteHabit(c.Request.Context(), services.CompleteHabitInput{
		HabitID:   c.Param("id"),
		Date:      req.Date,
		Completed: completed,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, completion)
}

func (h *HabitHandler) ListCompletions(c *gin.Context) {
	r, ok := rangeQuery(c, h.clk.Now())
	if !ok {
		return
	}

	list, err := h.svc.ListCompletions(c.Request.Context(), c.Param("id"), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
