package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-insights/internal/adapters/ai"
	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var validationErrors = []error{
	domain.ErrInvalidDate,
	domain.ErrHabitTitleEmpty,
	domain.ErrHabitTitleTooLong,
	domain.ErrHabitDescTooLong,
	domain.ErrInvalidColor,
	domain.ErrInvalidFrequency,
	domain.ErrCompletionHabitRequired,
	domain.ErrCompletionNotesTooLong,
	domain.ErrInvalidSleepDuration,
	domain.ErrInvalidSleepQuality,
	domain.ErrExerciseTypeEmpty,
	domain.ErrInvalidExerciseDuration,
	domain.ErrInvalidCaloriesBurned,
	domain.ErrInvalidMealType,
	domain.ErrInvalidCalories,
	domain.ErrJournalEmpty,
	domain.ErrInvalidMood,
	domain.ErrInvalidSource,
	ai.ErrImageTooLarge,
}

// respondError maps service errors to a status code and a gin.H body.
func respondError(c *gin.Context, err error) {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrHabitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
	case errors.Is(err, domain.ErrRecordExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrHabitArchived):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAnalysisTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrMalformedResponse), errors.Is(err, domain.ErrResponseValidation):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, ai.ErrProviderUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai provider temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// dateQuery reads a YYYY-MM-DD query parameter, defaulting to now.
func dateQuery(c *gin.Context, name string, now time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return now, true
	}
	t, err := domain.ParseDate(raw, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " format, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

const maxRangeDays = 366

// rangeQuery reads start/end query parameters. Missing bounds default to the
// current Monday–Sunday week.
func rangeQuery(c *gin.Context, now time.Time) (domain.DateRange, bool) {
	r := domain.WeekOf(now)
	if s := c.Query("start"); s != "" {
		r.Start = s
	}
	if e := c.Query("end"); e != "" {
		r.End = e
	}

	start, err1 := domain.ParseDate(r.Start, now.Location())
	end, err2 := domain.ParseDate(r.End, now.Location())
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range, expected YYYY-MM-DD"})
		return domain.DateRange{}, false
	}
	if start.After(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start cannot be after end"})
		return domain.DateRange{}, false
	}
	if end.Sub(start).Hours()/24 > maxRangeDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date range too large, max 1 year allowed"})
		return domain.DateRange{}, false
	}
	return r, true
}
