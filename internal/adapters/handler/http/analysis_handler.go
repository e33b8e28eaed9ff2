package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-insights/internal/adapters/ai"
	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/clock"
)

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

type AnalysisHandler struct {
	analysis  *services.AnalysisService
	activity  *services.ActivityService
	clk       clock.Clock
	uploadDir string
}

// NewAnalysisHandler stores uploads under uploadDir for the duration of a
// request; an empty dir means the system temp dir.
func NewAnalysisHandler(analysis *services.AnalysisService, activity *services.ActivityService, clk clock.Clock, uploadDir string) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis, activity: activity, clk: clk, uploadDir: uploadDir}
}

func (h *AnalysisHandler) RegisterRoutes(aiGroup *gin.RouterGroup) {
	analysis := aiGroup.Group("/analysis")
	{
		analysis.POST("/food", h.AnalyzeFood)
		analysis.POST("/journal", h.ScanJournal)
	}
}

// saveUpload writes the "image" form file to a temp file keeping its
// extension, which selects the media type sent to the provider.
func (h *AnalysisHandler) saveUpload(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return "", false
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type, expected jpg or png"})
		return "", false
	}
	if file.Size > ai.MaxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": ai.ErrImageTooLarge.Error()})
		return "", false
	}

	tmp, err := os.CreateTemp(h.uploadDir, "upload-*"+ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return "", false
	}
	path := tmp.Name()
	tmp.Close()

	if err := c.SaveUploadedFile(file, path); err != nil {
		os.Remove(path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return "", false
	}
	return path, true
}

// AnalyzeFood godoc
// @Summary      Analyze a food photo
// @Description  Estimates foods and calories. With log=true the result is stored as a meal.
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        image      formData  file    true   "JPEG or PNG photo"
// @Param        log        formData  bool    false  "Store the result as a meal"
// @Param        date       formData  string  false  "Meal date (YYYY-MM-DD), defaults to today"
// @Param        meal_type  formData  string  false  "breakfast, lunch, dinner or snack"
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Failure      504  {object}  map[string]string
// @Router       /analysis/food [post]
func (h *AnalysisHandler) AnalyzeFood(c *gin.Context) {
	path, ok := h.saveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(path)

	analysis, err := h.analysis.AnalyzeFoodImage(c.Request.Context(), path)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"analysis": analysis}
	if logMeal, _ := strconv.ParseBool(c.PostForm("log")); logMeal {
		date := c.DefaultPostForm("date", domain.FormatDate(h.clk.Now()))
		meal, err := h.activity.LogAnalyzedMeal(c.Request.Context(), date, c.DefaultPostForm("meal_type", domain.MealSnack), analysis)
		if err != nil {
			respondError(c, err)
			return
		}
		resp["meal"] = meal
	}
	c.JSON(http.StatusOK, resp)
}

// ScanJournal godoc
// @Summary      Transcribe a handwritten journal page
// @Description  With save=true the transcription is stored as a journal entry.
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file    true   "JPEG or PNG photo"
// @Param        save   formData  bool    false  "Store the text as a journal entry"
// @Param        date   formData  string  false  "Entry date (YYYY-MM-DD), defaults to today"
// @Param        mood   formData  int     false  "Mood from 1 to 5"
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /analysis/journal [post]
func (h *AnalysisHandler) ScanJournal(c *gin.Context) {
	path, ok := h.saveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(path)

	result, err := h.analysis.ScanHandwrittenJournal(c.Request.Context(), path)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"ocr": result}
	if save, _ := strconv.ParseBool(c.PostForm("save")); save {
		var mood *int
		if raw := c.PostForm("mood"); raw != "" {
			m, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidMood.Error()})
				return
			}
			mood = &m
		}

		entry, err := h.activity.WriteJournal(c.Request.Context(), services.WriteJournalInput{
			Date:    c.DefaultPostForm("date", domain.FormatDate(h.clk.Now())),
			Content: result.Text,
			Mood:    mood,
			Source:  domain.JournalSourceOCR,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		resp["entry"] = entry
	}
	c.JSON(http.StatusOK, resp)
}
