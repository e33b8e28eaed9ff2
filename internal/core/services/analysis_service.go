package services

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/logger"
)

const (
	DefaultFoodAnalysisTimeout = 30 * time.Second
	DefaultModel               = "claude-sonnet-4-20250514"

	FoodAnalysisTimeoutMessage = "Food analysis timed out. Please try again."

	defaultAnalysisMaxTokens = 1024
)

const foodAnalysisPrompt = `Analyze this food photo. Identify every food item, estimate its portion, calories and macronutrients in grams.
Respond with JSON only, in this shape:
{"foods": [{"name": string, "portion": string, "calories": number, "protein": number, "carbs": number, "fat": number, "confidence": number between 0 and 1}], "totalCalories": number, "notes": string}`

const journalOCRPrompt = `Transcribe the handwritten journal page in this image exactly as written, keeping line breaks.
Do not add commentary. After the transcription add a line with "---" and then "Confidence: high", "Confidence: medium" or "Confidence: low" describing how legible the handwriting was.`

var confidenceMarker = regexp.MustCompile(`(?is)^(.*)\n---\s*\nconfidence:\s*(high|medium|low)\s*$`)

// AnalysisConfig tunes the remote calls of AnalysisService.
type AnalysisConfig struct {
	Model       string
	FoodTimeout time.Duration
	MaxTokens   int
}

// AnalysisService runs single image-understanding calls: food photo nutrition
// estimates and handwritten journal transcription.
type AnalysisService struct {
	generator domain.Generator
	images    domain.ImageReader
	validate  *validator.Validate
	cfg       AnalysisConfig
	logger    *slog.Logger
}

func NewAnalysisService(generator domain.Generator, images domain.ImageReader, cfg AnalysisConfig, l *slog.Logger) *AnalysisService {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.FoodTimeout <= 0 {
		cfg.FoodTimeout = DefaultFoodAnalysisTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultAnalysisMaxTokens
	}
	return &AnalysisService{
		generator: generator,
		images:    images,
		validate:  newValidator(),
		cfg:       cfg,
		logger:    logger.OrDefault(l).With("component", "analysis"),
	}
}

type foodPayload struct {
	Foods         []foodItem `json:"foods" validate:"required,dive"`
	TotalCalories *float64   `json:"totalCalories" validate:"required,gte=0"`
	Notes         string     `json:"notes"`
}

type foodItem struct {
	Name       *string  `json:"name" validate:"required"`
	Portion    *string  `json:"portion" validate:"required"`
	Calories   *float64 `json:"calories" validate:"required,gte=0"`
	Protein    *float64 `json:"protein" validate:"omitempty,gte=0"`
	Carbs      *float64 `json:"carbs" validate:"omitempty,gte=0"`
	Fat        *float64 `json:"fat" validate:"omitempty,gte=0"`
	Confidence *float64 `json:"confidence" validate:"required,gte=0,lte=1"`
}

func (f foodItem) toDomain() domain.DetectedFood {
	food := domain.DetectedFood{
		Name:            *f.Name,
		PortionEstimate: *f.Portion,
		CalorieEstimate: *f.Calories,
		Confidence:      *f.Confidence,
	}
	if f.Protein != nil && f.Carbs != nil && f.Fat != nil {
		food.MacroEstimates = &domain.MacroEstimates{
			Protein: *f.Protein,
			Carbs:   *f.Carbs,
			Fat:     *f.Fat,
		}
	}
	return food
}

type generateResult struct {
	resp *domain.GenerateResponse
	err  error
}

// AnalyzeFoodImage estimates the foods and calories on a photo. The remote
// call is bounded by the configured timeout; a response that arrives after
// it is dropped.
func (s *AnalysisService) AnalyzeFoodImage(ctx context.Context, imageURI string) (*domain.AIFoodAnalysis, error) {
	start := time.Now()

	data, err := s.images.ReadBase64(ctx, imageURI)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan generateResult, 1)
	go func() {
		resp, err := s.generator.Generate(callCtx, domain.GenerateRequest{
			Prompt:    foodAnalysisPrompt,
			Image:     &domain.ImageInput{MediaType: mediaTypeFor(imageURI), Data: data},
			MaxTokens: s.cfg.MaxTokens,
		})
		done <- generateResult{resp: resp, err: err}
	}()

	timer := time.NewTimer(s.cfg.FoodTimeout)
	defer timer.Stop()

	var result generateResult
	select {
	case result = <-done:
	case <-timer.C:
		s.logger.Warn("food analysis timed out", "timeout", s.cfg.FoodTimeout)
		return nil, domain.NewTimeoutError(FoodAnalysisTimeoutMessage)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if result.err != nil {
		return nil, result.err
	}

	var payload foodPayload
	raw, err := decodeResponse(s.validate, result.resp, &payload)
	if err != nil {
		return nil, err
	}

	foods := make([]domain.DetectedFood, 0, len(payload.Foods))
	for _, f := range payload.Foods {
		foods = append(foods, f.toDomain())
	}

	return &domain.AIFoodAnalysis{
		RawResponse:      raw,
		DetectedFoods:    foods,
		TotalCalories:    *payload.TotalCalories,
		Notes:            payload.Notes,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		ModelUsed:        s.cfg.Model,
	}, nil
}

// ScanHandwrittenJournal transcribes a photographed journal page. It relies
// on the generator's own transport timeout.
func (s *AnalysisService) ScanHandwrittenJournal(ctx context.Context, imageURI string) (*domain.OCRResult, error) {
	start := time.Now()

	data, err := s.images.ReadBase64(ctx, imageURI)
	if err != nil {
		return nil, err
	}

	resp, err := s.generator.Generate(ctx, domain.GenerateRequest{
		Prompt:    journalOCRPrompt,
		Image:     &domain.ImageInput{MediaType: mediaTypeFor(imageURI), Data: data},
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	raw, err := firstText(resp)
	if err != nil {
		return nil, err
	}

	text, confidence := parseConfidence(raw)
	return &domain.OCRResult{
		Text:             text,
		Confidence:       confidence,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		RawResponse:      raw,
	}, nil
}

// parseConfidence strips a trailing "---\nConfidence: level" marker. Without
// one the text is returned as is with medium confidence.
func parseConfidence(raw string) (string, float64) {
	m := confidenceMarker.FindStringSubmatch(raw)
	if m == nil {
		return raw, domain.OCRConfidenceMedium
	}

	text := m[1]
	switch strings.ToLower(m[2]) {
	case "high":
		return text, domain.OCRConfidenceHigh
	case "low":
		return text, domain.OCRConfidenceLow
	default:
		return text, domain.OCRConfidenceMedium
	}
}

// mediaTypeFor picks the image media type from the URI's extension.
func mediaTypeFor(uri string) string {
	if strings.EqualFold(path.Ext(uri), ".png") {
		return domain.MediaTypePNG
	}
	return domain.MediaTypeJPEG
}
