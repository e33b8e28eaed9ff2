package domain

import (
	"context"
	"errors"
)

// Content block types returned by a Generator.
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
)

const (
	MediaTypePNG  = "image/png"
	MediaTypeJPEG = "image/jpeg"
)

// ImageInput is a base64-encoded image attached to a request.
type ImageInput struct {
	MediaType string
	Data      string
}

type GenerateRequest struct {
	System    string
	Prompt    string
	Image     *ImageInput
	MaxTokens int
}

type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type GenerateResponse struct {
	Model   string         `json:"model"`
	Content []ContentBlock `json:"content"`
}

// Generator is the external text/image understanding provider.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// ImageReader loads a local image and returns its content base64-encoded.
type ImageReader interface {
	ReadBase64(ctx context.Context, uri string) (string, error)
}

type MacroEstimates struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type DetectedFood struct {
	Name            string          `json:"name"`
	PortionEstimate string          `json:"portion_estimate"`
	CalorieEstimate float64         `json:"calorie_estimate"`
	MacroEstimates  *MacroEstimates `json:"macro_estimates,omitempty"`
	Confidence      float64         `json:"confidence"`
}

type AIFoodAnalysis struct {
	RawResponse      string         `json:"raw_response"`
	DetectedFoods    []DetectedFood `json:"detected_foods"`
	TotalCalories    float64        `json:"total_calories"`
	Notes            string         `json:"notes,omitempty"`
	ProcessingTimeMs int64          `json:"processing_time_ms"`
	ModelUsed        string         `json:"model_used"`
}

// OCR confidence scale.
const (
	OCRConfidenceHigh   = 0.9
	OCRConfidenceMedium = 0.7
	OCRConfidenceLow    = 0.4
)

type OCRResult struct {
	Text             string  `json:"text"`
	Confidence       float64 `json:"confidence"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
	RawResponse      string  `json:"raw_response"`
}

var (
	ErrAnalysisTimeout    = errors.New("analysis timed out")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrResponseValidation = errors.New("response validation failed")
)

// AnalysisError is a failed remote analysis. Kind is one of the Err*
// sentinels above; Message is shown to the user.
type AnalysisError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NewTimeoutError(message string) *AnalysisError {
	return &AnalysisError{Kind: ErrAnalysisTimeout, Message: message}
}

func NewMalformedResponseError(message string) *AnalysisError {
	return &AnalysisError{Kind: ErrMalformedResponse, Message: message}
}

func NewValidationError(err error) *AnalysisError {
	return &AnalysisError{Kind: ErrResponseValidation, Message: err.Error(), Err: err}
}
