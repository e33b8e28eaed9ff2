package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
	"github.com/comitanigiacomo/kanso-insights/internal/platform/logger"
)

const foodReply = "Here is what I see on the plate:\n```json\n" + `{
  "foods": [
    {"name": "Spaghetti carbonara", "portion": "1 plate", "calories": 650, "protein": 25, "carbs": 70, "fat": 28, "confidence": 0.85},
    {"name": "Side salad", "portion": "1 small bowl", "calories": 80, "confidence": 0.6}
  ],
  "totalCalories": 730,
  "notes": "Dressing not visible"
}` + "\n```\nLet me know if you need more detail."

func newAnalysis(gen *MockGenerator, images *MockImageReader, timeout time.Duration) *services.AnalysisService {
	return services.NewAnalysisService(gen, images, services.AnalysisConfig{
		Model:       "claude-test",
		FoodTimeout: timeout,
	}, logger.Discard())
}

func withMediaType(mediaType string) any {
	return mock.MatchedBy(func(req domain.GenerateRequest) bool {
		return req.Image != nil && req.Image.MediaType == mediaType && req.Image.Data == "aGVsbG8="
	})
}

func TestAnalysisService_AnalyzeFoodImage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Extracts and maps the foods", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, "/tmp/lunch.jpg").Return("aGVsbG8=", nil)
		gen.On("Generate", mock.Anything, withMediaType(domain.MediaTypeJPEG)).Return(textResponse(foodReply), nil)

		got, err := newAnalysis(gen, images, time.Second).AnalyzeFoodImage(ctx, "/tmp/lunch.jpg")

		require.NoError(t, err)
		require.Len(t, got.DetectedFoods, 2)

		pasta := got.DetectedFoods[0]
		assert.Equal(t, "Spaghetti carbonara", pasta.Name)
		assert.Equal(t, "1 plate", pasta.PortionEstimate)
		assert.Equal(t, 650.0, pasta.CalorieEstimate)
		assert.Equal(t, 0.85, pasta.Confidence)
		require.NotNil(t, pasta.MacroEstimates)
		assert.Equal(t, domain.MacroEstimates{Protein: 25, Carbs: 70, Fat: 28}, *pasta.MacroEstimates)

		assert.Nil(t, got.DetectedFoods[1].MacroEstimates, "macros need all three values")
		assert.Equal(t, 730.0, got.TotalCalories)
		assert.Equal(t, "Dressing not visible", got.Notes)
		assert.Equal(t, foodReply, got.RawResponse)
		assert.Equal(t, "claude-test", got.ModelUsed)
		assert.GreaterOrEqual(t, got.ProcessingTimeMs, int64(0))
	})

	t.Run("PNG extension selects the PNG media type", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, "/tmp/plate.PNG").Return("aGVsbG8=", nil)
		gen.On("Generate", mock.Anything, withMediaType(domain.MediaTypePNG)).Return(textResponse(foodReply), nil)

		_, err := newAnalysis(gen, images, time.Second).AnalyzeFoodImage(ctx, "/tmp/plate.PNG")

		require.NoError(t, err)
		gen.AssertExpectations(t)
	})

	t.Run("Fail: Times out at the configured limit", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, mock.Anything).Return("aGVsbG8=", nil)

		cancelled := make(chan struct{})
		gen.On("Generate", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
				close(cancelled)
			}).
			Return(nil, context.Canceled)

		timeout := 80 * time.Millisecond
		start := time.Now()
		got, err := newAnalysis(gen, images, timeout).AnalyzeFoodImage(ctx, "/tmp/lunch.jpg")
		elapsed := time.Since(start)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrAnalysisTimeout)
		assert.EqualError(t, err, services.FoodAnalysisTimeoutMessage)
		assert.GreaterOrEqual(t, elapsed, timeout)
		assert.Less(t, elapsed, 2*time.Second)

		select {
		case <-cancelled:
		case <-time.After(time.Second):
			t.Fatal("abandoned call was not cancelled")
		}
	})

	t.Run("Fail: Response without a text block", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, mock.Anything).Return("aGVsbG8=", nil)
		gen.On("Generate", mock.Anything, mock.Anything).Return(&domain.GenerateResponse{
			Content: []domain.ContentBlock{{Type: "tool_use"}},
		}, nil)

		_, err := newAnalysis(gen, images, time.Second).AnalyzeFoodImage(ctx, "/tmp/lunch.jpg")

		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		assert.EqualError(t, err, "No text response from Claude")
	})

	t.Run("Fail: Text without JSON", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, mock.Anything).Return("aGVsbG8=", nil)
		gen.On("Generate", mock.Anything, mock.Anything).Return(textResponse("I cannot see any food in this picture."), nil)

		_, err := newAnalysis(gen, images, time.Second).AnalyzeFoodImage(ctx, "/tmp/lunch.jpg")

		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		assert.EqualError(t, err, "Could not find JSON in response")
	})

	t.Run("Fail: JSON not matching the schema", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, mock.Anything).Return("aGVsbG8=", nil)
		gen.On("Generate", mock.Anything, mock.Anything).
			Return(textResponse(`{"foods": [{"name": "Apple", "portion": "1", "calories": 95}]}`), nil)

		_, err := newAnalysis(gen, images, time.Second).AnalyzeFoodImage(ctx, "/tmp/lunch.jpg")

		assert.ErrorIs(t, err, domain.ErrResponseValidation)
		assert.NotErrorIs(t, err, domain.ErrMalformedResponse)
	})

	t.Run("Empty name and portion are accepted", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, mock.Anything).Return("aGVsbG8=", nil)
		gen.On("Generate", mock.Anything, mock.Anything).
			Return(textResponse(`{"foods": [{"name": "", "portion": "", "calories": 120, "confidence": 0.3}], "totalCalories": 120}`), nil)

		got, err := newAnalysis(gen, images, time.Second).AnalyzeFoodImage(ctx, "/tmp/lunch.jpg")

		require.NoError(t, err)
		require.Len(t, got.DetectedFoods, 1)
		assert.Empty(t, got.DetectedFoods[0].Name)
		assert.Equal(t, 120.0, got.DetectedFoods[0].CalorieEstimate)
	})

	t.Run("Fail: Missing name is a validation error", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, mock.Anything).Return("aGVsbG8=", nil)
		gen.On("Generate", mock.Anything, mock.Anything).
			Return(textResponse(`{"foods": [{"portion": "1", "calories": 95, "confidence": 0.9}], "totalCalories": 95}`), nil)

		_, err := newAnalysis(gen, images, time.Second).AnalyzeFoodImage(ctx, "/tmp/lunch.jpg")

		assert.ErrorIs(t, err, domain.ErrResponseValidation)
	})

	t.Run("Fail: Wrong field types are a validation error", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, mock.Anything).Return("aGVsbG8=", nil)
		gen.On("Generate", mock.Anything, mock.Anything).
			Return(textResponse(`{"foods": "none", "totalCalories": 0}`), nil)

		_, err := newAnalysis(gen, images, time.Second).AnalyzeFoodImage(ctx, "/tmp/lunch.jpg")

		assert.ErrorIs(t, err, domain.ErrResponseValidation)
	})

	t.Run("Fail: Generator error propagates", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, mock.Anything).Return("aGVsbG8=", nil)
		apiErr := errors.New("overloaded")
		gen.On("Generate", mock.Anything, mock.Anything).Return(nil, apiErr)

		_, err := newAnalysis(gen, images, time.Second).AnalyzeFoodImage(ctx, "/tmp/lunch.jpg")

		assert.ErrorIs(t, err, apiErr)
	})

	t.Run("Fail: Unreadable image never reaches the generator", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		readErr := errors.New("open /tmp/missing.jpg: no such file or directory")
		images.On("ReadBase64", mock.Anything, mock.Anything).Return("", readErr)

		_, err := newAnalysis(gen, images, time.Second).AnalyzeFoodImage(ctx, "/tmp/missing.jpg")

		assert.ErrorIs(t, err, readErr)
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})
}

func TestAnalysisService_ScanHandwrittenJournal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		reply      string
		wantText   string
		wantConfid float64
	}{
		{
			name:       "High confidence marker is stripped",
			reply:      "Slept badly, long walk in the afternoon.\nFelt better after dinner.\n---\nConfidence: high",
			wantText:   "Slept badly, long walk in the afternoon.\nFelt better after dinner.",
			wantConfid: domain.OCRConfidenceHigh,
		},
		{
			name:       "Low confidence marker",
			reply:      "Some words I can read\n---\nConfidence: LOW\n",
			wantText:   "Some words I can read",
			wantConfid: domain.OCRConfidenceLow,
		},
		{
			name:       "Only the marker and its separator are stripped",
			reply:      "Ran 5km.  \n\n---\nConfidence: high",
			wantText:   "Ran 5km.  \n",
			wantConfid: domain.OCRConfidenceHigh,
		},
		{
			name:       "Missing marker defaults to medium",
			reply:      "Just the transcription.",
			wantText:   "Just the transcription.",
			wantConfid: domain.OCRConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, images := new(MockGenerator), new(MockImageReader)
			images.On("ReadBase64", mock.Anything, "/tmp/page.jpeg").Return("aGVsbG8=", nil)
			gen.On("Generate", mock.Anything, withMediaType(domain.MediaTypeJPEG)).Return(textResponse(tt.reply), nil)

			got, err := newAnalysis(gen, images, time.Second).ScanHandwrittenJournal(ctx, "/tmp/page.jpeg")

			require.NoError(t, err)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantConfid, got.Confidence)
			assert.Equal(t, tt.reply, got.RawResponse)
		})
	}

	t.Run("Fail: Response without a text block", func(t *testing.T) {
		gen, images := new(MockGenerator), new(MockImageReader)
		images.On("ReadBase64", mock.Anything, mock.Anything).Return("aGVsbG8=", nil)
		gen.On("Generate", mock.Anything, mock.Anything).Return(&domain.GenerateResponse{}, nil)

		got, err := newAnalysis(gen, images, time.Second).ScanHandwrittenJournal(ctx, "/tmp/page.png")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	})
}
