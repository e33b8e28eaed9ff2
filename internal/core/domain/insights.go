package domain

import "time"

// ArtifactKind names one category of AI-generated content.
type ArtifactKind string

const (
	ArtifactDailyCoaching          ArtifactKind = "daily_coaching"
	ArtifactHabitSuggestions       ArtifactKind = "habit_suggestions"
	ArtifactSleepAnalysis          ArtifactKind = "sleep_analysis"
	ArtifactExerciseRecommendation ArtifactKind = "exercise_recommendation"
	ArtifactMoodAnalysis           ArtifactKind = "mood_analysis"
	ArtifactNutritionAdvice        ArtifactKind = "nutrition_advice"
)

// ArtifactKinds lists every kind in display order.
var ArtifactKinds = []ArtifactKind{
	ArtifactDailyCoaching,
	ArtifactHabitSuggestions,
	ArtifactSleepAnalysis,
	ArtifactExerciseRecommendation,
	ArtifactMoodAnalysis,
	ArtifactNutritionAdvice,
}

type DailyCoaching struct {
	Message     string    `json:"message" validate:"required"`
	FocusArea   string    `json:"focusArea" validate:"required"`
	ActionItems []string  `json:"actionItems" validate:"omitempty,dive,required"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type HabitSuggestion struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Frequency   string `json:"frequency" validate:"omitempty,oneof=daily weekly custom"`
	Reason      string `json:"reason"`
}

type SleepAnalysis struct {
	Summary         string   `json:"summary" validate:"required"`
	QualityScore    float64  `json:"qualityScore" validate:"gte=0,lte=100"`
	Patterns        []string `json:"patterns"`
	Recommendations []string `json:"recommendations" validate:"required,min=1,dive,required"`
}

type ExerciseRecommendation struct {
	Summary             string   `json:"summary" validate:"required"`
	Intensity           string   `json:"intensity" validate:"required,oneof=low moderate high"`
	SuggestedActivities []string `json:"suggestedActivities" validate:"required,min=1,dive,required"`
	WeeklyGoalMinutes   int      `json:"weeklyGoalMinutes" validate:"gte=0"`
}

type MoodAnalysis struct {
	Summary     string   `json:"summary" validate:"required"`
	OverallMood string   `json:"overallMood" validate:"required"`
	Patterns    []string `json:"patterns"`
	Suggestions []string `json:"suggestions" validate:"required,min=1,dive,required"`
}

type NutritionAdvice struct {
	Summary         string   `json:"summary" validate:"required"`
	CalorieTarget   float64  `json:"calorieTarget" validate:"gte=0"`
	Tips            []string `json:"tips" validate:"required,min=1,dive,required"`
	FoodsToConsider []string `json:"foodsToConsider"`
}

// InsightsState is the observable state of the insights store. Nil artifacts
// have not been fetched (or were cleared).
type InsightsState struct {
	DailyCoaching          *DailyCoaching          `json:"daily_coaching"`
	HabitSuggestions       []HabitSuggestion       `json:"habit_suggestions"`
	SleepAnalysis          *SleepAnalysis          `json:"sleep_analysis"`
	ExerciseRecommendation *ExerciseRecommendation `json:"exercise_recommendation"`
	MoodAnalysis           *MoodAnalysis           `json:"mood_analysis"`
	NutritionAdvice        *NutritionAdvice        `json:"nutrition_advice"`

	IsLoadingCoaching    bool `json:"is_loading_coaching"`
	IsLoadingSuggestions bool `json:"is_loading_suggestions"`
	IsLoadingSleep       bool `json:"is_loading_sleep"`
	IsLoadingExercise    bool `json:"is_loading_exercise"`
	IsLoadingMood        bool `json:"is_loading_mood"`
	IsLoadingNutrition   bool `json:"is_loading_nutrition"`

	Error *string `json:"error"`

	// LastCoachingFetch is in milliseconds since the Unix epoch.
	LastCoachingFetch *int64 `json:"last_coaching_fetch"`
}

// Loading returns a pointer to the loading flag of kind.
func (s *InsightsState) Loading(kind ArtifactKind) *bool {
	switch kind {
	case ArtifactDailyCoaching:
		return &s.IsLoadingCoaching
	case ArtifactHabitSuggestions:
		return &s.IsLoadingSuggestions
	case ArtifactSleepAnalysis:
		return &s.IsLoadingSleep
	case ArtifactExerciseRecommendation:
		return &s.IsLoadingExercise
	case ArtifactMoodAnalysis:
		return &s.IsLoadingMood
	case ArtifactNutritionAdvice:
		return &s.IsLoadingNutrition
	}
	return nil
}

// Clone returns a copy that shares no mutable memory with s.
func (s InsightsState) Clone() InsightsState {
	c := s
	if s.DailyCoaching != nil {
		v := *s.DailyCoaching
		v.ActionItems = append([]string(nil), s.DailyCoaching.ActionItems...)
		c.DailyCoaching = &v
	}
	if s.HabitSuggestions != nil {
		c.HabitSuggestions = append([]HabitSuggestion(nil), s.HabitSuggestions...)
	}
	if s.SleepAnalysis != nil {
		v := *s.SleepAnalysis
		c.SleepAnalysis = &v
	}
	if s.ExerciseRecommendation != nil {
		v := *s.ExerciseRecommendation
		c.ExerciseRecommendation = &v
	}
	if s.MoodAnalysis != nil {
		v := *s.MoodAnalysis
		c.MoodAnalysis = &v
	}
	if s.NutritionAdvice != nil {
		v := *s.NutritionAdvice
		c.NutritionAdvice = &v
	}
	if s.Error != nil {
		v := *s.Error
		c.Error = &v
	}
	if s.LastCoachingFetch != nil {
		v := *s.LastCoachingFetch
		c.LastCoachingFetch = &v
	}
	return c
}
