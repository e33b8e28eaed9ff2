package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrExerciseTypeEmpty       = errors.New("exercise type cannot be empty")
	ErrInvalidExerciseDuration = errors.New("exercise duration must be between 1 and 1440 minutes")
	ErrInvalidCaloriesBurned   = errors.New("calories burned cannot be negative")
)

type ExerciseSession struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"duration_minutes"`
	CaloriesBurned  *int      `json:"calories_burned,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewExerciseSession(date, exerciseType string, durationMinutes int, caloriesBurned *int, notes string) (*ExerciseSession, error) {
	s := &ExerciseSession{
		ID:              uuid.NewString(),
		Date:            date,
		Type:            strings.TrimSpace(exerciseType),
		DurationMinutes: durationMinutes,
		CaloriesBurned:  caloriesBurned,
		Notes:           strings.TrimSpace(notes),
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ExerciseSession) Validate() error {
	if !ValidDate(s.Date) {
		return ErrInvalidDate
	}
	if s.Type == "" {
		return ErrExerciseTypeEmpty
	}
	if s.DurationMinutes <= 0 || s.DurationMinutes > 24*60 {
		return ErrInvalidExerciseDuration
	}
	if s.CaloriesBurned != nil && *s.CaloriesBurned < 0 {
		return ErrInvalidCaloriesBurned
	}
	return nil
}
