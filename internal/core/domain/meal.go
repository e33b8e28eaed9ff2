package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidMealType = errors.New("invalid meal type (must be breakfast, lunch, dinner, or snack)")
	ErrInvalidCalories = errors.New("calories cannot be negative")
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

type Meal struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	MealType      string    `json:"meal_type"`
	Description   string    `json:"description,omitempty"`
	TotalCalories float64   `json:"total_calories"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewMeal(date, mealType, description string, totalCalories float64) (*Meal, error) {
	m := &Meal{
		ID:            uuid.NewString(),
		Date:          date,
		MealType:      strings.ToLower(strings.TrimSpace(mealType)),
		Description:   strings.TrimSpace(description),
		TotalCalories: totalCalories,
		CreatedAt:     time.Now().UTC(),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Meal) Validate() error {
	if !ValidDate(m.Date) {
		return ErrInvalidDate
	}
	switch m.MealType {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
	default:
		return ErrInvalidMealType
	}
	if m.TotalCalories < 0 {
		return ErrInvalidCalories
	}
	return nil
}
