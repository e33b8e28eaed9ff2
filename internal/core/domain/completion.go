package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCompletionHabitRequired = errors.New("habit_id is required")
	ErrCompletionNotesTooLong  = errors.New("notes are too long (max 500 chars)")
)

// HabitCompletion records whether a habit was done on a given day.
type HabitCompletion struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewHabitCompletion(habitID, date string, completed bool, notes string) (*HabitCompletion, error) {
	c := &HabitCompletion{
		ID:        uuid.NewString(),
		HabitID:   strings.TrimSpace(habitID),
		Date:      date,
		Completed: completed,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *HabitCompletion) Validate() error {
	if c.HabitID == "" {
		return ErrCompletionHabitRequired
	}
	if !ValidDate(c.Date) {
		return ErrInvalidDate
	}
	if len(c.Notes) > MaxDescLen {
		return ErrCompletionNotesTooLong
	}
	return nil
}
