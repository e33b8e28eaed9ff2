package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSleepDuration = errors.New("sleep duration must be between 1 and 1440 minutes")
	ErrInvalidSleepQuality  = errors.New("sleep quality must be between 1 and 5")
)

const (
	MinSleepQuality = 1
	MaxSleepQuality = 5
)

type SleepEntry struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Quality         int       `json:"quality"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewSleepEntry(date string, durationMinutes, quality int, notes string) (*SleepEntry, error) {
	e := &SleepEntry{
		ID:              uuid.NewString(),
		Date:            date,
		DurationMinutes: durationMinutes,
		Quality:         quality,
		Notes:           strings.TrimSpace(notes),
		CreatedAt:       time.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *SleepEntry) Validate() error {
	if !ValidDate(e.Date) {
		return ErrInvalidDate
	}
	if e.DurationMinutes <= 0 || e.DurationMinutes > 24*60 {
		return ErrInvalidSleepDuration
	}
	if e.Quality < MinSleepQuality || e.Quality > MaxSleepQuality {
		return ErrInvalidSleepQuality
	}
	return nil
}

// Hours returns the sleep duration in hours.
func (e *SleepEntry) Hours() float64 {
	return float64(e.DurationMinutes) / 60
}
