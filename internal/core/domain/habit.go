package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty   = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong = errors.New("habit title is too long (max 100 chars)")
	ErrHabitDescTooLong  = errors.New("habit description is too long (max 500 chars)")
	ErrInvalidColor      = errors.New("invalid color format (must be #RRGGBB)")
	ErrInvalidFrequency  = errors.New("invalid frequency (must be daily, weekly, or custom)")
	ErrHabitArchived     = errors.New("habit is archived")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	HabitFreqDaily  = "daily"
	HabitFreqWeekly = "weekly"
	HabitFreqCustom = "custom"
	DefaultIcon     = "default_icon"
	MaxTitleLen     = 100
	MaxDescLen      = 500
)

type Habit struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color"`
	Icon        string     `json:"icon"`
	Frequency   string     `json:"frequency"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

func validateHabit(title, desc, color, frequency string) error {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return ErrHabitTitleEmpty
	}
	if len(trimmedTitle) > MaxTitleLen {
		return ErrHabitTitleTooLong
	}

	if len(strings.TrimSpace(desc)) > MaxDescLen {
		return ErrHabitDescTooLong
	}

	if color != "" && !colorRegex.MatchString(color) {
		return ErrInvalidColor
	}

	switch frequency {
	case HabitFreqDaily, HabitFreqWeekly, HabitFreqCustom:
	default:
		return ErrInvalidFrequency
	}

	return nil
}

// NewHabit validates and builds a habit. An empty frequency means daily.
func NewHabit(title, description, color, icon, frequency string) (*Habit, error) {
	if frequency == "" {
		frequency = HabitFreqDaily
	}

	if err := validateHabit(title, description, color, frequency); err != nil {
		return nil, err
	}

	if icon == "" {
		icon = DefaultIcon
	}

	now := time.Now().UTC()

	return &Habit{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Color:       color,
		Icon:        icon,
		Frequency:   frequency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (h *Habit) IsArchived() bool {
	return h.ArchivedAt != nil
}

func (h *Habit) Archive() {
	if h.ArchivedAt != nil {
		return
	}

	now := time.Now().UTC()
	h.ArchivedAt = &now
	h.UpdatedAt = now
}

func (h *Habit) Restore() {
	if h.ArchivedAt == nil {
		return
	}
	h.ArchivedAt = nil
	h.UpdatedAt = time.Now().UTC()
}
