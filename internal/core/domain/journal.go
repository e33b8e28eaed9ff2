package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrJournalEmpty  = errors.New("journal content cannot be empty")
	ErrInvalidMood   = errors.New("mood must be between 1 and 5")
	ErrInvalidSource = errors.New("invalid journal source (must be typed or ocr)")
)

const (
	JournalSourceTyped = "typed"
	JournalSourceOCR   = "ocr"
)

// JournalEntry is a free-text diary entry, typed or transcribed from a
// handwritten page, optionally tagged with a 1–5 mood.
type JournalEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	Mood      *int      `json:"mood,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

func NewJournalEntry(date, content string, mood *int, source string) (*JournalEntry, error) {
	if source == "" {
		source = JournalSourceTyped
	}
	e := &JournalEntry{
		ID:        uuid.NewString(),
		Date:      date,
		Content:   strings.TrimSpace(content),
		Mood:      mood,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *JournalEntry) Validate() error {
	if !ValidDate(e.Date) {
		return ErrInvalidDate
	}
	if e.Content == "" {
		return ErrJournalEmpty
	}
	if e.Mood != nil && (*e.Mood < 1 || *e.Mood > 5) {
		return ErrInvalidMood
	}
	if e.Source != JournalSourceTyped && e.Source != JournalSourceOCR {
		return ErrInvalidSource
	}
	return nil
}
