package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

func TestNewHabit(t *testing.T) {
	t.Run("Success: Creates valid habit with defaults", func(t *testing.T) {
		h, err := domain.NewHabit("  Drink Water ", "", "", "", "")

		assert.Nil(t, err)
		assert.NotNil(t, h)
		assert.Equal(t, "Drink Water", h.Title)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, domain.HabitFreqDaily, h.Frequency)
		assert.Equal(t, domain.DefaultIcon, h.Icon)
		assert.False(t, h.IsArchived())
		assert.WithinDuration(t, time.Now().UTC(), h.CreatedAt, 2*time.Second)
	})

	t.Run("Error: Empty Title", func(t *testing.T) {
		_, err := domain.NewHabit("   ", "", "", "", "")
		assert.Equal(t, domain.ErrHabitTitleEmpty, err)
	})
}

func TestHabit_Validation(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		color       string
		frequency   string
		wantErr     error
	}{
		{name: "Success: Weekly habit", title: "Long run", frequency: domain.HabitFreqWeekly},
		{name: "Success: Short hex color", title: "Read", color: "#fff", frequency: domain.HabitFreqCustom},
		{name: "Error: Title too long", title: strings.Repeat("a", domain.MaxTitleLen+1), wantErr: domain.ErrHabitTitleTooLong},
		{name: "Error: Description too long", title: "Read", description: strings.Repeat("d", domain.MaxDescLen+1), wantErr: domain.ErrHabitDescTooLong},
		{name: "Error: Invalid color", title: "Read", color: "red", wantErr: domain.ErrInvalidColor},
		{name: "Error: Unknown frequency", title: "Read", frequency: "hourly", wantErr: domain.ErrInvalidFrequency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := domain.NewHabit(tt.title, tt.description, tt.color, "", tt.frequency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.frequency, h.Frequency)
		})
	}
}

func TestHabit_ArchiveRestore(t *testing.T) {
	h, _ := domain.NewHabit("Meditate", "", "", "", "")

	h.Archive()
	assert.True(t, h.IsArchived())
	first := *h.ArchivedAt

	h.Archive()
	assert.Equal(t, first, *h.ArchivedAt, "Archiving twice must not move the timestamp")

	h.Restore()
	assert.False(t, h.IsArchived())
}
