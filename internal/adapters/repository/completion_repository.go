package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var _ domain.HabitCompletionRepository = (*SQLCompletionRepository)(nil)

type SQLCompletionRepository struct {
	db *sqlx.DB
}

func NewSQLCompletionRepository(db *sqlx.DB) *SQLCompletionRepository {
	return &SQLCompletionRepository{db: db}
}

type completionRow struct {
	ID        string `db:"id"`
	HabitID   string `db:"habit_id"`
	Date      string `db:"date"`
	Completed bool   `db:"completed"`
	Notes     string `db:"notes"`
	CreatedAt string `db:"created_at"`
}

func (r *SQLCompletionRepository) Create(ctx context.Context, c *domain.HabitCompletion) error {
	query := `
		INSERT INTO habit_completions (id, habit_id, date, completed, notes, created_at)
		VALUES (:id, :habit_id, :date, :completed, :notes, :created_at)`

	row := completionRow{
		ID:        c.ID,
		HabitID:   c.HabitID,
		Date:      c.Date,
		Completed: c.Completed,
		Notes:     c.Notes,
		CreatedAt: formatTime(c.CreatedAt),
	}

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrRecordExists
		case isForeignKeyViolation(err):
			return domain.ErrHabitNotFound
		}
		return domain.NewRepositoryError("completions.create", err)
	}
	return nil
}

func (r *SQLCompletionRepository) ListForHabit(ctx context.Context, habitID, startDate, endDate string) ([]*domain.HabitCompletion, error) {
	var rows []completionRow
	query := r.db.Rebind(`
		SELECT id, habit_id, date, completed, notes, created_at
		FROM habit_completions
		WHERE habit_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`)

	if err := r.db.SelectContext(ctx, &rows, query, habitID, startDate, endDate); err != nil {
		return nil, domain.NewRepositoryError("completions.list", err)
	}

	completions := make([]*domain.HabitCompletion, 0, len(rows))
	for _, row := range rows {
		completions = append(completions, &domain.HabitCompletion{
			ID:        row.ID,
			HabitID:   row.HabitID,
			Date:      row.Date,
			Completed: row.Completed,
			Notes:     row.Notes,
			CreatedAt: parseTime(row.CreatedAt),
		})
	}
	return completions, nil
}
