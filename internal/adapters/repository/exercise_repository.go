package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var _ domain.ExerciseRepository = (*SQLExerciseRepository)(nil)

type SQLExerciseRepository struct {
	db *sqlx.DB
}

func NewSQLExerciseRepository(db *sqlx.DB) *SQLExerciseRepository {
	return &SQLExerciseRepository{db: db}
}

type exerciseRow struct {
	ID              string        `db:"id"`
	Date            string        `db:"date"`
	Type            string        `db:"type"`
	DurationMinutes int           `db:"duration_minutes"`
	CaloriesBurned  sql.NullInt64 `db:"calories_burned"`
	Notes           string        `db:"notes"`
	CreatedAt       string        `db:"created_at"`
}

func (r exerciseRow) toDomain() *domain.ExerciseSession {
	s := &domain.ExerciseSession{
		ID:              r.ID,
		Date:            r.Date,
		Type:            r.Type,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		CreatedAt:       parseTime(r.CreatedAt),
	}
	if r.CaloriesBurned.Valid {
		c := int(r.CaloriesBurned.Int64)
		s.CaloriesBurned = &c
	}
	return s
}

const exerciseColumns = `id, date, type, duration_minutes, calories_burned, notes, created_at`

func (r *SQLExerciseRepository) Create(ctx context.Context, s *domain.ExerciseSession) error {
	query := `
		INSERT INTO exercise_sessions (` + exerciseColumns + `)
		VALUES (:id, :date, :type, :duration_minutes, :calories_burned, :notes, :created_at)`

	row := exerciseRow{
		ID:              s.ID,
		Date:            s.Date,
		Type:            s.Type,
		DurationMinutes: s.DurationMinutes,
		Notes:           s.Notes,
		CreatedAt:       formatTime(s.CreatedAt),
	}
	if s.CaloriesBurned != nil {
		row.CaloriesBurned = sql.NullInt64{Int64: int64(*s.CaloriesBurned), Valid: true}
	}

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRecordExists
		}
		return domain.NewRepositoryError("exercise.create", err)
	}
	return nil
}

func (r *SQLExerciseRepository) ListAll(ctx context.Context) ([]*domain.ExerciseSession, error) {
	return r.list(ctx, `SELECT `+exerciseColumns+` FROM exercise_sessions ORDER BY date ASC`)
}

func (r *SQLExerciseRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.ExerciseSession, error) {
	query := r.db.Rebind(`SELECT ` + exerciseColumns + ` FROM exercise_sessions WHERE date >= ? AND date <= ? ORDER BY date ASC`)
	return r.list(ctx, query, startDate, endDate)
}

func (r *SQLExerciseRepository) list(ctx context.Context, query string, args ...any) ([]*domain.ExerciseSession, error) {
	var rows []exerciseRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.NewRepositoryError("exercise.list", err)
	}

	sessions := make([]*domain.ExerciseSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, row.toDomain())
	}
	return sessions, nil
}
