package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var _ domain.SleepRepository = (*SQLSleepRepository)(nil)

type SQLSleepRepository struct {
	db *sqlx.DB
}

func NewSQLSleepRepository(db *sqlx.DB) *SQLSleepRepository {
	return &SQLSleepRepository{db: db}
}

type sleepRow struct {
	ID              string `db:"id"`
	Date            string `db:"date"`
	DurationMinutes int    `db:"duration_minutes"`
	Quality         int    `db:"quality"`
	Notes           string `db:"notes"`
	CreatedAt       string `db:"created_at"`
}

func (r sleepRow) toDomain() *domain.SleepEntry {
	return &domain.SleepEntry{
		ID:              r.ID,
		Date:            r.Date,
		DurationMinutes: r.DurationMinutes,
		Quality:         r.Quality,
		Notes:           r.Notes,
		CreatedAt:       parseTime(r.CreatedAt),
	}
}

const sleepColumns = `id, date, duration_minutes, quality, notes, created_at`

func (r *SQLSleepRepository) Create(ctx context.Context, e *domain.SleepEntry) error {
	query := `
		INSERT INTO sleep_entries (` + sleepColumns + `)
		VALUES (:id, :date, :duration_minutes, :quality, :notes, :created_at)`

	row := sleepRow{
		ID:              e.ID,
		Date:            e.Date,
		DurationMinutes: e.DurationMinutes,
		Quality:         e.Quality,
		Notes:           e.Notes,
		CreatedAt:       formatTime(e.CreatedAt),
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRecordExists
		}
		return domain.NewRepositoryError("sleep.create", err)
	}
	return nil
}

func (r *SQLSleepRepository) ListAll(ctx context.Context) ([]*domain.SleepEntry, error) {
	return r.list(ctx, `SELECT `+sleepColumns+` FROM sleep_entries ORDER BY date ASC`)
}

func (r *SQLSleepRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.SleepEntry, error) {
	query := r.db.Rebind(`SELECT ` + sleepColumns + ` FROM sleep_entries WHERE date >= ? AND date <= ? ORDER BY date ASC`)
	return r.list(ctx, query, startDate, endDate)
}

func (r *SQLSleepRepository) list(ctx context.Context, query string, args ...any) ([]*domain.SleepEntry, error) {
	var rows []sleepRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.NewRepositoryError("sleep.list", err)
	}

	entries := make([]*domain.SleepEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain())
	}
	return entries, nil
}
