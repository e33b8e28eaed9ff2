package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var _ domain.JournalRepository = (*SQLJournalRepository)(nil)

type SQLJournalRepository struct {
	db *sqlx.DB
}

func NewSQLJournalRepository(db *sqlx.DB) *SQLJournalRepository {
	return &SQLJournalRepository{db: db}
}

type journalRow struct {
	ID        string        `db:"id"`
	Date      string        `db:"date"`
	Content   string        `db:"content"`
	Mood      sql.NullInt64 `db:"mood"`
	Source    string        `db:"source"`
	CreatedAt string        `db:"created_at"`
}

func (r *SQLJournalRepository) Create(ctx context.Context, e *domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, date, content, mood, source, created_at)
		VALUES (:id, :date, :content, :mood, :source, :created_at)`

	row := journalRow{
		ID:        e.ID,
		Date:      e.Date,
		Content:   e.Content,
		Source:    e.Source,
		CreatedAt: formatTime(e.CreatedAt),
	}
	if e.Mood != nil {
		row.Mood = sql.NullInt64{Int64: int64(*e.Mood), Valid: true}
	}

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRecordExists
		}
		return domain.NewRepositoryError("journal.create", err)
	}
	return nil
}

func (r *SQLJournalRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.JournalEntry, error) {
	var rows []journalRow
	query := r.db.Rebind(`
		SELECT id, date, content, mood, source, created_at
		FROM journal_entries
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC`)

	if err := r.db.SelectContext(ctx, &rows, query, startDate, endDate); err != nil {
		return nil, domain.NewRepositoryError("journal.list", err)
	}

	entries := make([]*domain.JournalEntry, 0, len(rows))
	for _, row := range rows {
		e := &domain.JournalEntry{
			ID:        row.ID,
			Date:      row.Date,
			Content:   row.Content,
			Source:    row.Source,
			CreatedAt: parseTime(row.CreatedAt),
		}
		if row.Mood.Valid {
			mood := int(row.Mood.Int64)
			e.Mood = &mood
		}
		entries = append(entries, e)
	}
	return entries, nil
}
