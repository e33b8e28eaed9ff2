package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var _ domain.HabitRepository = (*SQLHabitRepository)(nil)

type SQLHabitRepository struct {
	db *sqlx.DB
}

func NewSQLHabitRepository(db *sqlx.DB) *SQLHabitRepository {
	return &SQLHabitRepository{db: db}
}

type habitRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Color       string         `db:"color"`
	Icon        string         `db:"icon"`
	Frequency   string         `db:"frequency"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
	ArchivedAt  sql.NullString `db:"archived_at"`
}

func toHabitRow(h *domain.Habit) habitRow {
	return habitRow{
		ID:          h.ID,
		Title:       h.Title,
		Description: h.Description,
		Color:       h.Color,
		Icon:        h.Icon,
		Frequency:   h.Frequency,
		CreatedAt:   formatTime(h.CreatedAt),
		UpdatedAt:   formatTime(h.UpdatedAt),
		ArchivedAt:  formatNullTime(h.ArchivedAt),
	}
}

func (r habitRow) toDomain() *domain.Habit {
	return &domain.Habit{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		Frequency:   r.Frequency,
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
		ArchivedAt:  parseNullTime(r.ArchivedAt),
	}
}

const habitColumns = `id, title, description, color, icon, frequency, created_at, updated_at, archived_at`

func (r *SQLHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
		INSERT INTO habits (` + habitColumns + `)
		VALUES (:id, :title, :description, :color, :icon, :frequency, :created_at, :updated_at, :archived_at)`

	if _, err := r.db.NamedExecContext(ctx, query, toHabitRow(h)); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRecordExists
		}
		return domain.NewRepositoryError("habits.create", err)
	}
	return nil
}

func (r *SQLHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var row habitRow
	query := r.db.Rebind(`SELECT ` + habitColumns + ` FROM habits WHERE id = ?`)

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, domain.NewRepositoryError("habits.get", err)
	}
	return row.toDomain(), nil
}

func (r *SQLHabitRepository) ListAll(ctx context.Context) ([]*domain.Habit, error) {
	var rows []habitRow
	query := `SELECT ` + habitColumns + ` FROM habits WHERE archived_at IS NULL ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, domain.NewRepositoryError("habits.list", err)
	}

	habits := make([]*domain.Habit, 0, len(rows))
	for _, row := range rows {
		habits = append(habits, row.toDomain())
	}
	return habits, nil
}

func (r *SQLHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
		UPDATE habits SET
			title = :title, description = :description, color = :color, icon = :icon,
			frequency = :frequency, updated_at = :updated_at, archived_at = :archived_at
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, toHabitRow(h))
	if err != nil {
		return domain.NewRepositoryError("habits.update", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.NewRepositoryError("habits.update", err)
	}
	if affected == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}
