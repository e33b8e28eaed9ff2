package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

var _ domain.MealRepository = (*SQLMealRepository)(nil)

type SQLMealRepository struct {
	db *sqlx.DB
}

func NewSQLMealRepository(db *sqlx.DB) *SQLMealRepository {
	return &SQLMealRepository{db: db}
}

type mealRow struct {
	ID            string  `db:"id"`
	Date          string  `db:"date"`
	MealType      string  `db:"meal_type"`
	Description   string  `db:"description"`
	TotalCalories float64 `db:"total_calories"`
	CreatedAt     string  `db:"created_at"`
}

const mealColumns = `id, date, meal_type, description, total_calories, created_at`

func (r *SQLMealRepository) Create(ctx context.Context, m *domain.Meal) error {
	query := `
		INSERT INTO meals (` + mealColumns + `)
		VALUES (:id, :date, :meal_type, :description, :total_calories, :created_at)`

	row := mealRow{
		ID:            m.ID,
		Date:          m.Date,
		MealType:      m.MealType,
		Description:   m.Description,
		TotalCalories: m.TotalCalories,
		CreatedAt:     formatTime(m.CreatedAt),
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRecordExists
		}
		return domain.NewRepositoryError("meals.create", err)
	}
	return nil
}

func (r *SQLMealRepository) ListAll(ctx context.Context) ([]*domain.Meal, error) {
	return r.list(ctx, `SELECT `+mealColumns+` FROM meals ORDER BY date ASC`)
}

func (r *SQLMealRepository) ListByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Meal, error) {
	query := r.db.Rebind(`SELECT ` + mealColumns + ` FROM meals WHERE date >= ? AND date <= ? ORDER BY date ASC`)
	return r.list(ctx, query, startDate, endDate)
}

func (r *SQLMealRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Meal, error) {
	var rows []mealRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.NewRepositoryError("meals.list", err)
	}

	meals := make([]*domain.Meal, 0, len(rows))
	for _, row := range rows {
		meals = append(meals, &domain.Meal{
			ID:            row.ID,
			Date:          row.Date,
			MealType:      row.MealType,
			Description:   row.Description,
			TotalCalories: row.TotalCalories,
			CreatedAt:     parseTime(row.CreatedAt),
		})
	}
	return meals, nil
}
