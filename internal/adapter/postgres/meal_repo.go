package postgres

import (
	"context"
	"database/sql"
	"time"

	"wellness/internal/domain"
)

// CreateMeal inserts a planned meal.
func (d *DB) CreateMeal(ctx context.Context, m domain.Meal) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO meals (user_id, name, category, day, calories) VALUES ($1, $2, $3, $4, $5) RETURNING id;",
		m.UserID, m.Name, string(m.Category), m.Day, m.Calories,
	).Scan(&id)
	if err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// UpdateMeal overwrites a meal, scoped to its owner.
func (d *DB) UpdateMeal(ctx context.Context, m domain.Meal) error {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE meals SET name=$1, category=$2, day=$3, calories=$4 WHERE id=$5 AND user_id=$6;",
		m.Name, string(m.Category), m.Day, m.Calories, m.ID, m.UserID,
	)
	if err != nil {
		return classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteMeal removes a meal, scoped to its owner.
func (d *DB) DeleteMeal(ctx context.Context, userID, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM meals WHERE id=$1 AND user_id=$2;", id, userID)
	return err
}

// ListMeals returns all of the user's meals ordered by day, then category.
func (d *DB) ListMeals(ctx context.Context, userID int64) ([]domain.Meal, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, name, category, day, calories FROM meals WHERE user_id=$1 ORDER BY day ASC, category ASC;",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMeals(rows)
}

// ListMealsForRange returns meals with from <= day <= to, ordered by day.
func (d *DB) ListMealsForRange(ctx context.Context, userID int64, from, to string) ([]domain.Meal, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, name, category, day, calories FROM meals WHERE user_id=$1 AND day >= $2 AND day <= $3 ORDER BY day ASC;",
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMeals(rows)
}

func scanMeals(rows *sql.Rows) ([]domain.Meal, error) {
	var out []domain.Meal
	for rows.Next() {
		var m domain.Meal
		var category string
		var day time.Time
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &category, &day, &m.Calories); err != nil {
			return nil, err
		}
		m.Category = domain.MealCategory(category)
		m.Day = day.Format(domain.DayFormat)
		out = append(out, m)
	}
	return out, rows.Err()
}

// AddGroceryItem appends one line to the user's grocery list.
func (d *DB) AddGroceryItem(ctx context.Context, item domain.GroceryItem) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO grocery_items (user_id, name, quantity, purchased) VALUES ($1, $2, $3, $4) RETURNING id;",
		item.UserID, item.Name, item.Quantity, item.Purchased,
	).Scan(&id)
	if err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// SetGroceryPurchased flips the purchased flag, scoped to the owner.
func (d *DB) SetGroceryPurchased(ctx context.Context, userID, id int64, purchased bool) error {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE grocery_items SET purchased=$1 WHERE id=$2 AND user_id=$3;",
		purchased, id, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveGroceryItem deletes one grocery line, scoped to the owner.
func (d *DB) RemoveGroceryItem(ctx context.Context, userID, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM grocery_items WHERE id=$1 AND user_id=$2;", id, userID)
	return err
}

// ListGroceryItems returns the user's grocery list, unpurchased lines first.
func (d *DB) ListGroceryItems(ctx context.Context, userID int64) ([]domain.GroceryItem, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, name, quantity, purchased FROM grocery_items WHERE user_id=$1 ORDER BY purchased ASC, id ASC;",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GroceryItem
	for rows.Next() {
		var item domain.GroceryItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Purchased); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
