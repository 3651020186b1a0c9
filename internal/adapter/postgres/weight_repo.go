package postgres

import (
	"context"
	"time"

	"wellness/internal/domain"
)

// UpsertEntry inserts a weight entry, or overwrites weight/height/age/bmi in
// place when a row for ("userId", "date") already exists. The single
// statement keeps the one-row-per-user-per-day invariant under concurrent
// submissions. The returned flag is true when a new row was created (xmax is
// zero only for freshly inserted tuples).
func (d *DB) UpsertEntry(ctx context.Context, e domain.WeightEntry) (bool, error) {
	var created bool
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO weight_history ("userId", "date", weight, height, age, bmi)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT ("userId", "date") DO UPDATE
		 SET weight = EXCLUDED.weight, height = EXCLUDED.height, age = EXCLUDED.age, bmi = EXCLUDED.bmi
		 RETURNING (xmax = 0);`,
		e.UserID, e.Date, e.Weight, e.Height, e.Age, e.BMI,
	).Scan(&created)
	if err != nil {
		return false, classify(err)
	}
	return created, nil
}

// History returns all of the user's entries ordered by date ascending.
func (d *DB) History(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT "userId", "date", weight, height, age, bmi FROM weight_history WHERE "userId" = $1 ORDER BY "date" ASC;`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightEntry
	for rows.Next() {
		var e domain.WeightEntry
		var day time.Time
		if err := rows.Scan(&e.UserID, &day, &e.Weight, &e.Height, &e.Age, &e.BMI); err != nil {
			return nil, err
		}
		e.Date = day.Format(domain.DayFormat)
		out = append(out, e)
	}
	return out, rows.Err()
}
