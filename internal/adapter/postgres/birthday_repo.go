package postgres

import (
	"context"
	"time"

	"wellness/internal/domain"
)

// AddBirthday stores a birthday in the user's reminder book.
func (d *DB) AddBirthday(ctx context.Context, b domain.Birthday) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO birthdays (user_id, person, born) VALUES ($1, $2, $3) RETURNING id;",
		b.UserID, b.Person, b.Born,
	).Scan(&id)
	if err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// RemoveBirthday deletes a birthday, scoped to the owner.
func (d *DB) RemoveBirthday(ctx context.Context, userID, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM birthdays WHERE id=$1 AND user_id=$2;", id, userID)
	return err
}

// ListBirthdays returns the user's birthday book ordered by month and day.
func (d *DB) ListBirthdays(ctx context.Context, userID int64) ([]domain.Birthday, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, person, born FROM birthdays WHERE user_id=$1 ORDER BY EXTRACT(MONTH FROM born), EXTRACT(DAY FROM born);",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Birthday
	for rows.Next() {
		var b domain.Birthday
		var born time.Time
		if err := rows.Scan(&b.ID, &b.UserID, &b.Person, &born); err != nil {
			return nil, err
		}
		b.Born = born.Format(domain.DayFormat)
		out = append(out, b)
	}
	return out, rows.Err()
}
