package postgres

import (
	"context"
	"time"

	"wellness/internal/domain"
)

// AddAppointment stores a scheduled appointment.
func (d *DB) AddAppointment(ctx context.Context, a domain.Appointment) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO appointments (user_id, title, location, starts_at, notes) VALUES ($1, $2, $3, $4, $5) RETURNING id;",
		a.UserID, a.Title, a.Location, a.StartsAt.UTC(), a.Notes,
	).Scan(&id)
	if err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// RemoveAppointment deletes an appointment, scoped to the owner.
func (d *DB) RemoveAppointment(ctx context.Context, userID, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM appointments WHERE id=$1 AND user_id=$2;", id, userID)
	return err
}

// ListUpcomingAppointments returns appointments starting at or after the
// given instant, soonest first.
func (d *DB) ListUpcomingAppointments(ctx context.Context, userID int64, after time.Time) ([]domain.Appointment, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, title, location, starts_at, notes FROM appointments WHERE user_id=$1 AND starts_at >= $2 ORDER BY starts_at ASC;",
		userID, after.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Appointment
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Location, &a.StartsAt, &a.Notes); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
