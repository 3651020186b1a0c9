package domain

import (
	"context"
	"time"
)

// Appointment is a scheduled appointment for a user.
type Appointment struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"userId"`
	Title    string    `json:"title"`
	Location string    `json:"location"`
	StartsAt time.Time `json:"startsAt"`
	Notes    string    `json:"notes"`
}

// AppointmentRepository is the port for appointment persistence.
type AppointmentRepository interface {
	AddAppointment(ctx context.Context, a Appointment) (int64, error)
	RemoveAppointment(ctx context.Context, userID, id int64) error
	// ListUpcomingAppointments returns appointments starting at or after the
	// given instant, ordered by start time.
	ListUpcomingAppointments(ctx context.Context, userID int64, after time.Time) ([]Appointment, error)
}
