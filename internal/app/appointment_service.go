package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"wellness/internal/domain"
)

// ErrPastAppointment indicates that an appointment start time has already
// passed.
var ErrPastAppointment = errors.New("appointment must be in the future")

// AppointmentService encapsulates appointment-scheduling use cases.
type AppointmentService struct {
	appointments domain.AppointmentRepository
	now          func() time.Time
}

// NewAppointmentService creates an AppointmentService backed by the given
// repository.
func NewAppointmentService(appointments domain.AppointmentRepository) *AppointmentService {
	return &AppointmentService{appointments: appointments, now: time.Now}
}

// Schedule stores a new appointment. Unlike weight entries, which must not be
// dated in the future, appointments must start strictly after now.
func (s *AppointmentService) Schedule(ctx context.Context, userID int64, title, location string, startsAt time.Time, notes string) (*domain.Appointment, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title is required")
	}
	if !startsAt.After(s.now()) {
		return nil, ErrPastAppointment
	}

	a := domain.Appointment{
		UserID:   userID,
		Title:    title,
		Location: location,
		StartsAt: startsAt,
		Notes:    notes,
	}
	id, err := s.appointments.AddAppointment(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return &a, nil
}

// Upcoming returns the user's future appointments, soonest first.
func (s *AppointmentService) Upcoming(ctx context.Context, userID int64) ([]domain.Appointment, error) {
	appointments, err := s.appointments.ListUpcomingAppointments(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []domain.Appointment{}
	}
	return appointments, nil
}

// Cancel removes an appointment owned by the user.
func (s *AppointmentService) Cancel(ctx context.Context, userID, id int64) error {
	return s.appointments.RemoveAppointment(ctx, userID, id)
}
