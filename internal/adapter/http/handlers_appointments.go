package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"wellness/internal/app"
)

func (s *Server) handleAppointments(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		appointments, err := s.appointments.Upcoming(ctx, user.ID)
		if err != nil {
			s.serverError(w, err, "listing appointments")
			return
		}
		ok(w, http.StatusOK, "Appointments retrieved successfully", map[string]any{"items": appointments})

	case http.MethodPost:
		var body struct {
			Title    string    `json:"title"`
			Location string    `json:"location"`
			StartsAt time.Time `json:"startsAt"`
			Notes    string    `json:"notes"`
		}
		if err := parseJSON(r, &body); err != nil {
			fail(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", err.Error())
			return
		}
		a, err := s.appointments.Schedule(ctx, user.ID, body.Title, body.Location, body.StartsAt, body.Notes)
		if errors.Is(err, app.ErrPastAppointment) {
			fail(w, http.StatusBadRequest, "PAST_APPOINTMENT", err.Error())
			return
		}
		if err != nil {
			fail(w, http.StatusBadRequest, "INVALID_APPOINTMENT", err.Error())
			return
		}
		ok(w, http.StatusCreated, "Appointment scheduled successfully", map[string]any{"data": a})

	case http.MethodDelete:
		id, okID := idQuery(r)
		if !okID {
			fail(w, http.StatusBadRequest, "INVALID_ID", "id query parameter is required")
			return
		}
		if err := s.appointments.Cancel(ctx, user.ID, id); err != nil {
			s.serverError(w, err, "cancelling appointment")
			return
		}
		ok(w, http.StatusOK, "Appointment cancelled successfully", nil)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
