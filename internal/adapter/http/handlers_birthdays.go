package adapthttp

import (
	"net/http"
)

func (s *Server) handleBirthdays(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		birthdays, err := s.birthdays.List(ctx, user.ID)
		if err != nil {
			s.serverError(w, err, "listing birthdays")
			return
		}
		ok(w, http.StatusOK, "Birthdays retrieved successfully", map[string]any{"items": birthdays})

	case http.MethodPost:
		var body struct {
			Person string `json:"person"`
			Born   string `json:"born"`
		}
		if err := parseJSON(r, &body); err != nil {
			fail(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", err.Error())
			return
		}
		b, err := s.birthdays.Add(ctx, user.ID, body.Person, body.Born)
		if err != nil {
			fail(w, http.StatusBadRequest, "INVALID_BIRTHDAY", err.Error())
			return
		}
		ok(w, http.StatusCreated, "Birthday added successfully", map[string]any{"data": b})

	case http.MethodDelete:
		id, okID := idQuery(r)
		if !okID {
			fail(w, http.StatusBadRequest, "INVALID_ID", "id query parameter is required")
			return
		}
		if err := s.birthdays.Remove(ctx, user.ID, id); err != nil {
			s.serverError(w, err, "removing birthday")
			return
		}
		ok(w, http.StatusOK, "Birthday removed successfully", nil)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleBirthdaysUpcoming(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)
	days := intQuery(r, "days", 30)

	upcoming, err := s.birthdays.Upcoming(r.Context(), user.ID, days)
	if err != nil {
		s.serverError(w, err, "listing upcoming birthdays")
		return
	}
	ok(w, http.StatusOK, "Upcoming birthdays retrieved successfully", map[string]any{
		"days":  days,
		"items": upcoming,
	})
}
