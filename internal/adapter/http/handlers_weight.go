package adapthttp

import (
	"errors"
	"net/http"

	"wellness/internal/app"
)

func (s *Server) handleWeight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)

	var in app.WeightInput
	if err := parseJSON(r, &in); err != nil {
		fail(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", err.Error())
		return
	}

	res, err := s.weight.RecordWeight(r.Context(), user.ID, in)
	if err != nil {
		var verr *app.ValidationError
		switch {
		case errors.As(err, &verr):
			fail(w, http.StatusBadRequest, verr.Kind, verr.Message)
		case errors.Is(err, app.ErrUserNotFound):
			fail(w, http.StatusNotFound, app.KindUserNotFound, "user not found")
		default:
			s.log.WithError(err).Error("weight submission failed")
			fail(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error, please try again later")
		}
		return
	}

	ok(w, http.StatusCreated, res.Message, map[string]any{
		"data": map[string]any{"age": res.Age},
	})
}

func (s *Server) handleWeightHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)

	history, err := s.weight.History(r.Context(), user.ID)
	if err != nil {
		s.log.WithError(err).Error("weight history failed")
		fail(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error, please try again later")
		return
	}

	message := "Weight history retrieved successfully"
	if len(history) == 0 {
		message = "No weight entries found"
	}
	ok(w, http.StatusOK, message, map[string]any{"history": history})
}
