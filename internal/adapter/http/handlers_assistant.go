package adapthttp

import (
	"net/http"

	"wellness/internal/domain"
)

func (s *Server) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.assistant == nil {
		fail(w, http.StatusServiceUnavailable, "ASSISTANT_DISABLED", "assistant is not configured")
		return
	}
	user := userFromContext(r)

	var body struct {
		Message string `json:"message"`
	}
	if err := parseJSON(r, &body); err != nil {
		fail(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", err.Error())
		return
	}

	reply, err := s.assistant.Chat(r.Context(), user.ID, body.Message)
	if err != nil {
		s.log.WithError(err).Error("assistant chat failed")
		fail(w, http.StatusBadGateway, "ASSISTANT_FAILED", "assistant is unavailable, please try again later")
		return
	}
	ok(w, http.StatusOK, "Assistant replied", map[string]any{"reply": reply})
}

func (s *Server) handleAssistantMealPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.assistant == nil {
		fail(w, http.StatusServiceUnavailable, "ASSISTANT_DISABLED", "assistant is not configured")
		return
	}
	user := userFromContext(r)

	var body struct {
		Goals string `json:"goals"`
		Day   string `json:"day"`
		Save  bool   `json:"save"`
	}
	if err := parseJSON(r, &body); err != nil {
		fail(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", err.Error())
		return
	}

	plan, err := s.assistant.SuggestMealPlan(r.Context(), body.Goals)
	if err != nil {
		s.log.WithError(err).Error("meal plan generation failed")
		fail(w, http.StatusBadGateway, "ASSISTANT_FAILED", "assistant is unavailable, please try again later")
		return
	}

	var saved []domain.Meal
	if body.Save {
		for _, m := range plan.Meals {
			meal, err := s.meals.Plan(r.Context(), user.ID, m.Name, m.Category, body.Day, m.Calories)
			if err != nil {
				fail(w, http.StatusBadRequest, "INVALID_MEAL", err.Error())
				return
			}
			saved = append(saved, *meal)
		}
	}

	ok(w, http.StatusOK, "Meal plan generated successfully", map[string]any{
		"plan":  plan,
		"saved": saved,
	})
}
