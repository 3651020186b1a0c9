package adapthttp

import (
	"errors"
	"net/http"

	"wellness/internal/domain"
)

func (s *Server) handleMeals(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		meals, err := s.meals.List(ctx, user.ID)
		if err != nil {
			s.serverError(w, err, "listing meals")
			return
		}
		ok(w, http.StatusOK, "Meals retrieved successfully", map[string]any{"items": meals})

	case http.MethodPost:
		var body struct {
			Name     string `json:"name"`
			Category string `json:"category"`
			Day      string `json:"day"`
			Calories int    `json:"calories"`
		}
		if err := parseJSON(r, &body); err != nil {
			fail(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", err.Error())
			return
		}
		meal, err := s.meals.Plan(ctx, user.ID, body.Name, domain.MealCategory(body.Category), body.Day, body.Calories)
		if err != nil {
			fail(w, http.StatusBadRequest, "INVALID_MEAL", err.Error())
			return
		}
		ok(w, http.StatusCreated, "Meal planned successfully", map[string]any{"data": meal})

	case http.MethodPut:
		var body struct {
			ID       int64  `json:"id"`
			Name     string `json:"name"`
			Category string `json:"category"`
			Day      string `json:"day"`
			Calories int    `json:"calories"`
		}
		if err := parseJSON(r, &body); err != nil {
			fail(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", err.Error())
			return
		}
		err := s.meals.Update(ctx, user.ID, body.ID, body.Name, domain.MealCategory(body.Category), body.Day, body.Calories)
		if errors.Is(err, domain.ErrNotFound) {
			fail(w, http.StatusNotFound, "MEAL_NOT_FOUND", "meal not found")
			return
		}
		if err != nil {
			fail(w, http.StatusBadRequest, "INVALID_MEAL", err.Error())
			return
		}
		ok(w, http.StatusOK, "Meal updated successfully", nil)

	case http.MethodDelete:
		id, okID := idQuery(r)
		if !okID {
			fail(w, http.StatusBadRequest, "INVALID_ID", "id query parameter is required")
			return
		}
		if err := s.meals.Delete(ctx, user.ID, id); err != nil {
			s.serverError(w, err, "deleting meal")
			return
		}
		ok(w, http.StatusOK, "Meal deleted successfully", nil)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGrocery(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		items, err := s.meals.GroceryList(ctx, user.ID)
		if err != nil {
			s.serverError(w, err, "listing grocery items")
			return
		}
		ok(w, http.StatusOK, "Grocery list retrieved successfully", map[string]any{"items": items})

	case http.MethodPost:
		var body struct {
			Name     string `json:"name"`
			Quantity int    `json:"quantity"`
		}
		if err := parseJSON(r, &body); err != nil {
			fail(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", err.Error())
			return
		}
		item, err := s.meals.AddGroceryItem(ctx, user.ID, body.Name, body.Quantity)
		if err != nil {
			fail(w, http.StatusBadRequest, "INVALID_GROCERY_ITEM", err.Error())
			return
		}
		ok(w, http.StatusCreated, "Grocery item added successfully", map[string]any{"data": item})

	case http.MethodPut:
		var body struct {
			ID        int64 `json:"id"`
			Purchased bool  `json:"purchased"`
		}
		if err := parseJSON(r, &body); err != nil {
			fail(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", err.Error())
			return
		}
		err := s.meals.SetPurchased(ctx, user.ID, body.ID, body.Purchased)
		if errors.Is(err, domain.ErrNotFound) {
			fail(w, http.StatusNotFound, "GROCERY_ITEM_NOT_FOUND", "grocery item not found")
			return
		}
		if err != nil {
			s.serverError(w, err, "updating grocery item")
			return
		}
		ok(w, http.StatusOK, "Grocery item updated successfully", nil)

	case http.MethodDelete:
		id, okID := idQuery(r)
		if !okID {
			fail(w, http.StatusBadRequest, "INVALID_ID", "id query parameter is required")
			return
		}
		if err := s.meals.RemoveGroceryItem(ctx, user.ID, id); err != nil {
			s.serverError(w, err, "removing grocery item")
			return
		}
		ok(w, http.StatusOK, "Grocery item removed successfully", nil)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGroceryFromMeals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)

	var body struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := parseJSON(r, &body); err != nil {
		fail(w, http.StatusBadRequest, "INVALID_REQUEST_BODY", err.Error())
		return
	}

	items, err := s.meals.BuildGroceryList(r.Context(), user.ID, body.From, body.To)
	if err != nil {
		fail(w, http.StatusBadRequest, "INVALID_RANGE", err.Error())
		return
	}
	ok(w, http.StatusCreated, "Grocery list built from planned meals", map[string]any{"items": items})
}

func (s *Server) serverError(w http.ResponseWriter, err error, action string) {
	s.log.WithError(err).Error(action + " failed")
	fail(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error, please try again later")
}
