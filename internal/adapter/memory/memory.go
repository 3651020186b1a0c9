// Package memory implements the domain repositories in memory for
// development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"wellness/internal/domain"
)

// DB implements all repository ports in memory.
type DB struct {
	mu sync.Mutex

	users        []*domain.User
	sessions     map[string]*domain.Session
	weights      map[int64]map[string]domain.WeightEntry
	meals        []domain.Meal
	groceries    []domain.GroceryItem
	birthdays    []domain.Birthday
	appointments []domain.Appointment

	userID    int64
	mealID    int64
	groceryID int64
	bdayID    int64
	apptID    int64
}

// New creates an empty in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
		weights:  make(map[int64]map[string]domain.WeightEntry),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.MealRepository = (*DB)(nil)
var _ domain.GroceryRepository = (*DB)(nil)
var _ domain.BirthdayRepository = (*DB)(nil)
var _ domain.AppointmentRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string, dateOfBirth time.Time) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.userID++
	u := &domain.User{
		ID:           db.userID,
		Username:     username,
		PasswordHash: passwordHash,
		DateOfBirth:  dateOfBirth,
		CreatedAt:    time.Now(),
	}
	db.users = append(db.users, u)
	cp := *u
	return &cp, nil
}

// DateOfBirth returns the user's date of birth or domain.ErrNotFound.
func (db *DB) DateOfBirth(ctx context.Context, userID int64) (time.Time, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, u := range db.users {
		if u.ID == userID {
			if u.DateOfBirth.IsZero() {
				return time.Time{}, domain.ErrNotFound
			}
			return u.DateOfBirth, nil
		}
	}
	return time.Time{}, domain.ErrNotFound
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- WeightRepository ---

// UpsertEntry inserts or overwrites the entry for (UserID, Date).
func (db *DB) UpsertEntry(ctx context.Context, e domain.WeightEntry) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	byDay, ok := db.weights[e.UserID]
	if !ok {
		byDay = make(map[string]domain.WeightEntry)
		db.weights[e.UserID] = byDay
	}
	_, exists := byDay[e.Date]
	byDay[e.Date] = e
	return !exists, nil
}

// History returns the user's entries ordered by date ascending.
func (db *DB) History(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	byDay := db.weights[userID]
	out := make([]domain.WeightEntry, 0, len(byDay))
	for _, e := range byDay {
		out = append(out, e)
	}
	// Dates are YYYY-MM-DD, so string order is date order.
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// --- MealRepository ---

// CreateMeal inserts a planned meal.
func (db *DB) CreateMeal(ctx context.Context, m domain.Meal) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.mealID++
	m.ID = db.mealID
	db.meals = append(db.meals, m)
	return m.ID, nil
}

// UpdateMeal overwrites a meal, scoped to its owner.
func (db *DB) UpdateMeal(ctx context.Context, m domain.Meal) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, got := range db.meals {
		if got.ID == m.ID && got.UserID == m.UserID {
			db.meals[i] = m
			return nil
		}
	}
	return domain.ErrNotFound
}

// DeleteMeal removes a meal, scoped to its owner.
func (db *DB) DeleteMeal(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, m := range db.meals {
		if m.ID == id && m.UserID == userID {
			db.meals = append(db.meals[:i], db.meals[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListMeals returns all of the user's meals ordered by day.
func (db *DB) ListMeals(ctx context.Context, userID int64) ([]domain.Meal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.Meal
	for _, m := range db.meals {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// ListMealsForRange returns meals with from <= day <= to, ordered by day.
func (db *DB) ListMealsForRange(ctx context.Context, userID int64, from, to string) ([]domain.Meal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.Meal
	for _, m := range db.meals {
		if m.UserID == userID && m.Day >= from && m.Day <= to {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// --- GroceryRepository ---

// AddGroceryItem appends one line to the user's grocery list.
func (db *DB) AddGroceryItem(ctx context.Context, item domain.GroceryItem) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.groceryID++
	item.ID = db.groceryID
	db.groceries = append(db.groceries, item)
	return item.ID, nil
}

// SetGroceryPurchased flips the purchased flag, scoped to the owner.
func (db *DB) SetGroceryPurchased(ctx context.Context, userID, id int64, purchased bool) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, item := range db.groceries {
		if item.ID == id && item.UserID == userID {
			db.groceries[i].Purchased = purchased
			return nil
		}
	}
	return domain.ErrNotFound
}

// RemoveGroceryItem deletes one grocery line, scoped to the owner.
func (db *DB) RemoveGroceryItem(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, item := range db.groceries {
		if item.ID == id && item.UserID == userID {
			db.groceries = append(db.groceries[:i], db.groceries[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListGroceryItems returns the user's grocery list in insertion order.
func (db *DB) ListGroceryItems(ctx context.Context, userID int64) ([]domain.GroceryItem, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.GroceryItem
	for _, item := range db.groceries {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

// --- BirthdayRepository ---

// AddBirthday stores a birthday in the user's reminder book.
func (db *DB) AddBirthday(ctx context.Context, b domain.Birthday) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.bdayID++
	b.ID = db.bdayID
	db.birthdays = append(db.birthdays, b)
	return b.ID, nil
}

// RemoveBirthday deletes a birthday, scoped to the owner.
func (db *DB) RemoveBirthday(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, b := range db.birthdays {
		if b.ID == id && b.UserID == userID {
			db.birthdays = append(db.birthdays[:i], db.birthdays[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListBirthdays returns the user's birthday book.
func (db *DB) ListBirthdays(ctx context.Context, userID int64) ([]domain.Birthday, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.Birthday
	for _, b := range db.birthdays {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// --- AppointmentRepository ---

// AddAppointment stores a scheduled appointment.
func (db *DB) AddAppointment(ctx context.Context, a domain.Appointment) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.apptID++
	a.ID = db.apptID
	db.appointments = append(db.appointments, a)
	return a.ID, nil
}

// RemoveAppointment deletes an appointment, scoped to the owner.
func (db *DB) RemoveAppointment(ctx context.Context, userID, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for i, a := range db.appointments {
		if a.ID == id && a.UserID == userID {
			db.appointments = append(db.appointments[:i], db.appointments[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListUpcomingAppointments returns appointments starting at or after the
// given instant, soonest first.
func (db *DB) ListUpcomingAppointments(ctx context.Context, userID int64, after time.Time) ([]domain.Appointment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.Appointment
	for _, a := range db.appointments {
		if a.UserID == userID && !a.StartsAt.Before(after) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

// --- SessionRepository ---

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sessions[token]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for token, s := range r.db.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.db.sessions, token)
		}
	}
	return nil
}
