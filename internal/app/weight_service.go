package app

import (
	"context"
	"errors"
	"time"

	"wellness/internal/domain"
)

// WeightService implements the weight-entry submission pipeline and history
// reads.
type WeightService struct {
	entries domain.WeightRepository
	users   domain.UserRepository
	now     func() time.Time
}

// NewWeightService creates a WeightService backed by the given repositories.
func NewWeightService(entries domain.WeightRepository, users domain.UserRepository) *WeightService {
	return &WeightService{entries: entries, users: users, now: time.Now}
}

// WeightInput is a candidate submission. Pointer fields distinguish absent
// from zero.
type WeightInput struct {
	Weight *float64 `json:"weight"`
	Height *float64 `json:"height"`
	BMI    *float64 `json:"bmi"`
	Date   *string  `json:"date"`
}

// WeightResult reports a stored submission.
type WeightResult struct {
	Age     int
	Created bool
	Message string
}

// RecordWeight validates a submission and upserts the entry keyed on
// (userId, date). Checks run in a fixed order: field presence, user
// resolution, numeric ranges, then the date itself. Validation performs no
// writes; the only read is the date-of-birth lookup needed for the age.
//
// The submitted bmi is stored as-is and never recomputed from weight and
// height, so a client-side value that disagrees with the other two fields is
// persisted unchanged.
func (s *WeightService) RecordWeight(ctx context.Context, userID int64, in WeightInput) (*WeightResult, error) {
	if in.Weight == nil || in.Height == nil || in.BMI == nil || in.Date == nil || *in.Date == "" {
		return nil, invalid(KindMissingFields, "weight, height, bmi and date are required")
	}

	dob, err := s.users.DateOfBirth(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	age := domain.Age(dob, s.now())

	if w := *in.Weight; w <= 0 || w > 1000 {
		return nil, invalid(KindInvalidWeight, "weight must be greater than 0 and at most 1000 kg")
	}
	if h := *in.Height; h <= 0 || h > 300 {
		return nil, invalid(KindInvalidHeight, "height must be greater than 0 and at most 300 cm")
	}
	if b := *in.BMI; b <= 0 || b > 100 {
		return nil, invalid(KindInvalidBMI, "bmi must be greater than 0 and at most 100")
	}

	day, err := time.ParseInLocation(domain.DayFormat, *in.Date, time.Local)
	if err != nil {
		return nil, invalid(KindInvalidDate, "date must be a valid YYYY-MM-DD date")
	}
	now := s.now().In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.After(today) {
		return nil, invalid(KindFutureDate, "date must not be in the future")
	}

	created, err := s.entries.UpsertEntry(ctx, domain.WeightEntry{
		UserID: userID,
		Date:   day.Format(domain.DayFormat),
		Weight: *in.Weight,
		Height: *in.Height,
		Age:    age,
		BMI:    *in.BMI,
	})
	if errors.Is(err, domain.ErrConstraint) {
		return nil, invalid(KindEntryFailed, "weight entry could not be stored")
	}
	if err != nil {
		return nil, err
	}

	msg := "Weight entry updated successfully"
	if created {
		msg = "Weight entry added successfully"
	}
	return &WeightResult{Age: age, Created: created, Message: msg}, nil
}

// History returns the user's entries ordered oldest first. A user with no
// entries gets an empty slice, not an error.
func (s *WeightService) History(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	entries, err := s.entries.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.WeightEntry{}
	}
	return entries, nil
}
