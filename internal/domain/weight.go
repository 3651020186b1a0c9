package domain

import "context"

// DayFormat is the calendar-day layout used throughout the service.
const DayFormat = "2006-01-02"

// WeightEntry represents one weight measurement for a user on a calendar day.
// A user has at most one entry per day; resubmitting overwrites in place.
type WeightEntry struct {
	UserID int64   `json:"userId"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Age    int     `json:"age"`
	BMI    float64 `json:"bmi"`
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	// UpsertEntry inserts the entry, or overwrites weight/height/age/bmi when
	// a row for (UserID, Date) already exists. The returned flag is true when
	// a new row was created.
	UpsertEntry(ctx context.Context, e WeightEntry) (created bool, err error)
	// History returns the user's entries ordered by date ascending.
	History(ctx context.Context, userID int64) ([]WeightEntry, error)
}
