package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"wellness/internal/domain"
)

// BirthdayService encapsulates the birthday-reminder use cases.
type BirthdayService struct {
	book domain.BirthdayRepository
	now  func() time.Time
}

// NewBirthdayService creates a BirthdayService backed by the given repository.
func NewBirthdayService(book domain.BirthdayRepository) *BirthdayService {
	return &BirthdayService{book: book, now: time.Now}
}

// UpcomingBirthday is a birthday annotated with its next occurrence.
type UpcomingBirthday struct {
	domain.Birthday
	When   string `json:"when"`
	InDays int    `json:"inDays"`
	Turns  int    `json:"turns"`
}

// Add stores a birthday in the user's reminder book.
func (s *BirthdayService) Add(ctx context.Context, userID int64, person, born string) (*domain.Birthday, error) {
	if strings.TrimSpace(person) == "" {
		return nil, errors.New("person is required")
	}
	bornDay, err := time.ParseInLocation(domain.DayFormat, born, time.Local)
	if err != nil {
		return nil, errors.New("born must be a valid YYYY-MM-DD date")
	}
	if bornDay.After(s.now()) {
		return nil, errors.New("born must be in the past")
	}

	b := domain.Birthday{UserID: userID, Person: person, Born: bornDay.Format(domain.DayFormat)}
	id, err := s.book.AddBirthday(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id
	return &b, nil
}

// Remove deletes a birthday from the user's book.
func (s *BirthdayService) Remove(ctx context.Context, userID, id int64) error {
	return s.book.RemoveBirthday(ctx, userID, id)
}

// List returns the user's full birthday book.
func (s *BirthdayService) List(ctx context.Context, userID int64) ([]domain.Birthday, error) {
	birthdays, err := s.book.ListBirthdays(ctx, userID)
	if err != nil {
		return nil, err
	}
	if birthdays == nil {
		birthdays = []domain.Birthday{}
	}
	return birthdays, nil
}

// Upcoming returns the birthdays whose next occurrence falls within the next
// withinDays days, soonest first. Each result carries the occurrence date and
// the age the person turns.
func (s *BirthdayService) Upcoming(ctx context.Context, userID int64, withinDays int) ([]UpcomingBirthday, error) {
	if withinDays <= 0 {
		withinDays = 30
	}

	birthdays, err := s.book.ListBirthdays(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	out := make([]UpcomingBirthday, 0, len(birthdays))
	for _, b := range birthdays {
		born, err := time.ParseInLocation(domain.DayFormat, b.Born, time.Local)
		if err != nil {
			continue
		}
		next := domain.NextOccurrence(born, today)
		// Round to whole days so DST transitions cannot skew the count.
		inDays := int((next.Sub(today) + 12*time.Hour) / (24 * time.Hour))
		if inDays > withinDays {
			continue
		}
		out = append(out, UpcomingBirthday{
			Birthday: b,
			When:     next.Format(domain.DayFormat),
			InDays:   inDays,
			Turns:    domain.Age(born, next),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InDays < out[j].InDays })
	return out, nil
}
