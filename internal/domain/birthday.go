package domain

import "context"

// Birthday is a remembered birthday in a user's reminder book.
type Birthday struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Person string `json:"person"`
	Born   string `json:"born"`
}

// BirthdayRepository is the port for birthday-book persistence.
type BirthdayRepository interface {
	AddBirthday(ctx context.Context, b Birthday) (int64, error)
	RemoveBirthday(ctx context.Context, userID, id int64) error
	ListBirthdays(ctx context.Context, userID int64) ([]Birthday, error)
}
