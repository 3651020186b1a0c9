package domain

import "time"

// Age returns the whole number of years between dateOfBirth and today. The
// result is decremented when today's month/day falls before the birthday, so
// a Feb 29 birth date counts as having had the birthday by Mar 1 in non-leap
// years.
func Age(dateOfBirth, today time.Time) int {
	age := today.Year() - dateOfBirth.Year()
	if today.Month() < dateOfBirth.Month() ||
		(today.Month() == dateOfBirth.Month() && today.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

// NextOccurrence returns the next anniversary of born falling on or after
// today. time.Date normalises Feb 29 to Mar 1 in non-leap years, which keeps
// leap-day anniversaries observable every year.
func NextOccurrence(born, today time.Time) time.Time {
	next := time.Date(today.Year(), born.Month(), born.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, born.Month(), born.Day(), 0, 0, 0, 0, today.Location())
	}
	return next
}
