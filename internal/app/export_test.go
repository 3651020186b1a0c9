package app

import "time"

// Clock overrides for tests.

func (s *WeightService) SetNow(now func() time.Time) { s.now = now }

func (s *BirthdayService) SetNow(now func() time.Time) { s.now = now }

func (s *AppointmentService) SetNow(now func() time.Time) { s.now = now }
