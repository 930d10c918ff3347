package domain

import "time"

// PaymentFilter is the set of optional criteria for selecting payments.
// A payment matches only if every supplied criterion matches; nil fields
// impose no constraint. Dates are at day granularity and inclusive on both
// ends.
type PaymentFilter struct {
	Status    *PaymentStatus
	Method    *PaymentMethod
	StartDate *time.Time
	EndDate   *time.Time
}

// IsEmpty reports whether no criterion is set.
func (f PaymentFilter) IsEmpty() bool {
	return f.Status == nil && f.Method == nil && f.StartDate == nil && f.EndDate == nil
}

// CreatedAtBounds resolves the date criteria into a half-open UTC window:
// from = startOfDay(StartDate) inclusive, to = startOfDay(EndDate)+24h
// exclusive. Nil dates yield nil bounds.
func (f PaymentFilter) CreatedAtBounds() (from, to *time.Time) {
	if f.StartDate != nil {
		t := StartOfDay(f.StartDate.UTC())
		from = &t
	}
	if f.EndDate != nil {
		t := StartOfDay(f.EndDate.UTC()).Add(24 * time.Hour)
		to = &t
	}
	return from, to
}

// Matches reports whether the payment satisfies every supplied criterion.
func (f PaymentFilter) Matches(p *Payment) bool {
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.Method != nil && p.Method != *f.Method {
		return false
	}
	from, to := f.CreatedAtBounds()
	if from != nil && p.CreatedAt.Before(*from) {
		return false
	}
	if to != nil && !p.CreatedAt.Before(*to) {
		return false
	}
	return true
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the most recent Sunday midnight UTC at or before t.
// Sunday is the fixed week-start convention for the weekly stats window.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
