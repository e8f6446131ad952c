package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for every date field.
const DateLayout = "2006-01-02"

// TreatmentPhase classifies the treatment start date relative to today.
type TreatmentPhase string

const (
	PhaseFuture      TreatmentPhase = "future"
	PhaseStartsToday TreatmentPhase = "starts_today"
	PhaseOngoing     TreatmentPhase = "ongoing"
)

// TreatmentStatus is derived on every request and never stored.
// Days is the distance from today in whole days and is zero for PhaseStartsToday.
type TreatmentStatus struct {
	Phase TreatmentPhase `json:"phase"`
	Days  int            `json:"days"`
}

func (s TreatmentStatus) String() string {
	switch s.Phase {
	case PhaseFuture:
		return fmt.Sprintf("Treatment starts in %d days (future)", s.Days)
	case PhaseStartsToday:
		return "Treatment starts today"
	default:
		return fmt.Sprintf("Treatment started %d days ago (ongoing)", s.Days)
	}
}

// Timeline is the day arithmetic embedded in every prompt.
type Timeline struct {
	DaysSinceOperation int             `json:"days_since_operation"`
	Status             TreatmentStatus `json:"status"`
}

// Clock returns the current instant. Services take one so tests can pin today.
type Clock func() time.Time

// ComputeTimeline derives elapsed days since the operation and the treatment
// phase. Only the calendar date of each argument is considered.
// DaysSinceOperation is negative for an operation scheduled after today.
func ComputeTimeline(operationDate, treatmentStartDate, today time.Time) Timeline {
	op := calendarDate(operationDate)
	start := calendarDate(treatmentStartDate)
	now := calendarDate(today)

	tl := Timeline{DaysSinceOperation: daysBetween(op, now)}

	switch {
	case start.After(now):
		tl.Status = TreatmentStatus{Phase: PhaseFuture, Days: daysBetween(now, start)}
	case start.Equal(now):
		tl.Status = TreatmentStatus{Phase: PhaseStartsToday}
	default:
		tl.Status = TreatmentStatus{Phase: PhaseOngoing, Days: daysBetween(start, now)}
	}
	return tl
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// calendarDate strips the time of day and location, keeping the wall-clock date.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// daysBetween returns to - from in whole days. Both must be UTC midnights.
// Unix seconds are used because time.Duration saturates after ~292 years.
func daysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}
