package cli

import (
	"github.com/alexanderramin/carewise/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Record is the intake record every advice request is built from.
	// Nil until the intake form is submitted or a record is loaded.
	Record *domain.PatientRecord

	// Status is the save/load status line shown on the intake tab.
	Status string

	// Collected is the summary and JSON shown after the last submit.
	Collected string

	// Terminal dimensions
	Width  int
	Height int
}

// CurrentRecord returns a copy of the intake record, or an empty record
// when none has been entered.
func (s *SharedState) CurrentRecord() *domain.PatientRecord {
	if s.Record == nil {
		return &domain.PatientRecord{}
	}
	rec := *s.Record
	return &rec
}

// Clear resets the intake record and status output.
func (s *SharedState) Clear() {
	s.Record = nil
	s.Status = ""
	s.Collected = ""
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title/tabs + separator)
// and status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
