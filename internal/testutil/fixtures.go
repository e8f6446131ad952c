package testutil

import (
	"time"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/google/uuid"
)

// Record options
type RecordOption func(*domain.PatientRecord)

func WithAge(n int) RecordOption {
	return func(r *domain.PatientRecord) {
		r.Age = &n
	}
}

func WithUnknownAge() RecordOption {
	return func(r *domain.PatientRecord) {
		r.Age = nil
	}
}

func WithGender(g domain.Gender) RecordOption {
	return func(r *domain.PatientRecord) {
		r.Gender = g
	}
}

func WithDiagnosis(d string) RecordOption {
	return func(r *domain.PatientRecord) {
		r.Diagnosis = d
	}
}

func WithOperationDate(d string) RecordOption {
	return func(r *domain.PatientRecord) {
		r.OperationDate = d
	}
}

func WithTreatmentStartDate(d string) RecordOption {
	return func(r *domain.PatientRecord) {
		r.TreatmentStartDate = d
	}
}

func WithTimestamp(ts time.Time) RecordOption {
	return func(r *domain.PatientRecord) {
		r.Timestamp = ts
	}
}

// NewTestRecord returns a complete, valid intake record.
func NewTestRecord(opts ...RecordOption) *domain.PatientRecord {
	age := 68
	r := &domain.PatientRecord{
		Timestamp:            time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
		Gender:               domain.GenderFemale,
		Age:                  &age,
		Diagnosis:            "Breast cancer",
		OperationDescription: "Lumpectomy with sentinel node biopsy",
		OperationDate:        "2025-06-01",
		TreatmentDetails:     "Radiotherapy, 15 fractions",
		TreatmentStartDate:   "2025-06-15",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Advice entry options
type AdviceOption func(*domain.AdviceEntry)

func WithRole(role domain.Role) AdviceOption {
	return func(e *domain.AdviceEntry) {
		e.Role = role
	}
}

func WithQuestion(q string) AdviceOption {
	return func(e *domain.AdviceEntry) {
		e.Question = q
	}
}

func WithCreatedAt(t time.Time) AdviceOption {
	return func(e *domain.AdviceEntry) {
		e.CreatedAt = t
	}
}

func WithResponse(text string) AdviceOption {
	return func(e *domain.AdviceEntry) {
		e.Response = text
	}
}

// NewTestAdviceEntry returns a history entry for NewTestRecord.
func NewTestAdviceEntry(opts ...AdviceOption) *domain.AdviceEntry {
	rec := NewTestRecord()
	e := &domain.AdviceEntry{
		ID:     uuid.New().String(),
		Role:   domain.RoleGeneralAdvice,
		Record: *rec,
		Timeline: domain.Timeline{
			DaysSinceOperation: 14,
			Status:             domain.TreatmentStatus{Phase: domain.PhaseStartsToday},
		},
		Prompt:    "PATIENT INFORMATION:\n- Gender: Female\n",
		Response:  "1. **PATIENT STAGE ASSESSMENT**: Early recovery.",
		Model:     "gpt-4",
		LatencyMs: 1200,
		CreatedAt: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
