package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/repository"
)

// Collected is the outcome of stamping and confirming an intake form.
type Collected struct {
	Record  *domain.PatientRecord
	Summary string
	JSON    string
}

type recordService struct {
	records  repository.RecordRepo
	clock    domain.Clock
	observer UseCaseObserver
}

func NewRecordService(
	records repository.RecordRepo,
	clock domain.Clock,
	observers ...UseCaseObserver,
) RecordService {
	return &recordService{
		records:  records,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *recordService) Save(ctx context.Context, rec *domain.PatientRecord, name string) (filename string, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "save-record",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"file": filename},
		})
	}()

	stamped := domain.NewPatientRecord(*rec, s.clock())
	return s.records.Save(ctx, stamped, name)
}

func (s *recordService) Load(ctx context.Context, name string) (rec *domain.PatientRecord, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "load-record",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"file": name},
		})
	}()

	return s.records.Load(ctx, name)
}

func (s *recordService) List(ctx context.Context) ([]string, error) {
	return s.records.List(ctx)
}

// Choices is List with the placeholder entry substituted for an empty list.
func (s *recordService) Choices(ctx context.Context) ([]string, error) {
	names, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []string{domain.NoSavedFilesPlaceholder}, nil
	}
	return names, nil
}

// Collect stamps the form with the current instant. Completeness is not
// checked here; the advice request that follows reports missing fields.
func (s *recordService) Collect(_ context.Context, fields domain.PatientRecord) (*Collected, error) {
	rec := domain.NewPatientRecord(fields, s.clock())

	data, err := domain.EncodeRecord(rec, "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	return &Collected{
		Record:  rec,
		Summary: CollectSummary(rec),
		JSON:    string(data),
	}, nil
}

// CollectSummary is the confirmation shown after the form is collected.
func CollectSummary(rec *domain.PatientRecord) string {
	var b strings.Builder
	b.WriteString("✅ Patient information collected successfully!\n\n")
	fmt.Fprintf(&b, "Patient: %s, Age %s\n", rec.Gender, rec.AgeString())
	fmt.Fprintf(&b, "Diagnosis: %s\n", rec.Diagnosis)
	fmt.Fprintf(&b, "Operation Date: %s\n", rec.OperationDate)
	fmt.Fprintf(&b, "Treatment Start: %s", rec.TreatmentStartDate)
	return b.String()
}
