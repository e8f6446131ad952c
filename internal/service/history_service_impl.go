package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/carewise/internal/domain"
	"github.com/alexanderramin/carewise/internal/report"
	"github.com/alexanderramin/carewise/internal/repository"
	"github.com/google/uuid"
)

type historyService struct {
	entries  repository.AdviceRepo
	clock    domain.Clock
	observer UseCaseObserver
}

func NewHistoryService(
	entries repository.AdviceRepo,
	clock domain.Clock,
	observers ...UseCaseObserver,
) HistoryService {
	return &historyService{
		entries:  entries,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *historyService) RecordAdvice(ctx context.Context, e *domain.AdviceEntry) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "record-advice",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"role": string(e.Role), "id": e.ID},
		})
	}()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.entries.Create(ctx, e)
}

// List returns the newest entries first. An empty role lists every role.
func (s *historyService) List(ctx context.Context, role domain.Role, limit int) ([]*domain.AdviceEntry, error) {
	if role == "" {
		return s.entries.ListRecent(ctx, limit)
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	return s.entries.ListByRole(ctx, role, limit)
}

func (s *historyService) Get(ctx context.Context, id string) (*domain.AdviceEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *historyService) Delete(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

func (s *historyService) ExportPDF(ctx context.Context, id string, w io.Writer, fontPath string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "export-advice-pdf",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"id": id},
		})
	}()

	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return report.WritePDF(w, e, fontPath)
}
