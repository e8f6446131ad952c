package service

import (
	"context"
	"io"

	"github.com/alexanderramin/carewise/internal/domain"
)

// RecordService saves, loads, and summarizes intake records.
type RecordService interface {
	Save(ctx context.Context, rec *domain.PatientRecord, name string) (string, error)
	Load(ctx context.Context, name string) (*domain.PatientRecord, error)
	List(ctx context.Context) ([]string, error)
	Choices(ctx context.Context) ([]string, error)
	Collect(ctx context.Context, fields domain.PatientRecord) (*Collected, error)
}

// HistoryService is the advice history log. It also serves as the
// recorder for the advice service.
type HistoryService interface {
	RecordAdvice(ctx context.Context, e *domain.AdviceEntry) error
	List(ctx context.Context, role domain.Role, limit int) ([]*domain.AdviceEntry, error)
	Get(ctx context.Context, id string) (*domain.AdviceEntry, error)
	Delete(ctx context.Context, id string) error
	ExportPDF(ctx context.Context, id string, w io.Writer, fontPath string) error
}
