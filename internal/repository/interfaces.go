package repository

import (
	"context"

	"github.com/alexanderramin/carewise/internal/domain"
)

// RecordRepo stores intake records under user-chosen names.
type RecordRepo interface {
	Save(ctx context.Context, rec *domain.PatientRecord, name string) (string, error)
	Load(ctx context.Context, name string) (*domain.PatientRecord, error)
	List(ctx context.Context) ([]string, error)
}

// AdviceRepo is the advice history log.
type AdviceRepo interface {
	Create(ctx context.Context, e *domain.AdviceEntry) error
	GetByID(ctx context.Context, id string) (*domain.AdviceEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.AdviceEntry, error)
	ListByRole(ctx context.Context, role domain.Role, limit int) ([]*domain.AdviceEntry, error)
	Delete(ctx context.Context, id string) error
}
