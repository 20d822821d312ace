package ports

import (
	"context"
	"errors"

	"github.com/Apurer/petstore-e2e/internal/domains/reports/domain"
)

var ErrNotFound = errors.New("run not found")

// Repository persists run reports.
type Repository interface {
	Save(ctx context.Context, run *domain.Run) error
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	// List returns up to limit runs, most recent first. A limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*domain.Run, error)
}
