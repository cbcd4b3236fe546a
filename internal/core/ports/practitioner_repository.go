package ports

import (
	"context"

	"github.com/vollmed/registry-api/internal/core/domain"
)

// PractitionerRepository defines persistence operations for practitioners.
type PractitionerRepository interface {
	// Save inserts the practitioner when it has no ID yet, assigning one,
	// and replaces the stored document otherwise.
	Save(ctx context.Context, p *domain.Practitioner) error
	FindByID(ctx context.Context, id string) (*domain.Practitioner, error)
	// FindAllActive returns a page of active practitioners and the total count.
	FindAllActive(ctx context.Context, page PageRequest) ([]*domain.Practitioner, int64, error)
	FindAll(ctx context.Context, page PageRequest) ([]*domain.Practitioner, int64, error)
}
