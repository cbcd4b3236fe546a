package ports

import (
	"context"

	"github.com/vollmed/registry-api/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Save(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindAllActive(ctx context.Context, page PageRequest) ([]*domain.Client, int64, error)
	FindAll(ctx context.Context, page PageRequest) ([]*domain.Client, int64, error)
}
