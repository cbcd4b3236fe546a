package ports

import (
	"context"

	"github.com/vollmed/registry-api/internal/core/domain"
)

var ClientSortFields = []string{"name", "email", "cpf"}

// CreateClientInput carries all data needed to register a client.
type CreateClientInput struct {
	Name    string        `json:"name"    validate:"notblank"`
	Email   string        `json:"email"   validate:"notblank,email"`
	CPF     string        `json:"cpf"     validate:"notblank"`
	Phone   string        `json:"phone"   validate:"notblank"`
	Address *AddressInput `json:"address" validate:"required"`

	IdempotencyKey string `json:"-"`
}

// UpdateClientInput carries a partial update. Nil fields are left untouched.
type UpdateClientInput struct {
	ID      string        `json:"-"`
	Name    *string       `json:"name"    validate:"omitnil,notblank"`
	Phone   *string       `json:"phone"   validate:"omitnil,notblank"`
	Address *AddressInput `json:"address"`
}

// ClientService defines use-case operations for clients.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, input ListInput) (*Page[*domain.Client], error)
	Update(ctx context.Context, input UpdateClientInput) (*domain.Client, error)
	Deactivate(ctx context.Context, id string) error
}
