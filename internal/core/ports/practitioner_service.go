package ports

import (
	"context"

	"github.com/vollmed/registry-api/internal/core/domain"
)

// PractitionerSortFields lists the fields a practitioner listing may be ordered by.
var PractitionerSortFields = []string{"name", "email", "crm", "specialty"}

// CreatePractitionerInput carries all data needed to register a practitioner.
type CreatePractitionerInput struct {
	Name      string        `json:"name"      validate:"notblank"`
	Email     string        `json:"email"     validate:"notblank,email"`
	Phone     string        `json:"phone"     validate:"notblank"`
	CRM       string        `json:"crm"       validate:"notblank,crm"`
	Specialty string        `json:"specialty" validate:"required,oneof=ORTOPEDIA CARDIOLOGIA GINECOLOGIA DERMATOLOGIA"`
	Address   *AddressInput `json:"address"   validate:"required"`

	IdempotencyKey string `json:"-"`
}

// UpdatePractitionerInput carries a partial update. Nil fields are left untouched.
type UpdatePractitionerInput struct {
	ID      string        `json:"-"`
	Name    *string       `json:"name"    validate:"omitnil,notblank"`
	Phone   *string       `json:"phone"   validate:"omitnil,notblank"`
	Address *AddressInput `json:"address"`
}

// PractitionerService defines use-case operations for practitioners.
type PractitionerService interface {
	Create(ctx context.Context, input CreatePractitionerInput) (*domain.Practitioner, error)
	Get(ctx context.Context, id string) (*domain.Practitioner, error)
	List(ctx context.Context, input ListInput) (*Page[*domain.Practitioner], error)
	Update(ctx context.Context, input UpdatePractitionerInput) (*domain.Practitioner, error)
	Deactivate(ctx context.Context, id string) error
}
