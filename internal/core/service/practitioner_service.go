package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

const practitionerScope = "practitioner"

type PractitionerService struct {
	repo        ports.PractitionerRepository
	validator   PayloadValidator
	idempotency IdempotencyStore
	audit       AuditPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

func NewPractitionerService(
	repo ports.PractitionerRepository,
	validator PayloadValidator,
	idempotency IdempotencyStore,
	audit AuditPublisher,
	logger zerolog.Logger,
) *PractitionerService {
	return &PractitionerService{
		repo:        repo,
		validator:   validator,
		idempotency: idempotency,
		audit:       audit,
		logger:      logger,
		now:         time.Now,
	}
}

// Create registers a new practitioner. If an idempotency key is provided and
// already seen, the previously created practitioner is returned without side effects.
// While the first request for a key is still running, others get ErrCreateInProgress.
func (s *PractitionerService) Create(ctx context.Context, input ports.CreatePractitionerInput) (*domain.Practitioner, error) {
	if err := s.validator.Validate(&input); err != nil {
		return nil, err
	}

	key := input.IdempotencyKey
	existingID, err := claimIdempotencyKey(ctx, s.idempotency, practitionerScope, key, s.logger)
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		if existing := s.replay(ctx, key, existingID); existing != nil {
			return existing, nil
		}
	}

	now := s.now().UTC()
	p := &domain.Practitioner{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CRM:       input.CRM,
		Specialty: domain.Specialty(input.Specialty),
		Address:   toAddress(input.Address),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, p); err != nil {
		releaseIdempotencyKey(ctx, s.idempotency, practitionerScope, key, s.logger)
		s.logger.Error().Err(err).Msg("failed to create practitioner")
		return nil, fmt.Errorf("create practitioner: %w", err)
	}

	bindIdempotencyKey(ctx, s.idempotency, practitionerScope, key, p.ID, s.logger)

	s.audit.Publish(newAuditEntry(domain.KindPractitioner, p.ID, domain.ActionCreated, now))
	s.logger.Info().Str("practitioner_id", p.ID).Str("specialty", string(p.Specialty)).Msg("practitioner created")
	return p, nil
}

// replay loads the practitioner a previous request with the same key created.
// A record that cannot be loaded is treated as a miss.
func (s *PractitionerService) replay(ctx context.Context, key, id string) *domain.Practitioner {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Str("practitioner_id", id).Msg("idempotent record not loadable")
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("practitioner_id", id).Msg("idempotent replay")
	return existing
}

// Get returns a practitioner regardless of its lifecycle state.
func (s *PractitionerService) Get(ctx context.Context, id string) (*domain.Practitioner, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get practitioner %s: %w", id, err)
	}
	return p, nil
}

// List returns a page of practitioners. Inactive ones are excluded unless requested.
func (s *PractitionerService) List(ctx context.Context, input ports.ListInput) (*ports.Page[*domain.Practitioner], error) {
	page, err := normalizePage(input.PageRequest, ports.PractitionerSortFields)
	if err != nil {
		return nil, err
	}

	var (
		items []*domain.Practitioner
		total int64
	)
	if input.IncludeInactive {
		items, total, err = s.repo.FindAll(ctx, page)
	} else {
		items, total, err = s.repo.FindAllActive(ctx, page)
	}
	if err != nil {
		return nil, fmt.Errorf("list practitioners: %w", err)
	}
	return newPage(items, total, page), nil
}

// Update merges the supplied fields into the stored practitioner.
// Inactive practitioners can still be updated.
func (s *PractitionerService) Update(ctx context.Context, input ports.UpdatePractitionerInput) (*domain.Practitioner, error) {
	if err := s.validator.Validate(&input); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("update practitioner %s: %w", input.ID, err)
	}

	p.Apply(domain.PractitionerPatch{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: toAddressPatch(input.Address),
	})
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("update practitioner %s: %w", input.ID, err)
	}

	s.audit.Publish(newAuditEntry(domain.KindPractitioner, p.ID, domain.ActionUpdated, p.UpdatedAt))
	s.logger.Info().Str("practitioner_id", p.ID).Msg("practitioner updated")
	return p, nil
}

// Deactivate soft-deletes a practitioner. Deactivating an inactive practitioner is a no-op.
func (s *PractitionerService) Deactivate(ctx context.Context, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate practitioner %s: %w", id, err)
	}
	if !p.Deactivate() {
		s.logger.Debug().Str("practitioner_id", id).Msg("practitioner already inactive")
		return nil
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, p); err != nil {
		return fmt.Errorf("deactivate practitioner %s: %w", id, err)
	}

	s.audit.Publish(newAuditEntry(domain.KindPractitioner, p.ID, domain.ActionDeactivated, p.UpdatedAt))
	s.logger.Info().Str("practitioner_id", id).Msg("practitioner deactivated")
	return nil
}
