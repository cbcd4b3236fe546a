package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

const clientScope = "client"

type ClientService struct {
	repo        ports.ClientRepository
	validator   PayloadValidator
	idempotency IdempotencyStore
	audit       AuditPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

func NewClientService(
	repo ports.ClientRepository,
	validator PayloadValidator,
	idempotency IdempotencyStore,
	audit AuditPublisher,
	logger zerolog.Logger,
) *ClientService {
	return &ClientService{
		repo:        repo,
		validator:   validator,
		idempotency: idempotency,
		audit:       audit,
		logger:      logger,
		now:         time.Now,
	}
}

// Create registers a new client, honouring the idempotency key when present.
func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	if err := s.validator.Validate(&input); err != nil {
		return nil, err
	}

	key := input.IdempotencyKey
	existingID, err := claimIdempotencyKey(ctx, s.idempotency, clientScope, key, s.logger)
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		if existing := s.replay(ctx, key, existingID); existing != nil {
			return existing, nil
		}
	}

	now := s.now().UTC()
	c := &domain.Client{
		Name:      input.Name,
		Email:     input.Email,
		CPF:       input.CPF,
		Phone:     input.Phone,
		Address:   toAddress(input.Address),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, c); err != nil {
		releaseIdempotencyKey(ctx, s.idempotency, clientScope, key, s.logger)
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	bindIdempotencyKey(ctx, s.idempotency, clientScope, key, c.ID, s.logger)

	s.audit.Publish(newAuditEntry(domain.KindClient, c.ID, domain.ActionCreated, now))
	s.logger.Info().Str("client_id", c.ID).Msg("client created")
	return c, nil
}

func (s *ClientService) replay(ctx context.Context, key, id string) *domain.Client {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Str("client_id", id).Msg("idempotent record not loadable")
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("client_id", id).Msg("idempotent replay")
	return existing
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client %s: %w", id, err)
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context, input ports.ListInput) (*ports.Page[*domain.Client], error) {
	page, err := normalizePage(input.PageRequest, ports.ClientSortFields)
	if err != nil {
		return nil, err
	}

	var (
		items []*domain.Client
		total int64
	)
	if input.IncludeInactive {
		items, total, err = s.repo.FindAll(ctx, page)
	} else {
		items, total, err = s.repo.FindAllActive(ctx, page)
	}
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return newPage(items, total, page), nil
}

func (s *ClientService) Update(ctx context.Context, input ports.UpdateClientInput) (*domain.Client, error) {
	if err := s.validator.Validate(&input); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("update client %s: %w", input.ID, err)
	}

	c.Apply(domain.ClientPatch{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: toAddressPatch(input.Address),
	})
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("update client %s: %w", input.ID, err)
	}

	s.audit.Publish(newAuditEntry(domain.KindClient, c.ID, domain.ActionUpdated, c.UpdatedAt))
	s.logger.Info().Str("client_id", c.ID).Msg("client updated")
	return c, nil
}

func (s *ClientService) Deactivate(ctx context.Context, id string) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate client %s: %w", id, err)
	}
	if !c.Deactivate() {
		s.logger.Debug().Str("client_id", id).Msg("client already inactive")
		return nil
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, c); err != nil {
		return fmt.Errorf("deactivate client %s: %w", id, err)
	}

	s.audit.Publish(newAuditEntry(domain.KindClient, c.ID, domain.ActionDeactivated, c.UpdatedAt))
	s.logger.Info().Str("client_id", id).Msg("client deactivated")
	return nil
}
