package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

// PayloadValidator checks request payloads before they reach an entity.
type PayloadValidator interface {
	Validate(payload any) error
}

// IdempotencyStore tracks create requests by Idempotency-Key (Redis).
// A key is reserved before the record is saved and then bound to its ID.
type IdempotencyStore interface {
	// Reserve claims key for an in-flight create. It reports false when the key is already taken.
	Reserve(ctx context.Context, scope, key string) (bool, error)
	// Lookup returns the record ID bound to key; a key that is only reserved is not found.
	Lookup(ctx context.Context, scope, key string) (string, bool, error)
	Remember(ctx context.Context, scope, key, id string) error
	Release(ctx context.Context, scope, key string) error
}

// AuditPublisher hands audit entries to the asynchronous audit dispatcher.
type AuditPublisher interface {
	Publish(entry domain.AuditEntry)
}

// claimIdempotencyKey reserves key for this create. It returns the ID of the
// record an earlier request with the same key produced, or ErrCreateInProgress
// while that request is still running. Store failures degrade to a plain create.
func claimIdempotencyKey(ctx context.Context, store IdempotencyStore, scope, key string, log zerolog.Logger) (string, error) {
	if key == "" {
		return "", nil
	}
	reserved, err := store.Reserve(ctx, scope, key)
	if err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
		return "", nil
	}
	if reserved {
		return "", nil
	}
	id, ok, err := store.Lookup(ctx, scope, key)
	if err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return "", nil
	}
	if !ok {
		return "", domain.ErrCreateInProgress
	}
	return id, nil
}

// bindIdempotencyKey points key at the created record.
func bindIdempotencyKey(ctx context.Context, store IdempotencyStore, scope, key, id string, log zerolog.Logger) {
	if key == "" {
		return
	}
	if err := store.Remember(ctx, scope, key, id); err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
	}
}

// releaseIdempotencyKey frees a reservation after a failed save so the client can retry.
func releaseIdempotencyKey(ctx context.Context, store IdempotencyStore, scope, key string, log zerolog.Logger) {
	if key == "" {
		return
	}
	if err := store.Release(ctx, scope, key); err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

func newAuditEntry(kind domain.RecordKind, recordID string, action domain.AuditAction, at time.Time) domain.AuditEntry {
	return domain.AuditEntry{
		ID:       uuid.NewString(),
		Kind:     kind,
		RecordID: recordID,
		Action:   action,
		At:       at,
	}
}

func toAddress(in *ports.AddressInput) domain.Address {
	return domain.Address{
		Street:     in.Street,
		District:   in.District,
		City:       in.City,
		State:      in.State,
		Number:     deref(in.Number),
		Complement: deref(in.Complement),
	}
}

// toAddressPatch returns nil when no address was supplied, leaving the stored
// address untouched.
func toAddressPatch(in *ports.AddressInput) *domain.AddressPatch {
	if in == nil {
		return nil
	}
	return &domain.AddressPatch{
		Street:     &in.Street,
		District:   &in.District,
		City:       &in.City,
		State:      &in.State,
		Number:     in.Number,
		Complement: in.Complement,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
