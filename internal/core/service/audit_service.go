package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists entries to repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single audit entry.
func (s *auditService) Record(ctx context.Context, entry domain.AuditEntry) error {
	if entry.RecordID == "" {
		return fmt.Errorf("record audit entry %s: missing record id", entry.ID)
	}
	if err := s.repo.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("record audit entry %s: %w", entry.ID, err)
	}

	s.log.Debug().
		Str("kind", string(entry.Kind)).
		Str("record_id", entry.RecordID).
		Str("action", string(entry.Action)).
		Msg("audit entry recorded")
	return nil
}
