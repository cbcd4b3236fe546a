package ports

import (
	"context"

	"github.com/vollmed/registry-api/internal/core/domain"
)

// AuditRepository persists the audit trail of record changes.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
