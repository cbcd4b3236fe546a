package ports

import (
	"context"

	"github.com/vollmed/registry-api/internal/core/domain"
)

// AuditService records lifecycle changes dequeued by the audit dispatcher.
type AuditService interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}
