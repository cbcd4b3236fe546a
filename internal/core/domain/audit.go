package domain

import "time"

// RecordKind names the aggregate an audit entry refers to.
type RecordKind string

const (
	KindPractitioner RecordKind = "practitioner"
	KindClient       RecordKind = "client"
)

// AuditAction is the lifecycle step recorded in the audit trail.
type AuditAction string

const (
	ActionCreated     AuditAction = "created"
	ActionUpdated     AuditAction = "updated"
	ActionDeactivated AuditAction = "deactivated"
)

// AuditEntry records a single change applied to a practitioner or client.
type AuditEntry struct {
	ID       string
	Kind     RecordKind
	RecordID string
	Action   AuditAction
	At       time.Time
}
