package domain

import "time"

// AuditAction names a recorded accounting event.
type AuditAction string

const (
	AuditEntryPosted    AuditAction = "LEDGER_ENTRY_POSTED"
	AuditEntryReversed  AuditAction = "LEDGER_ENTRY_REVERSED"
	AuditPeriodClosed   AuditAction = "FISCAL_PERIOD_CLOSED"
	AuditPeriodReopened AuditAction = "FISCAL_PERIOD_REOPENED"
)

// AuditEvent is a record of who did what to which entity. Events are written
// after the owning transaction commits; a failed write is logged and dropped,
// it never rolls back the accounting change.
type AuditEvent struct {
	AuditID    string         `json:"auditID"` // Primary Key (UUID)
	CompanyID  string         `json:"companyID"`
	ActorID    string         `json:"actorID"`
	Action     AuditAction    `json:"action"`
	EntityType string         `json:"entityType"` // e.g. "ledger_entry", "fiscal_period"
	EntityID   string         `json:"entityID"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
