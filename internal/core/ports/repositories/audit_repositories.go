package repositories

import (
	"context"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
)

// AuditLogWriter persists audit events.
type AuditLogWriter interface {
	// SaveAuditEvent inserts one audit row.
	SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error
}
