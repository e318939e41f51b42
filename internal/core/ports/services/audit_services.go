package services

import (
	"context"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
)

// AuditLogger records accounting events after the owning transaction has
// committed. Implementations must swallow sink failures: an audit write
// error is logged, never propagated, and never rolls back accounting state.
type AuditLogger interface {
	Record(ctx context.Context, event domain.AuditEvent)
}
