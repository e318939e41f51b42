package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	portsrepo "github.com/neacisu/geniuserp-ledger/internal/core/ports/repositories"
	portssvc "github.com/neacisu/geniuserp-ledger/internal/core/ports/services"
	"github.com/neacisu/geniuserp-ledger/internal/middleware"
)

// auditLogService writes audit events to the audit_logs table. Sink failures
// are logged and dropped; audit is fire-and-forget and must never roll back
// the accounting transaction that triggered it.
type auditLogService struct {
	auditRepo portsrepo.AuditLogWriter
}

// NewAuditLogService creates a new AuditLogService.
func NewAuditLogService(auditRepo portsrepo.AuditLogWriter) portssvc.AuditLogger {
	return &auditLogService{auditRepo: auditRepo}
}

var _ portssvc.AuditLogger = (*auditLogService)(nil)

func (s *auditLogService) Record(ctx context.Context, event domain.AuditEvent) {
	if event.AuditID == "" {
		event.AuditID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if err := s.auditRepo.SaveAuditEvent(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to write audit event",
			slog.String("action", string(event.Action)),
			slog.String("entity_id", event.EntityID),
			slog.String("error", err.Error()))
	}
}
