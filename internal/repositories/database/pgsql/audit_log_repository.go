package pgsql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neacisu/geniuserp-ledger/internal/apperrors"
	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	portsrepo "github.com/neacisu/geniuserp-ledger/internal/core/ports/repositories"
)

type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for audit log data.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogWriter {
	return &PgxAuditLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogWriter = (*PgxAuditLogRepository)(nil)

// SaveAuditEvent inserts one audit row. Detail is serialized to jsonb; a nil
// detail map is stored as SQL NULL.
func (r *PgxAuditLogRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	var detail []byte
	if event.Detail != nil {
		var err error
		detail, err = json.Marshal(event.Detail)
		if err != nil {
			return apperrors.NewAppError(500, "failed to serialize audit detail for "+event.EntityID, err)
		}
	}

	query := `
		INSERT INTO audit_logs (
			audit_id, company_id, actor_id, action, entity_type, entity_id, detail, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		event.AuditID,
		event.CompanyID,
		event.ActorID,
		string(event.Action),
		event.EntityType,
		event.EntityID,
		detail,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit event for "+event.EntityID, err)
	}
	return nil
}
