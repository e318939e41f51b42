package models

import "time"

// AuditLog maps to the audit_logs table. Detail is stored as jsonb.
type AuditLog struct {
	AuditID    string    `json:"auditID"`
	CompanyID  string    `json:"companyID"`
	ActorID    string    `json:"actorID"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityID"`
	Detail     []byte    `json:"detail"`
	CreatedAt  time.Time `json:"createdAt"`
}
