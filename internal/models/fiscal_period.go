package models

import "time"

// PeriodStatus mirrors domain.PeriodStatus at the persistence layer.
type PeriodStatus string

// FiscalPeriod maps to the fiscal_periods table.
// UNIQUE(company_id, year, month).
type FiscalPeriod struct {
	PeriodID        string       `json:"periodID"`
	CompanyID       string       `json:"companyID"`
	Year            int          `json:"year"`
	Month           int          `json:"month"`
	Status          PeriodStatus `json:"status"`
	ClosedAt        *time.Time   `json:"closedAt"`
	ClosedBy        *string      `json:"closedBy"`
	ReopenedAt      *time.Time   `json:"reopenedAt"`
	ReopenedBy      *string      `json:"reopenedBy"`
	ReopeningReason *string      `json:"reopeningReason"`
	AuditFields
}
