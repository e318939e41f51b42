package mapping

import (
	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	"github.com/neacisu/geniuserp-ledger/internal/models"
)

// ToModelFiscalPeriod converts a domain FiscalPeriod to a model FiscalPeriod.
func ToModelFiscalPeriod(d domain.FiscalPeriod) models.FiscalPeriod {
	return models.FiscalPeriod{
		PeriodID:        d.PeriodID,
		CompanyID:       d.CompanyID,
		Year:            d.Year,
		Month:           d.Month,
		Status:          models.PeriodStatus(d.Status),
		ClosedAt:        d.ClosedAt,
		ClosedBy:        d.ClosedBy,
		ReopenedAt:      d.ReopenedAt,
		ReopenedBy:      d.ReopenedBy,
		ReopeningReason: d.ReopeningReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalPeriod converts a model FiscalPeriod to a domain FiscalPeriod.
func ToDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		PeriodID:        m.PeriodID,
		CompanyID:       m.CompanyID,
		Year:            m.Year,
		Month:           m.Month,
		Status:          domain.PeriodStatus(m.Status),
		ClosedAt:        m.ClosedAt,
		ClosedBy:        m.ClosedBy,
		ReopenedAt:      m.ReopenedAt,
		ReopenedBy:      m.ReopenedBy,
		ReopeningReason: m.ReopeningReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
