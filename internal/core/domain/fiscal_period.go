package domain

import "time"

// PeriodStatus is the posting lock state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen      PeriodStatus = "open"
	PeriodSoftClose PeriodStatus = "soft_close"
	PeriodHardClose PeriodStatus = "hard_close"
)

// IsValid reports whether s is one of the known period states.
func (s PeriodStatus) IsValid() bool {
	switch s {
	case PeriodOpen, PeriodSoftClose, PeriodHardClose:
		return true
	}
	return false
}

// IsClosed reports whether the status blocks postings.
func (s PeriodStatus) IsClosed() bool {
	return s == PeriodSoftClose || s == PeriodHardClose
}

// CanTransitionTo enforces the period state machine:
// open -> soft_close -> hard_close, with reopen (-> open) as the only edge
// back from either closed state.
func (s PeriodStatus) CanTransitionTo(next PeriodStatus) bool {
	switch s {
	case PeriodOpen:
		return next == PeriodSoftClose || next == PeriodHardClose
	case PeriodSoftClose:
		return next == PeriodHardClose || next == PeriodOpen
	case PeriodHardClose:
		return next == PeriodOpen
	}
	return false
}

// FiscalPeriod represents one (company, year, month) accounting period.
// Periods are created lazily on first use, in the open state.
type FiscalPeriod struct {
	PeriodID        string       `json:"periodID"` // Primary Key (UUID)
	CompanyID       string       `json:"companyID"`
	Year            int          `json:"year"`
	Month           int          `json:"month"` // 1..12
	Status          PeriodStatus `json:"status"`
	ClosedAt        *time.Time   `json:"closedAt"`
	ClosedBy        *string      `json:"closedBy"`
	ReopenedAt      *time.Time   `json:"reopenedAt"`
	ReopenedBy      *string      `json:"reopenedBy"`
	ReopeningReason *string      `json:"reopeningReason"`
	AuditFields
}

// IsClosed reports whether the period blocks postings.
func (p *FiscalPeriod) IsClosed() bool {
	return p.Status.IsClosed()
}
