package dto

import (
	"time"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
)

// ClosePeriodRequest is the payload for closing a fiscal period.
type ClosePeriodRequest struct {
	Mode string `json:"mode" binding:"required,oneof=soft_close hard_close"`
}

// ReopenPeriodRequest is the payload for reopening a closed fiscal period.
// The reason is mandatory and ends up on the reopening audit trail.
type ReopenPeriodRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID        string     `json:"periodID"`
	CompanyID       string     `json:"companyID"`
	Year            int        `json:"year"`
	Month           int        `json:"month"`
	Status          string     `json:"status"`
	IsClosed        bool       `json:"isClosed"`
	ClosedAt        *time.Time `json:"closedAt,omitempty"`
	ClosedBy        *string    `json:"closedBy,omitempty"`
	ReopenedAt      *time.Time `json:"reopenedAt,omitempty"`
	ReopenedBy      *string    `json:"reopenedBy,omitempty"`
	ReopeningReason *string    `json:"reopeningReason,omitempty"`
}

// PeriodStatusResponse reports just the posting lock state of a period.
type PeriodStatusResponse struct {
	CompanyID string `json:"companyID"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Status    string `json:"status"`
	IsClosed  bool   `json:"isClosed"`
}

// ToPeriodResponse converts a domain FiscalPeriod to its response DTO.
func ToPeriodResponse(p *domain.FiscalPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:        p.PeriodID,
		CompanyID:       p.CompanyID,
		Year:            p.Year,
		Month:           p.Month,
		Status:          string(p.Status),
		IsClosed:        p.IsClosed(),
		ClosedAt:        p.ClosedAt,
		ClosedBy:        p.ClosedBy,
		ReopenedAt:      p.ReopenedAt,
		ReopenedBy:      p.ReopenedBy,
		ReopeningReason: p.ReopeningReason,
	}
}
