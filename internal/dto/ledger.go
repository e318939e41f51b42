package dto

import (
	"time"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one debit or credit line of a posting request.
// Exactly one of debitAmount / creditAmount should be non-zero; the balance
// validator rejects anything else.
type EntryLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// PostEntryRequest is the payload for creating a ledger entry.
type PostEntryRequest struct {
	Type         domain.JournalType `json:"type" binding:"required,oneof=SALES PURCHASE BANK CASH GENERAL"`
	EntryDate    time.Time          `json:"entryDate" binding:"required"`
	DocumentDate *time.Time         `json:"documentDate"` // defaults to entryDate
	Description  string             `json:"description" binding:"required"`
	Lines        []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryLineResponse defines the data returned for a ledger line.
type EntryLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description,omitempty"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID          string              `json:"entryID"`
	CompanyID        string              `json:"companyID"`
	Type             string              `json:"type"`
	EntryDate        time.Time           `json:"entryDate"`
	DocumentDate     time.Time           `json:"documentDate"`
	JournalNumber    *string             `json:"journalNumber"`
	Description      string              `json:"description"`
	Amount           decimal.Decimal     `json:"amount"`
	OriginalEntryID  *string             `json:"originalEntryID,omitempty"`
	ReversingEntryID *string             `json:"reversingEntryID,omitempty"`
	Lines            []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
}

// ListEntriesParams holds parameters for listing ledger entries.
type ListEntriesParams struct {
	Limit            int     `form:"limit"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
}

// ListEntriesResponse is a page of entries plus the cursor for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain LedgerLine to its response DTO.
func ToEntryLineResponse(line *domain.LedgerLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:       line.LineID,
		AccountID:    line.AccountID,
		DebitAmount:  line.DebitAmount,
		CreditAmount: line.CreditAmount,
		Description:  line.Description,
	}
}

// ToEntryResponse converts a domain LedgerEntry to its response DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		CompanyID:        e.CompanyID,
		Type:             string(e.Type),
		EntryDate:        e.EntryDate,
		DocumentDate:     e.DocumentDate,
		JournalNumber:    e.JournalNumber,
		Description:      e.Description,
		Amount:           e.Amount,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}
