package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalType identifies the journal a ledger entry belongs to. Each type
// carries its own document numbering sequence per company and fiscal year.
type JournalType string

const (
	JournalSales    JournalType = "SALES"
	JournalPurchase JournalType = "PURCHASE"
	JournalBank     JournalType = "BANK"
	JournalCash     JournalType = "CASH"
	JournalGeneral  JournalType = "GENERAL"
)

// IsValid reports whether t is one of the known journal types.
func (t JournalType) IsValid() bool {
	switch t {
	case JournalSales, JournalPurchase, JournalBank, JournalCash, JournalGeneral:
		return true
	}
	return false
}

// LedgerEntry represents a single, balanced double-entry bookkeeping
// transaction. Entries are never deleted; corrections are reversing entries.
type LedgerEntry struct {
	EntryID          string          `json:"entryID"`      // Primary Key (UUID)
	CompanyID        string          `json:"companyID"`    // Tenant scope (Not Null)
	Type             JournalType     `json:"type"`         // Journal the entry belongs to
	EntryDate        time.Time       `json:"entryDate"`    // Accounting effective date
	DocumentDate     time.Time       `json:"documentDate"` // Date on the source document
	JournalNumber    *string         `json:"journalNumber"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`           // Total of the debit side
	OriginalEntryID  *string         `json:"originalEntryID"`  // Set on reversing entries
	ReversingEntryID *string         `json:"reversingEntryID"` // Set on reversed entries
	Lines            []LedgerLine    `json:"lines,omitempty"`
	AuditFields
}

// FiscalYear returns the fiscal year the entry is numbered under.
// Fiscal years follow the calendar year of the entry date.
func (e *LedgerEntry) FiscalYear() int {
	return e.EntryDate.Year()
}

// IsReversal reports whether this entry reverses another one.
func (e *LedgerEntry) IsReversal() bool {
	return e.OriginalEntryID != nil
}

// IsReversed reports whether this entry has been reversed.
func (e *LedgerEntry) IsReversed() bool {
	return e.ReversingEntryID != nil
}

// LedgerLine is a single debit or credit line within a ledger entry.
// Exactly one of DebitAmount / CreditAmount is non-zero.
type LedgerLine struct {
	LineID       string          `json:"lineID"`  // Primary Key (UUID)
	EntryID      string          `json:"entryID"` // FK -> LedgerEntry.entryID (Not Null)
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	AuditFields
}

// FormatJournalNumber renders the human-facing document number for a
// sequence value allocated within a fiscal year, e.g. "2024/17".
func FormatJournalNumber(fiscalYear int, sequence int64) string {
	return fmt.Sprintf("%d/%d", fiscalYear, sequence)
}
