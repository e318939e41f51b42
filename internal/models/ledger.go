package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalType mirrors domain.JournalType at the persistence layer.
type JournalType string

// LedgerEntry maps to the ledger_entries table.
type LedgerEntry struct {
	EntryID          string          `json:"entryID"`
	CompanyID        string          `json:"companyID"`
	JournalType      JournalType     `json:"journalType"`
	EntryDate        time.Time       `json:"entryDate"`
	DocumentDate     time.Time       `json:"documentDate"`
	JournalNumber    *string         `json:"journalNumber"` // NULL until assigned, write-once
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	OriginalEntryID  *string         `json:"originalEntryID"`
	ReversingEntryID *string         `json:"reversingEntryID"`
	AuditFields
}

// LedgerLine maps to the ledger_lines table.
type LedgerLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
	AuditFields
}
