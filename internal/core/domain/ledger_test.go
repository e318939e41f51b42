package domain_test

import (
	"testing"
	"time"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatJournalNumber(t *testing.T) {
	assert.Equal(t, "2024/1", domain.FormatJournalNumber(2024, 1))
	assert.Equal(t, "2024/17", domain.FormatJournalNumber(2024, 17))
	assert.Equal(t, "2025/100000", domain.FormatJournalNumber(2025, 100000))
}

func TestLedgerEntry_FiscalYear(t *testing.T) {
	entry := domain.LedgerEntry{
		EntryDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 2024, entry.FiscalYear())

	// The fiscal year follows the entry date, not the posting time.
	entry.EntryDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, entry.FiscalYear())
}

func TestLedgerEntry_ReversalFlags(t *testing.T) {
	originalID := "orig-entry"
	reversalID := "rev-entry"

	entry := domain.LedgerEntry{}
	assert.False(t, entry.IsReversal())
	assert.False(t, entry.IsReversed())

	entry.OriginalEntryID = &originalID
	assert.True(t, entry.IsReversal())

	entry = domain.LedgerEntry{ReversingEntryID: &reversalID}
	assert.True(t, entry.IsReversed())
}

func TestJournalType_IsValid(t *testing.T) {
	for _, jt := range []domain.JournalType{
		domain.JournalSales,
		domain.JournalPurchase,
		domain.JournalBank,
		domain.JournalCash,
		domain.JournalGeneral,
	} {
		assert.True(t, jt.IsValid(), string(jt))
	}
	assert.False(t, domain.JournalType("PAYROLL").IsValid())
	assert.False(t, domain.JournalType("").IsValid())
}
