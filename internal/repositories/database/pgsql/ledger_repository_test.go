package pgsql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neacisu/geniuserp-ledger/internal/apperrors"
	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	"github.com/neacisu/geniuserp-ledger/internal/repositories/database/pgsql"
)

const testActorID = "7d9e2a14-3f61-4c6e-9b0a-5a1f2c8d4e71"

// newBalancedEntry builds a two-line sales entry ready for SaveEntry.
func newBalancedEntry(companyID string, entryDate time.Time) (domain.LedgerEntry, []domain.LedgerLine) {
	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     testActorID,
		LastUpdatedAt: now,
		LastUpdatedBy: testActorID,
	}
	amount := decimal.RequireFromString("150.00")

	entry := domain.LedgerEntry{
		EntryID:      uuid.NewString(),
		CompanyID:    companyID,
		Type:         domain.JournalSales,
		EntryDate:    entryDate,
		DocumentDate: entryDate,
		Description:  "invoice 2024-0042",
		Amount:       amount,
		AuditFields:  audit,
	}
	lines := []domain.LedgerLine{
		{LineID: uuid.NewString(), EntryID: entry.EntryID, AccountID: "4111", DebitAmount: amount, AuditFields: audit},
		{LineID: uuid.NewString(), EntryID: entry.EntryID, AccountID: "707", CreditAmount: amount, AuditFields: audit},
	}
	return entry, lines
}

// reversalOf builds the mirror-image entry for an already persisted original.
func reversalOf(original *domain.LedgerEntry, originalLines []domain.LedgerLine) (domain.LedgerEntry, []domain.LedgerLine) {
	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     testActorID,
		LastUpdatedAt: now,
		LastUpdatedBy: testActorID,
	}

	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       original.CompanyID,
		Type:            original.Type,
		EntryDate:       original.EntryDate,
		DocumentDate:    original.DocumentDate,
		Description:     "Reversal of: " + original.Description,
		Amount:          original.Amount,
		OriginalEntryID: &original.EntryID,
		AuditFields:     audit,
	}
	lines := make([]domain.LedgerLine, 0, len(originalLines))
	for _, line := range originalLines {
		lines = append(lines, domain.LedgerLine{
			LineID:       uuid.NewString(),
			EntryID:      entry.EntryID,
			AccountID:    line.AccountID,
			DebitAmount:  line.CreditAmount,
			CreditAmount: line.DebitAmount,
			Description:  line.Description,
			AuditFields:  audit,
		})
	}
	return entry, lines
}

func TestSaveEntry_AssignsSequentialJournalNumbers(t *testing.T) {
	provider := pgsql.NewRepositoryProvider(testPool(t))
	ctx := context.Background()
	companyID := uuid.NewString()
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	first, firstLines := newBalancedEntry(companyID, entryDate)
	saved, err := provider.LedgerRepo.SaveEntry(ctx, first, firstLines)
	require.NoError(t, err)
	require.NotNil(t, saved.JournalNumber)
	assert.Equal(t, "2024/1", *saved.JournalNumber)

	second, secondLines := newBalancedEntry(companyID, entryDate)
	saved, err = provider.LedgerRepo.SaveEntry(ctx, second, secondLines)
	require.NoError(t, err)
	require.NotNil(t, saved.JournalNumber)
	assert.Equal(t, "2024/2", *saved.JournalNumber)

	lines, err := provider.LedgerRepo.FindLinesByEntryID(ctx, first.EntryID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

// The linking UPDATE on the original must run after the reversal row exists,
// otherwise the foreign key on reversing_entry_id rejects the whole
// transaction and no reversal can ever be saved.
func TestSaveReversalEntry_CommitsAgainstForeignKey(t *testing.T) {
	provider := pgsql.NewRepositoryProvider(testPool(t))
	ctx := context.Background()
	companyID := uuid.NewString()
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	original, originalLines := newBalancedEntry(companyID, entryDate)
	savedOriginal, err := provider.LedgerRepo.SaveEntry(ctx, original, originalLines)
	require.NoError(t, err)

	reversal, reversalLines := reversalOf(savedOriginal, originalLines)
	savedReversal, err := provider.LedgerRepo.SaveReversalEntry(ctx, reversal, reversalLines, savedOriginal.EntryID)
	require.NoError(t, err)
	require.NotNil(t, savedReversal.JournalNumber)
	assert.Equal(t, "2024/2", *savedReversal.JournalNumber)

	reloaded, err := provider.LedgerRepo.FindEntryByID(ctx, savedOriginal.EntryID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.ReversingEntryID)
	assert.Equal(t, savedReversal.EntryID, *reloaded.ReversingEntryID)
	require.NotNil(t, savedReversal.OriginalEntryID)
	assert.Equal(t, savedOriginal.EntryID, *savedReversal.OriginalEntryID)
}

func TestSaveReversalEntry_SecondAttemptBurnsNoSequenceValue(t *testing.T) {
	provider := pgsql.NewRepositoryProvider(testPool(t))
	ctx := context.Background()
	companyID := uuid.NewString()
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	original, originalLines := newBalancedEntry(companyID, entryDate)
	savedOriginal, err := provider.LedgerRepo.SaveEntry(ctx, original, originalLines)
	require.NoError(t, err)

	reversal, reversalLines := reversalOf(savedOriginal, originalLines)
	_, err = provider.LedgerRepo.SaveReversalEntry(ctx, reversal, reversalLines, savedOriginal.EntryID)
	require.NoError(t, err)

	before, err := provider.CounterRepo.CurrentValue(ctx, companyID, domain.JournalSales, 2024)
	require.NoError(t, err)
	assert.EqualValues(t, 2, before)

	again, againLines := reversalOf(savedOriginal, originalLines)
	_, err = provider.LedgerRepo.SaveReversalEntry(ctx, again, againLines, savedOriginal.EntryID)
	require.ErrorIs(t, err, apperrors.ErrConflict)

	after, err := provider.CounterRepo.CurrentValue(ctx, companyID, domain.JournalSales, 2024)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a rejected reversal must not consume a sequence value")
}

func TestSaveReversalEntry_UnknownOriginal(t *testing.T) {
	provider := pgsql.NewRepositoryProvider(testPool(t))
	ctx := context.Background()
	companyID := uuid.NewString()
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	reversal, reversalLines := newBalancedEntry(companyID, entryDate)
	missingID := uuid.NewString()
	reversal.OriginalEntryID = &missingID

	_, err := provider.LedgerRepo.SaveReversalEntry(ctx, reversal, reversalLines, missingID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSaveEntry_ClosedPeriodConsumesNothing(t *testing.T) {
	provider := pgsql.NewRepositoryProvider(testPool(t))
	ctx := context.Background()
	companyID := uuid.NewString()
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	now := time.Now().UTC()
	period, err := provider.FiscalPeriodRepo.GetOrCreatePeriod(ctx, domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		CompanyID: companyID,
		Year:      2024,
		Month:     3,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     testActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: testActorID,
		},
	})
	require.NoError(t, err)

	closed := *period
	closed.Status = domain.PeriodSoftClose
	closed.ClosedAt = &now
	closedBy := testActorID
	closed.ClosedBy = &closedBy
	require.NoError(t, provider.FiscalPeriodRepo.UpdatePeriodStatus(ctx, closed, domain.PeriodOpen))

	entry, lines := newBalancedEntry(companyID, entryDate)
	_, err = provider.LedgerRepo.SaveEntry(ctx, entry, lines)
	require.ErrorIs(t, err, apperrors.ErrPeriodClosed)

	value, err := provider.CounterRepo.CurrentValue(ctx, companyID, domain.JournalSales, 2024)
	require.NoError(t, err)
	assert.EqualValues(t, 0, value, "a rejected posting must not consume a sequence value")
}
