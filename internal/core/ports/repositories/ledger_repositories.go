package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
)

// LedgerEntryReader defines read operations for ledger data
type LedgerEntryReader interface {
	// FindEntryByID retrieves a ledger entry by its unique identifier, without lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindLinesByEntryID retrieves all lines belonging to an entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error)

	// ListEntriesByCompany retrieves a paginated list of entries for a company
	// using token-based pagination. It returns the entries, a token for the
	// next page, and an error.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.LedgerEntry, *string, error)

	// FindUnnumberedEntries retrieves every entry with a NULL journal number,
	// ordered by company, journal type, entry date and creation time. Used by
	// the offline backfill tool.
	FindUnnumberedEntries(ctx context.Context) ([]domain.LedgerEntry, error)
}

// LedgerEntryWriter defines write operations for ledger data
type LedgerEntryWriter interface {
	// SaveEntry persists an entry and its lines in one database transaction:
	// it re-checks the target fiscal period inside the transaction, allocates
	// the next journal number for (company, type, fiscal year), and inserts
	// entry and lines. The returned entry carries the assigned number.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) (*domain.LedgerEntry, error)

	// SaveReversalEntry is SaveEntry plus linking: within the same database
	// transaction it marks the original entry as reversed. Fails with
	// ErrConflict when the original was already reversed.
	SaveReversalEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine, originalEntryID string) (*domain.LedgerEntry, error)

	// AssignJournalNumber writes a number onto a previously unnumbered entry
	// within the caller's transaction. Journal numbers are write-once: the
	// update fails with ErrConflict if the entry already has one.
	AssignJournalNumber(ctx context.Context, tx pgx.Tx, entryID string, journalNumber string, updatedAt time.Time) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
