package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neacisu/geniuserp-ledger/internal/apperrors"
	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	portsrepo "github.com/neacisu/geniuserp-ledger/internal/core/ports/repositories"
	"github.com/neacisu/geniuserp-ledger/internal/models"
	"github.com/neacisu/geniuserp-ledger/internal/utils/mapping"
	"github.com/neacisu/geniuserp-ledger/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	periodRepo  portsrepo.FiscalPeriodReader
	counterRepo portsrepo.DocumentCounterRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry and line data.
func newPgxLedgerRepository(pool *pgxpool.Pool, periodRepo portsrepo.FiscalPeriodReader, counterRepo portsrepo.DocumentCounterRepository) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		periodRepo:     periodRepo,
		counterRepo:    counterRepo,
	}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// SaveEntry persists an entry and its lines within a DB transaction. The
// fiscal period status is re-checked and the journal number allocated inside
// the same transaction as the inserts: a closed period or a failed insert
// rolls everything back, so the counter is only consumed by committed
// entries (an abort after the increment leaves a gap, never a duplicate).
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	saved, err := r.saveEntryInTx(ctx, tx, entry, lines)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// SaveReversalEntry is SaveEntry plus linking the original entry to its
// reversal in the same transaction. The original is locked and checked before
// a sequence value is consumed; the linking UPDATE runs after the insert so
// the reversal row exists when the FK on reversing_entry_id is checked.
func (r *PgxLedgerRepository) SaveReversalEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine, originalEntryID string) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock the original row: if someone else already reversed it, bail out
	// before consuming a sequence value.
	var reversingID *string
	lockQuery := `
		SELECT reversing_entry_id
		FROM ledger_entries
		WHERE entry_id = $1
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, lockQuery, originalEntryID).Scan(&reversingID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock entry "+originalEntryID, err)
	}
	if reversingID != nil {
		return nil, fmt.Errorf("%w: entry %s has already been reversed", apperrors.ErrConflict, originalEntryID)
	}

	saved, err := r.saveEntryInTx(ctx, tx, entry, lines)
	if err != nil {
		return nil, err
	}

	linkQuery := `
		UPDATE ledger_entries
		SET reversing_entry_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entry_id = $1 AND reversing_entry_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, linkQuery, originalEntryID, saved.EntryID, entry.LastUpdatedAt, entry.LastUpdatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to link reversal to entry "+originalEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: entry %s has already been reversed", apperrors.ErrConflict, originalEntryID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *PgxLedgerRepository) saveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, lines []domain.LedgerLine) (*domain.LedgerEntry, error) {
	// 1. Re-check the fiscal period under a shared row lock.
	status, err := r.periodRepo.GetStatusInTx(ctx, tx, entry.CompanyID, entry.EntryDate.Year(), int(entry.EntryDate.Month()))
	if err != nil {
		return nil, err
	}
	if status.IsClosed() {
		return nil, fmt.Errorf("%w: period %d-%02d of company %s is %s",
			apperrors.ErrPeriodClosed, entry.EntryDate.Year(), int(entry.EntryDate.Month()), entry.CompanyID, status)
	}

	// 2. Allocate the journal number atomically.
	fiscalYear := entry.FiscalYear()
	seq, err := r.counterRepo.NextValue(ctx, tx, entry.CompanyID, entry.Type, fiscalYear)
	if err != nil {
		return nil, err
	}
	number := domain.FormatJournalNumber(fiscalYear, seq)
	entry.JournalNumber = &number

	// 3. Insert the entry.
	modelEntry := mapping.ToModelLedgerEntry(entry)
	entryQuery := `
		INSERT INTO ledger_entries (
			entry_id, company_id, journal_type, entry_date, document_date,
			journal_number, description, amount,
			original_entry_id, reversing_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.CompanyID,
		modelEntry.JournalType,
		modelEntry.EntryDate,
		modelEntry.DocumentDate,
		modelEntry.JournalNumber,
		modelEntry.Description,
		modelEntry.Amount,
		modelEntry.OriginalEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert ledger entry "+modelEntry.EntryID, err)
	}

	// 4. Insert the lines as a batch.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO ledger_lines (
			line_id, entry_id, account_id, debit_amount, credit_amount, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelLedgerLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.DebitAmount,
			modelLine.CreditAmount,
			modelLine.Description,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute line batch for entry "+modelEntry.EntryID, err)
	}

	entry.Lines = lines
	return &entry, nil
}

const entryColumns = `
	entry_id, company_id, journal_type, entry_date, document_date,
	journal_number, description, amount,
	original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.JournalType,
		&m.EntryDate,
		&m.DocumentDate,
		&m.JournalNumber,
		&m.Description,
		&m.Amount,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntryByID retrieves a ledger entry by its ID, without lines.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE entry_id = $1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry "+entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(*m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines belonging to an entry.
func (r *PgxLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit_amount, credit_amount, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_lines
		WHERE entry_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.LedgerLine{}
	for rows.Next() {
		var l models.LedgerLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.DebitAmount,
			&l.CreditAmount,
			&l.Description,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainLedgerLineSlice(lines), nil
}

// ListEntriesByCompany retrieves a paginated list of entries for a company
// using token-based pagination over (entry_date, created_at).
func (r *PgxLedgerRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
	`
	filterClause := `WHERE company_id = $1`
	if !includeReversals {
		filterClause += ` AND original_entry_id IS NULL AND reversing_entry_id IS NULL`
	}
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison keeps the cursor stable under equal entry dates.
		cursorClause := `AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastEntryDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)

		return r.queryEntriesPage(ctx, query, args, limit)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	return r.queryEntriesPage(ctx, query, args, limit)
}

func (r *PgxLedgerRepository) queryEntriesPage(ctx context.Context, query string, args []interface{}, limit int) ([]domain.LedgerEntry, *string, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, limit+1)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row", scanErr)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points to the last item included in this page; the next
		// query starts after it.
		lastEntry := modelEntries[limit-1]
		token := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.LedgerEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainLedgerEntry(m)
	}
	return domainEntries, nextTokenVal, nil
}

// FindUnnumberedEntries retrieves every entry with a NULL journal number in
// backfill order: per company and journal type, ascending by entry date with
// creation time as the tie-breaker. The fiscal year is a function of the
// entry date, so each (company, type, year) group comes out chronologically.
func (r *PgxLedgerRepository) FindUnnumberedEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE journal_number IS NULL
		ORDER BY company_id, journal_type, entry_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unnumbered ledger entries", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan unnumbered entry row", scanErr)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(*m))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unnumbered entry rows", err)
	}
	return entries, nil
}

// AssignJournalNumber writes a number onto a previously unnumbered entry.
// Numbers are write-once; an entry that already has one is left untouched
// and the call fails with ErrConflict.
func (r *PgxLedgerRepository) AssignJournalNumber(ctx context.Context, tx pgx.Tx, entryID string, journalNumber string, updatedAt time.Time) error {
	query := `
		UPDATE ledger_entries
		SET journal_number = $2,
		    last_updated_at = $3
		WHERE entry_id = $1 AND journal_number IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, entryID, journalNumber, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to assign journal number to entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s already has a journal number", apperrors.ErrConflict, entryID)
	}
	return nil
}
