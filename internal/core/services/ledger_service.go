package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/neacisu/geniuserp-ledger/internal/apperrors"
	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	portsrepo "github.com/neacisu/geniuserp-ledger/internal/core/ports/repositories"
	portssvc "github.com/neacisu/geniuserp-ledger/internal/core/ports/services"
	"github.com/neacisu/geniuserp-ledger/internal/dto"
	"github.com/neacisu/geniuserp-ledger/internal/middleware"
	"github.com/neacisu/geniuserp-ledger/internal/utils/accounting"
)

// ledgerService provides the posting pipeline: balance validation, period
// check, journal number allocation and persistence.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryWithTx
	periodSvc  portssvc.FiscalPeriodSvcFacade
	audit      portssvc.AuditLogger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx, periodSvc portssvc.FiscalPeriodSvcFacade, audit portssvc.AuditLogger) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		periodSvc:  periodSvc,
		audit:      audit,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostEntry validates and persists a new ledger entry. Validation and the
// fiscal period pre-check run before anything touches the database; the
// repository re-checks the period and allocates the journal number inside
// the insert transaction, so a failed posting never consumes a sequence.
func (s *ledgerService) PostEntry(ctx context.Context, companyID string, req dto.PostEntryRequest, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown journal type %q", apperrors.ErrValidation, req.Type)
	}
	if req.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	lines := make([]domain.LedgerLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.LedgerLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lineReq.AccountID,
			DebitAmount:  lineReq.DebitAmount,
			CreditAmount: lineReq.CreditAmount,
			Description:  lineReq.Description,
			AuditFields:  audit,
		}
	}

	// Double-entry check: debits must equal credits before anything persists.
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}

	// Materialize the period row on first posting into the month and fast-fail
	// when it is closed. The repository repeats the status check inside the
	// insert transaction to close the race with a concurrent close.
	period, err := s.periodSvc.GetOrCreatePeriod(ctx, companyID, req.EntryDate.Year(), int(req.EntryDate.Month()), actorID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed() {
		return nil, fmt.Errorf("%w: period %d-%02d of company %s is %s",
			apperrors.ErrPeriodClosed, period.Year, period.Month, companyID, period.Status)
	}

	documentDate := req.EntryDate
	if req.DocumentDate != nil {
		documentDate = *req.DocumentDate
	}

	entry := domain.LedgerEntry{
		EntryID:      entryID,
		CompanyID:    companyID,
		Type:         req.Type,
		EntryDate:    req.EntryDate,
		DocumentDate: documentDate,
		Description:  req.Description,
		Amount:       accounting.EntryAmount(lines),
		AuditFields:  audit,
	}

	saved, err := s.ledgerRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		logger.Error("Failed to save ledger entry",
			slog.String("company_id", companyID),
			slog.String("entry_id", entryID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	logger.Info("Ledger entry posted",
		slog.String("company_id", companyID),
		slog.String("entry_id", saved.EntryID),
		slog.String("journal_number", derefOrEmpty(saved.JournalNumber)))

	s.audit.Record(ctx, domain.AuditEvent{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     domain.AuditEntryPosted,
		EntityType: "ledger_entry",
		EntityID:   saved.EntryID,
		Detail: map[string]any{
			"journalType":   string(saved.Type),
			"journalNumber": derefOrEmpty(saved.JournalNumber),
			"amount":        saved.Amount.String(),
		},
	})

	return saved, nil
}

// ReverseEntry creates the correcting entry for a posted entry: same
// accounts, debit and credit swapped, its own journal number. The original
// is linked to its reversal; an entry can only be reversed once.
func (s *ledgerService) ReverseEntry(ctx context.Context, companyID string, entryID string, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry for reversal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	if original.CompanyID != companyID {
		// Obscure existence of entries in other companies.
		return nil, apperrors.ErrNotFound
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrConflict, entryID)
	}
	if original.IsReversed() {
		return nil, fmt.Errorf("%w: entry %s has already been reversed", apperrors.ErrConflict, entryID)
	}

	originalLines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines of entry %s: %w", entryID, err)
	}

	// The reversal posts into the original's period; a closed period must be
	// reopened first. The row already exists from the original posting, but
	// the lookup goes through the same materializing path.
	period, err := s.periodSvc.GetOrCreatePeriod(ctx, companyID, original.EntryDate.Year(), int(original.EntryDate.Month()), actorID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed() {
		return nil, fmt.Errorf("%w: period %d-%02d of company %s is %s",
			apperrors.ErrPeriodClosed, period.Year, period.Month, companyID, period.Status)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	reversalLines := make([]domain.LedgerLine, len(originalLines))
	for i, origLine := range originalLines {
		reversalLines[i] = domain.LedgerLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			AccountID:    origLine.AccountID,
			DebitAmount:  origLine.CreditAmount,
			CreditAmount: origLine.DebitAmount,
			Description:  origLine.Description,
			AuditFields:  audit,
		}
	}

	reversal := domain.LedgerEntry{
		EntryID:         reversalID,
		CompanyID:       companyID,
		Type:            original.Type,
		EntryDate:       original.EntryDate,
		DocumentDate:    original.DocumentDate,
		Description:     fmt.Sprintf("Reversal of: %s", original.Description),
		Amount:          original.Amount,
		OriginalEntryID: &original.EntryID,
		AuditFields:     audit,
	}

	saved, err := s.ledgerRepo.SaveReversalEntry(ctx, reversal, reversalLines, original.EntryID)
	if err != nil {
		logger.Error("Failed to save reversal entry",
			slog.String("original_entry_id", entryID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reversal entry: %w", err)
	}

	logger.Info("Ledger entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", saved.EntryID))

	s.audit.Record(ctx, domain.AuditEvent{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     domain.AuditEntryReversed,
		EntityType: "ledger_entry",
		EntityID:   entryID,
		Detail: map[string]any{
			"reversalEntryID": saved.EntryID,
			"journalNumber":   derefOrEmpty(saved.JournalNumber),
		},
	})

	return saved, nil
}

// GetEntryByID retrieves a ledger entry together with its lines.
func (s *ledgerService) GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.ledgerRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines of entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries for a company.
func (s *ledgerService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByCompany(ctx, companyID, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve ledger entries: %w", err)
	}

	entryResponses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		entryResponses[i] = dto.ToEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{
		Entries:   entryResponses,
		NextToken: nextToken,
	}, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
