package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	portsrepo "github.com/neacisu/geniuserp-ledger/internal/core/ports/repositories"
	portssvc "github.com/neacisu/geniuserp-ledger/internal/core/ports/services"
	"github.com/neacisu/geniuserp-ledger/internal/middleware"
)

// journalNumberingService numbers historical entries that predate the
// numbering scheme. Live allocation happens inside the posting transaction
// in the ledger repository; this service only drives the offline backfill.
type journalNumberingService struct {
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	counterRepo portsrepo.DocumentCounterRepository
}

// NewJournalNumberingService creates a new JournalNumberingService.
func NewJournalNumberingService(ledgerRepo portsrepo.LedgerRepositoryWithTx, counterRepo portsrepo.DocumentCounterRepository) portssvc.JournalNumberingSvc {
	return &journalNumberingService{
		ledgerRepo:  ledgerRepo,
		counterRepo: counterRepo,
	}
}

var _ portssvc.JournalNumberingSvc = (*journalNumberingService)(nil)

// BackfillJournalNumbers assigns numbers to every unnumbered entry.
//
// The repository returns candidates ordered by (company, type, entry date,
// created at). Because the fiscal year is a function of the entry date, that
// ordering already yields each (company, type, year) group in ascending
// chronological order, and the year in the counter key keeps sequences from
// bleeding across years. Unlike live postings, which are numbered in posting
// order, backfilled entries are numbered in entry-date order.
//
// Each assignment runs in its own short transaction so a failure partway
// through leaves the already-numbered entries committed; rerunning the tool
// picks up where it stopped.
func (s *journalNumberingService) BackfillJournalNumbers(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.ledgerRepo.FindUnnumberedEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to find unnumbered entries: %w", err)
	}
	if len(entries) == 0 {
		logger.Info("No unnumbered ledger entries found")
		return 0, nil
	}

	count := 0
	for i := range entries {
		if err := s.assignNumber(ctx, &entries[i]); err != nil {
			return count, fmt.Errorf("backfill stopped at entry %s after %d assignments: %w", entries[i].EntryID, count, err)
		}
		count++
	}

	logger.Info("Journal number backfill completed", slog.Int("entries_numbered", count))
	return count, nil
}

func (s *journalNumberingService) assignNumber(ctx context.Context, entry *domain.LedgerEntry) error {
	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.ledgerRepo.Rollback(ctx, tx) // no-op once committed

	fiscalYear := entry.FiscalYear()
	seq, err := s.counterRepo.NextValue(ctx, tx, entry.CompanyID, entry.Type, fiscalYear)
	if err != nil {
		return err
	}

	number := domain.FormatJournalNumber(fiscalYear, seq)
	if err := s.ledgerRepo.AssignJournalNumber(ctx, tx, entry.EntryID, number, time.Now().UTC()); err != nil {
		return err
	}

	return s.ledgerRepo.Commit(ctx, tx)
}
