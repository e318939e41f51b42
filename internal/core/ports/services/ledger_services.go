package services

import (
	"context"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	"github.com/neacisu/geniuserp-ledger/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger data
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a ledger entry with its lines.
	GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of entries for a company.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerWriterSvc defines write operations for ledger data
type LedgerWriterSvc interface {
	// PostEntry validates and persists a new ledger entry: balance check,
	// fiscal period check and journal number allocation all happen before the
	// entry becomes visible.
	PostEntry(ctx context.Context, companyID string, req dto.PostEntryRequest, actorID string) (*domain.LedgerEntry, error)

	// ReverseEntry creates the correcting entry for a posted entry. Entries
	// are never deleted; this is the only way to undo one.
	ReverseEntry(ctx context.Context, companyID string, entryID string, actorID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
