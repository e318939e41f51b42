package services

import "context"

// JournalNumberingSvc exposes the administrative side of document numbering.
// Live allocation happens inside the posting transaction; this service covers
// the one-shot historical backfill.
type JournalNumberingSvc interface {
	// BackfillJournalNumbers numbers every entry with a NULL journal number,
	// per (company, type, fiscal year) group in ascending (entry date,
	// created at) order, through the same counter allocator as live postings.
	// Returns the count of entries numbered.
	BackfillJournalNumbers(ctx context.Context) (int, error)
}
