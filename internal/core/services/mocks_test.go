package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	portsrepo "github.com/neacisu/geniuserp-ledger/internal/core/ports/repositories"
	portssvc "github.com/neacisu/geniuserp-ledger/internal/core/ports/services"
	"github.com/neacisu/geniuserp-ledger/internal/dto"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SaveReversalEntry(ctx context.Context, entry domain.LedgerEntry, lines []domain.LedgerLine, originalEntryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry, lines, originalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) FindUnnumberedEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) AssignJournalNumber(ctx context.Context, tx pgx.Tx, entryID string, journalNumber string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, entryID, journalNumber, updatedAt)
	return args.Error(0)
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock FiscalPeriodRepository ---
type MockFiscalPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalPeriodRepositoryFacade = (*MockFiscalPeriodRepository)(nil)

func (m *MockFiscalPeriodRepository) FindPeriod(ctx context.Context, companyID string, year int, month int) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodRepository) ListPeriodsByCompanyYear(ctx context.Context, companyID string, year int) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodRepository) GetStatusInTx(ctx context.Context, tx pgx.Tx, companyID string, year int, month int) (domain.PeriodStatus, error) {
	args := m.Called(ctx, tx, companyID, year, month)
	return args.Get(0).(domain.PeriodStatus), args.Error(1)
}

func (m *MockFiscalPeriodRepository) GetOrCreatePeriod(ctx context.Context, period domain.FiscalPeriod) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodRepository) UpdatePeriodStatus(ctx context.Context, period domain.FiscalPeriod, expectedStatus domain.PeriodStatus) error {
	args := m.Called(ctx, period, expectedStatus)
	return args.Error(0)
}

// --- Mock FiscalPeriodService (as used by LedgerService) ---
type MockFiscalPeriodService struct {
	mock.Mock
}

var _ portssvc.FiscalPeriodSvcFacade = (*MockFiscalPeriodService)(nil)

func (m *MockFiscalPeriodService) GetOrCreatePeriod(ctx context.Context, companyID string, year int, month int, actorID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, year, month, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodService) AssertOpen(ctx context.Context, companyID string, date time.Time) error {
	args := m.Called(ctx, companyID, date)
	return args.Error(0)
}

func (m *MockFiscalPeriodService) ClosePeriod(ctx context.Context, companyID string, year int, month int, mode domain.PeriodStatus, actorID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, year, month, mode, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodService) ReopenPeriod(ctx context.Context, companyID string, year int, month int, actorID string, reason string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, year, month, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockFiscalPeriodService) GetPeriodStatus(ctx context.Context, companyID string, year int, month int) (domain.PeriodStatus, error) {
	args := m.Called(ctx, companyID, year, month)
	return args.Get(0).(domain.PeriodStatus), args.Error(1)
}

func (m *MockFiscalPeriodService) ListPeriods(ctx context.Context, companyID string, year int) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, companyID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

// --- Mock AuditLogger ---
type MockAuditLogger struct {
	mock.Mock
}

var _ portssvc.AuditLogger = (*MockAuditLogger)(nil)

func (m *MockAuditLogger) Record(ctx context.Context, event domain.AuditEvent) {
	m.Called(ctx, event)
}

// --- Mock AuditLogWriter ---
type MockAuditLogWriter struct {
	mock.Mock
}

var _ portsrepo.AuditLogWriter = (*MockAuditLogWriter)(nil)

func (m *MockAuditLogWriter) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Fake DocumentCounterRepository ---
// Stateful in-memory counter keyed like the real table. Thread safe so tests
// can exercise it from multiple goroutines.
type fakeCounterRepo struct {
	mu       sync.Mutex
	counters map[counterKey]int64
}

type counterKey struct {
	companyID   string
	counterType domain.JournalType
	year        int
}

var _ portsrepo.DocumentCounterRepository = (*fakeCounterRepo)(nil)

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{counters: make(map[counterKey]int64)}
}

func (f *fakeCounterRepo) NextValue(ctx context.Context, tx pgx.Tx, companyID string, counterType domain.JournalType, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := counterKey{companyID, counterType, year}
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeCounterRepo) CurrentValue(ctx context.Context, companyID string, counterType domain.JournalType, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[counterKey{companyID, counterType, year}], nil
}

// --- Shared DTO helpers ---

func postEntryRequest(entryType domain.JournalType, date time.Time, lines ...dto.EntryLineRequest) dto.PostEntryRequest {
	return dto.PostEntryRequest{
		Type:        entryType,
		EntryDate:   date,
		Description: "test posting",
		Lines:       lines,
	}
}
