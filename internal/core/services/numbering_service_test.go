package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	portssvc "github.com/neacisu/geniuserp-ledger/internal/core/ports/services"
	"github.com/neacisu/geniuserp-ledger/internal/core/services"
)

type NumberingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	counterRepo    *fakeCounterRepo
	service        portssvc.JournalNumberingSvc
}

func (suite *NumberingServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.counterRepo = newFakeCounterRepo()
	suite.service = services.NewJournalNumberingService(suite.mockLedgerRepo, suite.counterRepo)
}

func unnumberedEntry(companyID string, entryType domain.JournalType, entryDate time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		CompanyID: companyID,
		Type:      entryType,
		EntryDate: entryDate,
	}
}

func (suite *NumberingServiceTestSuite) TestBackfill_NumbersPerCompanyTypeYear() {
	ctx := context.Background()
	companyA := uuid.NewString()
	companyB := uuid.NewString()

	// Already in repository order: company, type, entry date, created at.
	entries := []domain.LedgerEntry{
		unnumberedEntry(companyA, domain.JournalSales, time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)),
		unnumberedEntry(companyA, domain.JournalSales, time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)),
		unnumberedEntry(companyA, domain.JournalSales, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		unnumberedEntry(companyB, domain.JournalGeneral, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		unnumberedEntry(companyB, domain.JournalGeneral, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)),
	}

	assigned := map[string]string{}

	suite.mockLedgerRepo.On("FindUnnumberedEntries", ctx).Return(entries, nil).Once()
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Times(len(entries))
	suite.mockLedgerRepo.On("AssignJournalNumber", ctx, nil, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			assigned[args.Get(2).(string)] = args.Get(3).(string)
		}).
		Return(nil).Times(len(entries))
	suite.mockLedgerRepo.On("Commit", ctx, nil).Return(nil).Times(len(entries))
	suite.mockLedgerRepo.On("Rollback", ctx, nil).Return(nil)

	count, err := suite.service.BackfillJournalNumbers(ctx)

	suite.Require().NoError(err)
	suite.Equal(len(entries), count)

	// Each (company, type, fiscal year) group restarts at 1 and counts up in
	// entry-date order; years never bleed into each other.
	suite.Equal("2023/1", assigned[entries[0].EntryID])
	suite.Equal("2023/2", assigned[entries[1].EntryID])
	suite.Equal("2024/1", assigned[entries[2].EntryID])
	suite.Equal("2024/1", assigned[entries[3].EntryID])
	suite.Equal("2024/2", assigned[entries[4].EntryID])

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *NumberingServiceTestSuite) TestBackfill_NothingToDo() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindUnnumberedEntries", ctx).Return([]domain.LedgerEntry{}, nil).Once()

	count, err := suite.service.BackfillJournalNumbers(ctx)

	suite.Require().NoError(err)
	suite.Zero(count)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *NumberingServiceTestSuite) TestBackfill_StopsOnFirstFailure() {
	ctx := context.Background()
	companyID := uuid.NewString()
	entries := []domain.LedgerEntry{
		unnumberedEntry(companyID, domain.JournalBank, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		unnumberedEntry(companyID, domain.JournalBank, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	}

	suite.mockLedgerRepo.On("FindUnnumberedEntries", ctx).Return(entries, nil).Once()
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil)
	suite.mockLedgerRepo.On("AssignJournalNumber", ctx, nil, entries[0].EntryID, "2024/1", mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("AssignJournalNumber", ctx, nil, entries[1].EntryID, "2024/2", mock.Anything).Return(assert.AnError).Once()
	suite.mockLedgerRepo.On("Commit", ctx, nil).Return(nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, nil).Return(nil)

	count, err := suite.service.BackfillJournalNumbers(ctx)

	suite.Require().Error(err)
	// the first assignment committed before the failure; rerunning resumes
	suite.Equal(1, count)
	suite.Contains(err.Error(), entries[1].EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestNumberingService(t *testing.T) {
	suite.Run(t, new(NumberingServiceTestSuite))
}

// The allocator contract: concurrent callers on the same (company, type,
// year) key must each get a distinct value, ending exactly at the total
// number of allocations.
func TestCounterAllocation_ConcurrentCallersGetUniqueValues(t *testing.T) {
	counterRepo := newFakeCounterRepo()
	ctx := context.Background()
	companyID := uuid.NewString()

	const workers = 16
	const perWorker = 50

	values := make(chan int64, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				value, err := counterRepo.NextValue(ctx, nil, companyID, domain.JournalSales, 2024)
				assert.NoError(t, err)
				values <- value
			}
		}()
	}
	wg.Wait()
	close(values)

	seen := make(map[int64]bool, workers*perWorker)
	for value := range values {
		assert.False(t, seen[value], "value %d handed out twice", value)
		seen[value] = true
	}
	assert.Len(t, seen, workers*perWorker)

	current, err := counterRepo.CurrentValue(ctx, companyID, domain.JournalSales, 2024)
	assert.NoError(t, err)
	assert.EqualValues(t, workers*perWorker, current)
}
