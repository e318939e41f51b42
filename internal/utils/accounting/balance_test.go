package accounting_test

import (
	"testing"

	"github.com/neacisu/geniuserp-ledger/internal/apperrors"
	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	"github.com/neacisu/geniuserp-ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func debitLine(account string, amount string) domain.LedgerLine {
	return domain.LedgerLine{
		AccountID:   account,
		DebitAmount: decimal.RequireFromString(amount),
	}
}

func creditLine(account string, amount string) domain.LedgerLine {
	return domain.LedgerLine{
		AccountID:    account,
		CreditAmount: decimal.RequireFromString(amount),
	}
}

func TestValidateEntryBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.LedgerLine
		wantErr error
	}{
		{
			name: "balanced two lines",
			lines: []domain.LedgerLine{
				debitLine("4111", "100.00"),
				creditLine("707", "100.00"),
			},
			wantErr: nil,
		},
		{
			name: "balanced many lines",
			lines: []domain.LedgerLine{
				debitLine("4111", "119.00"),
				creditLine("707", "100.00"),
				creditLine("4427", "19.00"),
			},
			wantErr: nil,
		},
		{
			name: "difference exactly at tolerance",
			lines: []domain.LedgerLine{
				debitLine("4111", "100.01"),
				creditLine("707", "100.00"),
			},
			wantErr: nil,
		},
		{
			name: "difference just over tolerance",
			lines: []domain.LedgerLine{
				debitLine("4111", "100.02"),
				creditLine("707", "100.00"),
			},
			wantErr: apperrors.ErrUnbalancedEntry,
		},
		{
			name: "grossly unbalanced",
			lines: []domain.LedgerLine{
				debitLine("4111", "500.00"),
				creditLine("707", "100.00"),
			},
			wantErr: apperrors.ErrUnbalancedEntry,
		},
		{
			name: "single line",
			lines: []domain.LedgerLine{
				debitLine("4111", "100.00"),
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "no lines",
			lines:   nil,
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "negative amount",
			lines: []domain.LedgerLine{
				debitLine("4111", "-100.00"),
				creditLine("707", "-100.00"),
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "line with both sides set",
			lines: []domain.LedgerLine{
				{AccountID: "4111", DebitAmount: decimal.RequireFromString("50"), CreditAmount: decimal.RequireFromString("50")},
				creditLine("707", "0.00"),
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "line with neither side set",
			lines: []domain.LedgerLine{
				debitLine("4111", "100.00"),
				{AccountID: "707"},
			},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateEntryBalance(tt.lines)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEntryAmount(t *testing.T) {
	lines := []domain.LedgerLine{
		debitLine("4111", "119.00"),
		creditLine("707", "100.00"),
		creditLine("4427", "19.00"),
	}
	assert.True(t, accounting.EntryAmount(lines).Equal(decimal.RequireFromString("119.00")))

	assert.True(t, accounting.EntryAmount(nil).IsZero())
}
