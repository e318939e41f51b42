package accounting

import (
	"fmt"

	"github.com/neacisu/geniuserp-ledger/internal/apperrors"
	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum accepted |debits - credits| difference,
// covering rounding residue from VAT and currency conversion (0.01).
var BalanceTolerance = decimal.New(1, -2)

// ValidateEntryBalance checks the double-entry invariant for a candidate
// ledger entry: the debit lines must sum to the credit lines within
// BalanceTolerance. Pure function, no I/O; called before any persistence.
func ValidateEntryBalance(lines []domain.LedgerLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: a ledger entry needs at least two lines", apperrors.ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero

	for _, line := range lines {
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("%w: line amounts must not be negative for account %s", apperrors.ErrValidation, line.AccountID)
		}
		if line.DebitAmount.IsPositive() && line.CreditAmount.IsPositive() {
			return fmt.Errorf("%w: line for account %s sets both debit and credit", apperrors.ErrValidation, line.AccountID)
		}
		if line.DebitAmount.IsZero() && line.CreditAmount.IsZero() {
			return fmt.Errorf("%w: line for account %s has no amount", apperrors.ErrValidation, line.AccountID)
		}
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}

	if debits.Sub(credits).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}

	return nil
}

// EntryAmount computes the economic value of a balanced entry: the sum of
// its debit side.
func EntryAmount(lines []domain.LedgerLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.DebitAmount)
	}
	return total
}
