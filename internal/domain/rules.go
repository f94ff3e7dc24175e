package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places stored for amounts of money.
const MoneyScale = 2

// BorrowingRules is the lending policy. It is read fresh on every borrow and
// return, so an update applies from the next operation on.
type BorrowingRules struct {
	LoanDurationDays  int             `json:"loan_duration_days" yaml:"loan_duration_days"`
	MaxBorrowingLimit int             `json:"max_borrowing_limit" yaml:"max_borrowing_limit"`
	FinePerDay        decimal.Decimal `json:"fine_per_day" yaml:"fine_per_day"`
}

func (r BorrowingRules) Validate() error {
	if r.LoanDurationDays < 0 {
		return fmt.Errorf("%w: loan duration must not be negative, got %d", ErrInvalidInput, r.LoanDurationDays)
	}
	if r.MaxBorrowingLimit <= 0 {
		return fmt.Errorf("%w: borrowing limit must be positive, got %d", ErrInvalidInput, r.MaxBorrowingLimit)
	}
	if r.FinePerDay.IsNegative() {
		return fmt.Errorf("%w: fine per day must not be negative, got %s", ErrInvalidInput, r.FinePerDay)
	}
	if !r.FinePerDay.Equal(r.FinePerDay.Round(MoneyScale)) {
		return fmt.Errorf("%w: fine per day has more than %d decimal places, got %s", ErrInvalidInput, MoneyScale, r.FinePerDay)
	}
	return nil
}
