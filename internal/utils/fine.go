package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// DaysLate returns the number of started days between dueAt and returnedAt.
// Any partial day counts as a full day. A return at or before the due time
// is zero days late.
func DaysLate(dueAt, returnedAt time.Time) int64 {
	if !returnedAt.After(dueAt) {
		return 0
	}
	late := returnedAt.Sub(dueAt)
	days := int64(late / day)
	if late%day != 0 {
		days++
	}
	return days
}

// CalculateFine returns DaysLate(dueAt, returnedAt) * finePerDay.
func CalculateFine(dueAt, returnedAt time.Time, finePerDay decimal.Decimal) decimal.Decimal {
	days := DaysLate(dueAt, returnedAt)
	if days == 0 {
		return decimal.Zero
	}
	return finePerDay.Mul(decimal.NewFromInt(days))
}
