package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusOpen   LoanStatus = "OPEN"
	LoanStatusClosed LoanStatus = "CLOSED"
)

// Loan is one book lent to one member. It is open until ReturnedAt is set,
// and a closed loan never changes again.
type Loan struct {
	ID         string          `json:"id" db:"id"`
	MemberID   string          `json:"member_id" db:"member_id"`
	BookISBN   string          `json:"book_isbn" db:"book_isbn"`
	BorrowedAt time.Time       `json:"borrowed_at" db:"borrowed_at"`
	DueAt      time.Time       `json:"due_at" db:"due_at"`
	ReturnedAt *time.Time      `json:"returned_at,omitempty" db:"returned_at"`
	FineAmount decimal.Decimal `json:"fine_amount" db:"fine_amount"`
}

// NewLoan builds an open loan whose due date is fixed at creation time.
func NewLoan(id, memberID, isbn string, borrowedAt time.Time, loanDurationDays int) *Loan {
	return &Loan{
		ID:         id,
		MemberID:   memberID,
		BookISBN:   isbn,
		BorrowedAt: borrowedAt,
		DueAt:      borrowedAt.AddDate(0, 0, loanDurationDays),
		FineAmount: decimal.Zero,
	}
}

func (l *Loan) IsOpen() bool {
	return l.ReturnedAt == nil
}

func (l *Loan) Status() LoanStatus {
	if l.IsOpen() {
		return LoanStatusOpen
	}
	return LoanStatusClosed
}

// IsOverdue reports whether the loan is open and its due time is strictly
// before asOf.
func (l *Loan) IsOverdue(asOf time.Time) bool {
	return l.IsOpen() && l.DueAt.Before(asOf)
}
