package http

import (
	"time"

	"github.com/shopspring/decimal"

	"library-lending-backend/internal/domain"
)

type LoanResponse struct {
	ID         string     `json:"id"`
	MemberID   string     `json:"member_id"`
	BookISBN   string     `json:"book_isbn"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     string     `json:"status"`
	Fine       string     `json:"fine"`
}

type ReturnResponse struct {
	LoanID string `json:"loan_id"`
	Fine   string `json:"fine"`
}

type RulesResponse struct {
	LoanDurationDays  int    `json:"loan_duration_days"`
	MaxBorrowingLimit int    `json:"max_borrowing_limit"`
	FinePerDay        string `json:"fine_per_day"`
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func MapDomainLoanToResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:         l.ID,
		MemberID:   l.MemberID,
		BookISBN:   l.BookISBN,
		BorrowedAt: l.BorrowedAt,
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
		Status:     string(l.Status()),
		Fine:       formatMoney(l.FineAmount),
	}
}

func MapDomainLoansToResponse(loans []domain.Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		out = append(out, MapDomainLoanToResponse(&loans[i]))
	}
	return out
}

func MapDomainRulesToResponse(r *domain.BorrowingRules) RulesResponse {
	return RulesResponse{
		LoanDurationDays:  r.LoanDurationDays,
		MaxBorrowingLimit: r.MaxBorrowingLimit,
		FinePerDay:        formatMoney(r.FinePerDay),
	}
}
