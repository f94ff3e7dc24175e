package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type loanRepository struct {
	mu    sync.RWMutex
	loans map[string]domain.Loan
}

func NewLoanRepository() repository.LoanRepository {
	return &loanRepository{loans: make(map[string]domain.Loan)}
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loans[l.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrLoanAlreadyExists, l.ID)
	}
	r.loans[l.ID] = copyLoan(*l)
	return nil
}

func (r *loanRepository) Close(ctx context.Context, id string, returnedAt time.Time, fine decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrLoanNotFound, id)
	}
	if !l.IsOpen() {
		return fmt.Errorf("%w: %s", domain.ErrLoanAlreadyClosed, id)
	}
	l.ReturnedAt = &returnedAt
	l.FineAmount = fine
	r.loans[id] = l
	return nil
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.loans[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLoanNotFound, id)
	}
	l = copyLoan(l)
	return &l, nil
}

func (r *loanRepository) ListOpenByMember(ctx context.Context, memberID string) ([]domain.Loan, error) {
	return r.filter(func(l domain.Loan) bool {
		return l.MemberID == memberID && l.IsOpen()
	}), nil
}

func (r *loanRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	return r.filter(func(l domain.Loan) bool {
		return l.IsOverdue(asOf)
	}), nil
}

func (r *loanRepository) filter(keep func(domain.Loan) bool) []domain.Loan {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loans := []domain.Loan{}
	for _, l := range r.loans {
		if keep(l) {
			loans = append(loans, copyLoan(l))
		}
	}
	sort.Slice(loans, func(i, j int) bool {
		if loans[i].DueAt.Equal(loans[j].DueAt) {
			return loans[i].ID < loans[j].ID
		}
		return loans[i].DueAt.Before(loans[j].DueAt)
	})
	return loans
}

// copyLoan detaches ReturnedAt so callers cannot mutate stored state.
func copyLoan(l domain.Loan) domain.Loan {
	if l.ReturnedAt != nil {
		t := *l.ReturnedAt
		l.ReturnedAt = &t
	}
	return l
}
