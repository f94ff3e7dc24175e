package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/lock"
	"library-lending-backend/internal/service"
	"library-lending-backend/internal/utils"
)

type lendingFixture struct {
	loanRepo   *MockLoanRepo
	bookRepo   *MockBookRepo
	memberRepo *MockMemberRepo
	rulesRepo  *MockRulesRepo
	clock      *utils.FixedClock
	svc        service.LendingService
}

func newLendingFixture(now time.Time) *lendingFixture {
	f := &lendingFixture{
		loanRepo:   new(MockLoanRepo),
		bookRepo:   new(MockBookRepo),
		memberRepo: new(MockMemberRepo),
		rulesRepo:  new(MockRulesRepo),
		clock:      utils.NewFixedClock(now),
	}
	f.svc = service.NewLendingService(f.loanRepo, f.bookRepo, f.memberRepo, f.rulesRepo,
		f.clock, utils.NewSequenceGenerator("loan"), lock.NewKeyed())
	return f
}

func standardRules() *domain.BorrowingRules {
	return &domain.BorrowingRules{LoanDurationDays: 14, MaxBorrowingLimit: 3, FinePerDay: decimal.NewFromInt(1)}
}

func openLoans(n int) []domain.Loan {
	loans := make([]domain.Loan, n)
	for i := range loans {
		loans[i] = domain.Loan{ID: "existing", MemberID: "m1"}
	}
	return loans
}

func TestLendingService_Borrow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	member := &domain.Member{ID: "m1", Name: "Ada"}
	available := &domain.Book{ISBN: "978-1", Title: "Dune", IsAvailable: true}

	t.Run("Success", func(t *testing.T) {
		f := newLendingFixture(now)
		f.memberRepo.On("GetByID", ctx, "m1").Return(member, nil)
		f.bookRepo.On("GetByISBN", ctx, "978-1").Return(available, nil)
		f.rulesRepo.On("GetRules", ctx).Return(standardRules(), nil)
		f.loanRepo.On("ListOpenByMember", ctx, "m1").Return(openLoans(0), nil)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", false).Return(nil)
		f.loanRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.Loan) bool {
			return l.ID == "loan-1" && l.MemberID == "m1" && l.BookISBN == "978-1" && l.IsOpen()
		})).Return(nil)

		loan, err := f.svc.Borrow(ctx, "m1", "978-1")
		require.NoError(t, err)
		assert.Equal(t, now, loan.BorrowedAt)
		assert.Equal(t, now.AddDate(0, 0, 14), loan.DueAt)
		assert.Nil(t, loan.ReturnedAt)
		f.bookRepo.AssertExpectations(t)
		f.loanRepo.AssertExpectations(t)
	})

	t.Run("Member Not Found", func(t *testing.T) {
		f := newLendingFixture(now)
		f.memberRepo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrMemberNotFound)

		_, err := f.svc.Borrow(ctx, "ghost", "978-1")
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "ghost")
		f.bookRepo.AssertNotCalled(t, "GetByISBN", mock.Anything, mock.Anything)
	})

	t.Run("Book Not Found", func(t *testing.T) {
		f := newLendingFixture(now)
		f.memberRepo.On("GetByID", ctx, "m1").Return(member, nil)
		f.bookRepo.On("GetByISBN", ctx, "000").Return(nil, domain.ErrBookNotFound)

		_, err := f.svc.Borrow(ctx, "m1", "000")
		assert.ErrorIs(t, err, domain.ErrBookNotFound)
		assert.Contains(t, err.Error(), "000")
	})

	t.Run("Book Unavailable", func(t *testing.T) {
		f := newLendingFixture(now)
		f.memberRepo.On("GetByID", ctx, "m1").Return(member, nil)
		f.bookRepo.On("GetByISBN", ctx, "978-1").Return(&domain.Book{ISBN: "978-1", IsAvailable: false}, nil)

		_, err := f.svc.Borrow(ctx, "m1", "978-1")
		assert.ErrorIs(t, err, domain.ErrBookUnavailable)
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
		f.loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.bookRepo.AssertNotCalled(t, "UpdateAvailability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("At Limit", func(t *testing.T) {
		f := newLendingFixture(now)
		f.memberRepo.On("GetByID", ctx, "m1").Return(member, nil)
		f.bookRepo.On("GetByISBN", ctx, "978-2").Return(&domain.Book{ISBN: "978-2", IsAvailable: true}, nil)
		f.rulesRepo.On("GetRules", ctx).Return(standardRules(), nil)
		f.loanRepo.On("ListOpenByMember", ctx, "m1").Return(openLoans(3), nil)

		_, err := f.svc.Borrow(ctx, "m1", "978-2")
		assert.ErrorIs(t, err, domain.ErrBorrowingLimitExceeded)
		f.loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Below Limit", func(t *testing.T) {
		f := newLendingFixture(now)
		f.memberRepo.On("GetByID", ctx, "m1").Return(member, nil)
		f.bookRepo.On("GetByISBN", ctx, "978-2").Return(&domain.Book{ISBN: "978-2", IsAvailable: true}, nil)
		f.rulesRepo.On("GetRules", ctx).Return(standardRules(), nil)
		f.loanRepo.On("ListOpenByMember", ctx, "m1").Return(openLoans(2), nil)
		f.bookRepo.On("UpdateAvailability", ctx, "978-2", false).Return(nil)
		f.loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)

		_, err := f.svc.Borrow(ctx, "m1", "978-2")
		assert.NoError(t, err)
	})

	t.Run("Lost Availability Race", func(t *testing.T) {
		f := newLendingFixture(now)
		f.memberRepo.On("GetByID", ctx, "m1").Return(member, nil)
		f.bookRepo.On("GetByISBN", ctx, "978-1").Return(available, nil)
		f.rulesRepo.On("GetRules", ctx).Return(standardRules(), nil)
		f.loanRepo.On("ListOpenByMember", ctx, "m1").Return(openLoans(0), nil)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", false).Return(domain.ErrAvailabilityConflict)

		_, err := f.svc.Borrow(ctx, "m1", "978-1")
		assert.ErrorIs(t, err, domain.ErrBookUnavailable)
		f.loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Ledger Failure Restores Availability", func(t *testing.T) {
		f := newLendingFixture(now)
		dbErr := errors.New("connection reset")
		f.memberRepo.On("GetByID", ctx, "m1").Return(member, nil)
		f.bookRepo.On("GetByISBN", ctx, "978-1").Return(available, nil)
		f.rulesRepo.On("GetRules", ctx).Return(standardRules(), nil)
		f.loanRepo.On("ListOpenByMember", ctx, "m1").Return(openLoans(0), nil)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", false).Return(nil)
		f.loanRepo.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(dbErr)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", true).Return(nil)

		_, err := f.svc.Borrow(ctx, "m1", "978-1")
		assert.ErrorIs(t, err, dbErr)
		f.bookRepo.AssertCalled(t, "UpdateAvailability", ctx, "978-1", true)
	})

	t.Run("Rules Failure Propagates", func(t *testing.T) {
		f := newLendingFixture(now)
		dbErr := errors.New("rules table missing")
		f.memberRepo.On("GetByID", ctx, "m1").Return(member, nil)
		f.bookRepo.On("GetByISBN", ctx, "978-1").Return(available, nil)
		f.rulesRepo.On("GetRules", ctx).Return(nil, dbErr)

		_, err := f.svc.Borrow(ctx, "m1", "978-1")
		assert.ErrorIs(t, err, dbErr)
		f.bookRepo.AssertNotCalled(t, "UpdateAvailability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Member Lookup Failure Is Not Not-Found", func(t *testing.T) {
		f := newLendingFixture(now)
		dbErr := errors.New("timeout")
		f.memberRepo.On("GetByID", ctx, "m1").Return(nil, dbErr)

		_, err := f.svc.Borrow(ctx, "m1", "978-1")
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLendingService_ReturnLoan(t *testing.T) {
	ctx := context.Background()
	borrowed := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	openLoan := func() *domain.Loan {
		return domain.NewLoan("loan-7", "m1", "978-1", borrowed, 14)
	}
	isTwo := mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(2)) })

	t.Run("Late Return Is Fined", func(t *testing.T) {
		returnedAt := borrowed.AddDate(0, 0, 16)
		f := newLendingFixture(returnedAt)
		f.loanRepo.On("GetByID", ctx, "loan-7").Return(openLoan(), nil)
		f.rulesRepo.On("GetRules", ctx).Return(standardRules(), nil)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", true).Return(nil)
		f.loanRepo.On("Close", ctx, "loan-7", returnedAt, isTwo).Return(nil)

		fine, err := f.svc.ReturnLoan(ctx, "loan-7")
		require.NoError(t, err)
		assert.Equal(t, "2", fine.String())
		f.loanRepo.AssertExpectations(t)
	})

	t.Run("On Time Return Is Free", func(t *testing.T) {
		returnedAt := borrowed.AddDate(0, 0, 14)
		f := newLendingFixture(returnedAt)
		f.loanRepo.On("GetByID", ctx, "loan-7").Return(openLoan(), nil)
		f.rulesRepo.On("GetRules", ctx).Return(standardRules(), nil)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", true).Return(nil)
		f.loanRepo.On("Close", ctx, "loan-7", returnedAt, mock.Anything).Return(nil)

		fine, err := f.svc.ReturnLoan(ctx, "loan-7")
		require.NoError(t, err)
		assert.True(t, fine.IsZero())
	})

	t.Run("Loan Not Found", func(t *testing.T) {
		f := newLendingFixture(borrowed)
		f.loanRepo.On("GetByID", ctx, "nope").Return(nil, domain.ErrLoanNotFound)

		_, err := f.svc.ReturnLoan(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("Already Closed", func(t *testing.T) {
		f := newLendingFixture(borrowed)
		closed := openLoan()
		returnedAt := borrowed.AddDate(0, 0, 3)
		closed.ReturnedAt = &returnedAt
		f.loanRepo.On("GetByID", ctx, "loan-7").Return(closed, nil)

		_, err := f.svc.ReturnLoan(ctx, "loan-7")
		assert.ErrorIs(t, err, domain.ErrLoanAlreadyClosed)
		f.bookRepo.AssertNotCalled(t, "UpdateAvailability", mock.Anything, mock.Anything, mock.Anything)
		f.loanRepo.AssertNotCalled(t, "Close", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Close Failure Restores Availability", func(t *testing.T) {
		returnedAt := borrowed.AddDate(0, 0, 16)
		f := newLendingFixture(returnedAt)
		dbErr := errors.New("disk full")
		f.loanRepo.On("GetByID", ctx, "loan-7").Return(openLoan(), nil)
		f.rulesRepo.On("GetRules", ctx).Return(standardRules(), nil)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", true).Return(nil)
		f.loanRepo.On("Close", ctx, "loan-7", returnedAt, isTwo).Return(dbErr)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", false).Return(nil)

		_, err := f.svc.ReturnLoan(ctx, "loan-7")
		assert.ErrorIs(t, err, dbErr)
		f.bookRepo.AssertCalled(t, "UpdateAvailability", ctx, "978-1", false)
	})

	t.Run("Book Already Available Still Closes", func(t *testing.T) {
		returnedAt := borrowed.AddDate(0, 0, 1)
		f := newLendingFixture(returnedAt)
		f.loanRepo.On("GetByID", ctx, "loan-7").Return(openLoan(), nil)
		f.rulesRepo.On("GetRules", ctx).Return(standardRules(), nil)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", true).Return(domain.ErrAvailabilityConflict)
		f.loanRepo.On("Close", ctx, "loan-7", returnedAt, mock.Anything).Return(nil)

		_, err := f.svc.ReturnLoan(ctx, "loan-7")
		assert.NoError(t, err)
		f.loanRepo.AssertCalled(t, "Close", ctx, "loan-7", returnedAt, mock.Anything)
	})

	t.Run("Concurrent Close Reported", func(t *testing.T) {
		returnedAt := borrowed.AddDate(0, 0, 2)
		f := newLendingFixture(returnedAt)
		f.loanRepo.On("GetByID", ctx, "loan-7").Return(openLoan(), nil)
		f.rulesRepo.On("GetRules", ctx).Return(standardRules(), nil)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", true).Return(nil)
		f.loanRepo.On("Close", ctx, "loan-7", returnedAt, mock.Anything).Return(domain.ErrLoanAlreadyClosed)
		f.bookRepo.On("UpdateAvailability", ctx, "978-1", false).Return(nil)

		_, err := f.svc.ReturnLoan(ctx, "loan-7")
		assert.ErrorIs(t, err, domain.ErrLoanAlreadyClosed)
	})
}

func TestLendingService_Queries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Overdue uses clock", func(t *testing.T) {
		f := newLendingFixture(now)
		expected := []domain.Loan{{ID: "l1"}}
		f.loanRepo.On("ListOverdue", ctx, now).Return(expected, nil)

		loans, err := f.svc.GetOverdueLoans(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, loans)
	})

	t.Run("Open loans for member", func(t *testing.T) {
		f := newLendingFixture(now)
		f.loanRepo.On("ListOpenByMember", ctx, "m1").Return(openLoans(2), nil)

		loans, err := f.svc.GetOpenLoansForMember(ctx, "m1")
		require.NoError(t, err)
		assert.Len(t, loans, 2)
	})
}
