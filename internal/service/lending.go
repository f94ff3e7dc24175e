package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/lock"
	"library-lending-backend/internal/logger"
	"library-lending-backend/internal/repository"
	"library-lending-backend/internal/utils"
)

type lendingService struct {
	loanRepo   repository.LoanRepository
	bookRepo   repository.BookRepository
	memberRepo repository.MemberRepository
	rulesRepo  repository.RulesRepository
	clock      utils.Clock
	ids        utils.IDGenerator
	locks      lock.Locker
}

func NewLendingService(
	loanRepo repository.LoanRepository,
	bookRepo repository.BookRepository,
	memberRepo repository.MemberRepository,
	rulesRepo repository.RulesRepository,
	clock utils.Clock,
	ids utils.IDGenerator,
	locks lock.Locker,
) LendingService {
	return &lendingService{
		loanRepo:   loanRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		rulesRepo:  rulesRepo,
		clock:      clock,
		ids:        ids,
		locks:      locks,
	}
}

// Borrow lends the book to the member. The member and book are locked for
// the whole check-then-write sequence.
func (s *lendingService) Borrow(ctx context.Context, memberID, isbn string) (*domain.Loan, error) {
	logger.EnterMethod("lendingService.Borrow", "memberID", memberID, "isbn", isbn)

	unlock := s.locks.Lock(lock.MemberKey(memberID), lock.BookKey(isbn))
	defer unlock()
	now := s.clock.Now()

	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, s.fail("lendingService.Borrow", lookupError(err, domain.ErrMemberNotFound, memberID))
	}

	book, err := s.bookRepo.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, s.fail("lendingService.Borrow", lookupError(err, domain.ErrBookNotFound, isbn))
	}
	if !book.IsAvailable {
		return nil, s.fail("lendingService.Borrow", fmt.Errorf("%w: %s", domain.ErrBookUnavailable, isbn))
	}

	rules, err := s.rulesRepo.GetRules(ctx)
	if err != nil {
		return nil, s.fail("lendingService.Borrow", err)
	}

	open, err := s.loanRepo.ListOpenByMember(ctx, memberID)
	if err != nil {
		return nil, s.fail("lendingService.Borrow", err)
	}
	if len(open) >= rules.MaxBorrowingLimit {
		return nil, s.fail("lendingService.Borrow", fmt.Errorf("%w: member %s has %d of %d loans open",
			domain.ErrBorrowingLimitExceeded, memberID, len(open), rules.MaxBorrowingLimit))
	}

	loan := domain.NewLoan(s.ids.NewID(), memberID, isbn, now, rules.LoanDurationDays)

	// The availability flip is conditional, so it doubles as the guard
	// against another process lending the same book.
	if err := s.bookRepo.UpdateAvailability(ctx, isbn, false); err != nil {
		if errors.Is(err, domain.ErrAvailabilityConflict) {
			err = fmt.Errorf("%w: %s", domain.ErrBookUnavailable, isbn)
		}
		return nil, s.fail("lendingService.Borrow", err)
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		if rbErr := s.bookRepo.UpdateAvailability(ctx, isbn, true); rbErr != nil {
			logger.Error("Failed to restore book availability after loan create failure",
				"isbn", isbn, "loanID", loan.ID, "error", rbErr)
			err = errors.Join(err, rbErr)
		}
		return nil, s.fail("lendingService.Borrow", err)
	}

	logger.ExitMethod("lendingService.Borrow", "loanID", loan.ID, "dueAt", loan.DueAt)
	return loan, nil
}

// ReturnLoan closes the loan and returns the fine owed for it. The fine is
// stored on the loan in the same write as the return time.
func (s *lendingService) ReturnLoan(ctx context.Context, loanID string) (decimal.Decimal, error) {
	logger.EnterMethod("lendingService.ReturnLoan", "loanID", loanID)

	unlockLoan := s.locks.Lock(lock.LoanKey(loanID))
	defer unlockLoan()

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return decimal.Zero, s.fail("lendingService.ReturnLoan", lookupError(err, domain.ErrLoanNotFound, loanID))
	}
	if !loan.IsOpen() {
		return decimal.Zero, s.fail("lendingService.ReturnLoan", fmt.Errorf("%w: %s", domain.ErrLoanAlreadyClosed, loanID))
	}

	unlockBook := s.locks.Lock(lock.BookKey(loan.BookISBN))
	defer unlockBook()
	now := s.clock.Now()

	rules, err := s.rulesRepo.GetRules(ctx)
	if err != nil {
		return decimal.Zero, s.fail("lendingService.ReturnLoan", err)
	}
	fine := utils.CalculateFine(loan.DueAt, now, rules.FinePerDay)

	flipped := true
	if err := s.bookRepo.UpdateAvailability(ctx, loan.BookISBN, true); err != nil {
		if !errors.Is(err, domain.ErrAvailabilityConflict) {
			return decimal.Zero, s.fail("lendingService.ReturnLoan", err)
		}
		// Already available: nothing to restore if the close fails.
		logger.Warn("Book was already available at return", "isbn", loan.BookISBN, "loanID", loanID)
		flipped = false
	}

	if err := s.loanRepo.Close(ctx, loanID, now, fine); err != nil {
		if flipped {
			if rbErr := s.bookRepo.UpdateAvailability(ctx, loan.BookISBN, false); rbErr != nil {
				logger.Error("Failed to restore book availability after loan close failure",
					"isbn", loan.BookISBN, "loanID", loanID, "error", rbErr)
				err = errors.Join(err, rbErr)
			}
		}
		return decimal.Zero, s.fail("lendingService.ReturnLoan", err)
	}

	if fine.IsPositive() {
		logger.Info("Fine assessed on return", "loanID", loanID, "memberID", loan.MemberID, "fine", fine.String())
	}
	logger.ExitMethod("lendingService.ReturnLoan", "loanID", loanID, "fine", fine.String())
	return fine, nil
}

func (s *lendingService) GetOpenLoansForMember(ctx context.Context, memberID string) ([]domain.Loan, error) {
	return s.loanRepo.ListOpenByMember(ctx, memberID)
}

func (s *lendingService) GetOverdueLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.loanRepo.ListOverdue(ctx, s.clock.Now())
}

func (s *lendingService) fail(method string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrPreconditionFailed) {
		logger.RejectMethod(method, err)
	} else {
		logger.ExitMethodWithError(method, err)
	}
	return err
}

// lookupError attaches the identifier to a bare not-found sentinel. Errors
// that already carry context pass through unchanged.
func lookupError(err, kind error, id string) error {
	if err == kind {
		return fmt.Errorf("%w: %s", kind, id)
	}
	return err
}
