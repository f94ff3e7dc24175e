package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"library-lending-backend/internal/domain"
)

// Lookups return the matching domain.ErrXxxNotFound when the record is absent.

type BookRepository interface {
	Add(ctx context.Context, book *domain.Book) error
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, isbn string) error
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	GetAll(ctx context.Context) ([]domain.Book, error)

	// UpdateAvailability is a conditional write: it fails with
	// domain.ErrAvailabilityConflict when the flag already equals available.
	UpdateAvailability(ctx context.Context, isbn string, available bool) error
}

type MemberRepository interface {
	Add(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetAll(ctx context.Context) ([]domain.Member, error)
}

type LibrarianRepository interface {
	Add(ctx context.Context, librarian *domain.Librarian) error
	Update(ctx context.Context, librarian *domain.Librarian) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Librarian, error)
	GetAll(ctx context.Context) ([]domain.Librarian, error)
}

type LibraryRepository interface {
	Add(ctx context.Context, library *domain.Library) error
	Update(ctx context.Context, library *domain.Library) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Library, error)
	GetAll(ctx context.Context) ([]domain.Library, error)
}

// LoanRepository is the loan ledger.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	// Close records the return time and fine of an open loan. It fails with
	// domain.ErrLoanAlreadyClosed if the loan was closed in the meantime.
	Close(ctx context.Context, id string, returnedAt time.Time, fine decimal.Decimal) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	ListOpenByMember(ctx context.Context, memberID string) ([]domain.Loan, error)
	// ListOverdue returns open loans with a due time strictly before asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Loan, error)
}

type RulesRepository interface {
	GetRules(ctx context.Context) (*domain.BorrowingRules, error)
	UpdateRules(ctx context.Context, rules *domain.BorrowingRules) error
}
