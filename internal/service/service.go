package service

import (
	"context"

	"github.com/shopspring/decimal"

	"library-lending-backend/internal/domain"
)

type LendingService interface {
	Borrow(ctx context.Context, memberID, isbn string) (*domain.Loan, error)
	ReturnLoan(ctx context.Context, loanID string) (decimal.Decimal, error)
	GetOpenLoansForMember(ctx context.Context, memberID string) ([]domain.Loan, error)
	GetOverdueLoans(ctx context.Context) ([]domain.Loan, error)
}

type RulesService interface {
	GetRules(ctx context.Context) (*domain.BorrowingRules, error)
	UpdateRules(ctx context.Context, rules *domain.BorrowingRules) error
}

type BookService interface {
	AddBook(ctx context.Context, book *domain.Book) error
	UpdateBook(ctx context.Context, book *domain.Book) error
	RemoveBook(ctx context.Context, isbn string) error
	GetBook(ctx context.Context, isbn string) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
}

type MemberService interface {
	AddMember(ctx context.Context, member *domain.Member) error
	UpdateMember(ctx context.Context, member *domain.Member) error
	DeleteMember(ctx context.Context, id string) error
	GetMember(ctx context.Context, id string) (*domain.Member, error)
	ListMembers(ctx context.Context) ([]domain.Member, error)
}

type LibrarianService interface {
	AddLibrarian(ctx context.Context, librarian *domain.Librarian) error
	UpdateLibrarian(ctx context.Context, librarian *domain.Librarian) error
	DeleteLibrarian(ctx context.Context, id string) error
	GetLibrarian(ctx context.Context, id string) (*domain.Librarian, error)
	ListLibrarians(ctx context.Context) ([]domain.Librarian, error)
}

type LibraryService interface {
	AddLibrary(ctx context.Context, library *domain.Library) error
	UpdateLibrary(ctx context.Context, library *domain.Library) error
	DeleteLibrary(ctx context.Context, id string) error
	GetLibrary(ctx context.Context, id string) (*domain.Library, error)
	ListLibraries(ctx context.Context) ([]domain.Library, error)
}
