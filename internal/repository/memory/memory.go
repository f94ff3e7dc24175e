// Package memory holds map-backed repositories for local runs and tests.
package memory

import (
	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type Store struct {
	repository.BookRepository
	repository.MemberRepository
	repository.LibrarianRepository
	repository.LibraryRepository
	repository.LoanRepository
	repository.RulesRepository
}

func NewStore(initialRules domain.BorrowingRules) *Store {
	return &Store{
		BookRepository:      NewBookRepository(),
		MemberRepository:    NewMemberRepository(),
		LibrarianRepository: NewLibrarianRepository(),
		LibraryRepository:   NewLibraryRepository(),
		LoanRepository:      NewLoanRepository(),
		RulesRepository:     NewRulesRepository(initialRules),
	}
}
