package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"library-lending-backend/internal/repository"
	"library-lending-backend/internal/utils"
)

// uniqueViolation is the postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
	repository.BookRepository
	repository.MemberRepository
	repository.LibrarianRepository
	repository.LibraryRepository
	repository.LoanRepository
	repository.RulesRepository
}

// NewStore wires every repository over db. clock stamps the writes whose
// time is not supplied by the caller.
func NewStore(db *sql.DB, clock utils.Clock) *Store {
	return &Store{
		db:                  db,
		BookRepository:      NewBookRepository(db, clock),
		MemberRepository:    NewMemberRepository(db),
		LibrarianRepository: NewLibrarianRepository(db),
		LibraryRepository:   NewLibraryRepository(db),
		LoanRepository:      NewLoanRepository(db),
		RulesRepository:     NewRulesRepository(db, clock),
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// notFoundIfNoRows maps an empty result to the given domain error.
func notFoundIfNoRows(err, kind error, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return wrapID(kind, id)
	}
	return err
}

// requireRow maps zero affected rows to the given domain error.
func requireRow(res sql.Result, kind error, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return wrapID(kind, id)
	}
	return nil
}

func wrapID(kind error, id string) error {
	return fmt.Errorf("%w: %s", kind, id)
}
