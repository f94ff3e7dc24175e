package domain

import (
	"errors"
	"fmt"
)

// Error families. Every specific error below wraps exactly one of these so
// callers can classify with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyExists      = errors.New("already exists")
)

// Lookup errors
var (
	ErrMemberNotFound    = fmt.Errorf("member %w", ErrNotFound)
	ErrBookNotFound      = fmt.Errorf("book %w", ErrNotFound)
	ErrLoanNotFound      = fmt.Errorf("loan %w", ErrNotFound)
	ErrLibrarianNotFound = fmt.Errorf("librarian %w", ErrNotFound)
	ErrLibraryNotFound   = fmt.Errorf("library %w", ErrNotFound)
)

// Lending rule violations
var (
	ErrBookUnavailable        = fmt.Errorf("%w: book is currently unavailable", ErrPreconditionFailed)
	ErrBorrowingLimitExceeded = fmt.Errorf("%w: borrowing limit exceeded", ErrPreconditionFailed)
	ErrLoanAlreadyClosed      = fmt.Errorf("%w: loan already returned", ErrPreconditionFailed)
	ErrBookOnLoan             = fmt.Errorf("%w: book is on loan", ErrPreconditionFailed)
)

var (
	ErrBookAlreadyExists      = fmt.Errorf("book %w", ErrAlreadyExists)
	ErrMemberAlreadyExists    = fmt.Errorf("member %w", ErrAlreadyExists)
	ErrLibrarianAlreadyExists = fmt.Errorf("librarian %w", ErrAlreadyExists)
	ErrLibraryAlreadyExists   = fmt.Errorf("library %w", ErrAlreadyExists)
	ErrLoanAlreadyExists      = fmt.Errorf("loan %w", ErrAlreadyExists)
)

// ErrAvailabilityConflict is returned by a catalog when a conditional
// availability write finds the flag already at the requested value.
var ErrAvailabilityConflict = errors.New("book availability already set")
