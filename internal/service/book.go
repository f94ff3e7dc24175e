package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/lock"
	"library-lending-backend/internal/repository"
	"library-lending-backend/internal/utils"
)

type bookService struct {
	bookRepo repository.BookRepository
	clock    utils.Clock
	locks    lock.Locker
}

// NewBookService needs the same locks as the lending service so removal
// cannot interleave with a borrow of the same book.
func NewBookService(bookRepo repository.BookRepository, clock utils.Clock, locks lock.Locker) BookService {
	return &bookService{bookRepo: bookRepo, clock: clock, locks: locks}
}

// AddBook puts a new title into the catalog. New books start available.
func (s *bookService) AddBook(ctx context.Context, book *domain.Book) error {
	book.ISBN = strings.TrimSpace(book.ISBN)
	if book.ISBN == "" {
		return fmt.Errorf("%w: isbn is required", domain.ErrInvalidInput)
	}
	if book.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	_, err := s.bookRepo.GetByISBN(ctx, book.ISBN)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", domain.ErrBookAlreadyExists, book.ISBN)
	case !errors.Is(err, domain.ErrBookNotFound):
		return err
	}

	now := s.clock.Now()
	book.IsAvailable = true
	book.CreatedOn = now
	book.UpdatedOn = now
	return s.bookRepo.Add(ctx, book)
}

// UpdateBook edits catalog details. Availability is owned by lending and is
// carried over from the stored record.
func (s *bookService) UpdateBook(ctx context.Context, book *domain.Book) error {
	existing, err := s.bookRepo.GetByISBN(ctx, book.ISBN)
	if err != nil {
		return err
	}
	book.IsAvailable = existing.IsAvailable
	book.CreatedOn = existing.CreatedOn
	book.UpdatedOn = s.clock.Now()
	return s.bookRepo.Update(ctx, book)
}

// RemoveBook refuses a book that is out on loan, otherwise the loan could
// never be returned.
func (s *bookService) RemoveBook(ctx context.Context, isbn string) error {
	unlock := s.locks.Lock(lock.BookKey(isbn))
	defer unlock()

	existing, err := s.bookRepo.GetByISBN(ctx, isbn)
	if err != nil {
		return err
	}
	if !existing.IsAvailable {
		return fmt.Errorf("%w: %s", domain.ErrBookOnLoan, isbn)
	}
	return s.bookRepo.Delete(ctx, isbn)
}

func (s *bookService) GetBook(ctx context.Context, isbn string) (*domain.Book, error) {
	return s.bookRepo.GetByISBN(ctx, isbn)
}

func (s *bookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.bookRepo.GetAll(ctx)
}
