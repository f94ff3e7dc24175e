package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type bookRepository struct {
	mu    sync.RWMutex
	books map[string]domain.Book
}

func NewBookRepository() repository.BookRepository {
	return &bookRepository{books: make(map[string]domain.Book)}
}

func (r *bookRepository) Add(ctx context.Context, b *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ISBN]; ok {
		return fmt.Errorf("%w: %s", domain.ErrBookAlreadyExists, b.ISBN)
	}
	r.books[b.ISBN] = *b
	return nil
}

func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ISBN]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrBookNotFound, b.ISBN)
	}
	r.books[b.ISBN] = *b
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, isbn string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[isbn]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrBookNotFound, isbn)
	}
	if !b.IsAvailable {
		return fmt.Errorf("%w: %s", domain.ErrBookOnLoan, isbn)
	}
	delete(r.books, isbn)
	return nil
}

func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[isbn]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBookNotFound, isbn)
	}
	return &b, nil
}

func (r *bookRepository) GetAll(ctx context.Context) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	books := make([]domain.Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ISBN < books[j].ISBN })
	return books, nil
}

func (r *bookRepository) UpdateAvailability(ctx context.Context, isbn string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[isbn]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrBookNotFound, isbn)
	}
	if b.IsAvailable == available {
		return fmt.Errorf("%w: %s", domain.ErrAvailabilityConflict, isbn)
	}
	b.IsAvailable = available
	r.books[isbn] = b
	return nil
}
