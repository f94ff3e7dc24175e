package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type librarianRepository struct {
	mu         sync.RWMutex
	librarians map[string]domain.Librarian
}

func NewLibrarianRepository() repository.LibrarianRepository {
	return &librarianRepository{librarians: make(map[string]domain.Librarian)}
}

func (r *librarianRepository) Add(ctx context.Context, l *domain.Librarian) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.librarians[l.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrLibrarianAlreadyExists, l.ID)
	}
	r.librarians[l.ID] = *l
	return nil
}

func (r *librarianRepository) Update(ctx context.Context, l *domain.Librarian) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.librarians[l.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrLibrarianNotFound, l.ID)
	}
	r.librarians[l.ID] = *l
	return nil
}

func (r *librarianRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.librarians[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrLibrarianNotFound, id)
	}
	delete(r.librarians, id)
	return nil
}

func (r *librarianRepository) GetByID(ctx context.Context, id string) (*domain.Librarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.librarians[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLibrarianNotFound, id)
	}
	return &l, nil
}

func (r *librarianRepository) GetAll(ctx context.Context) ([]domain.Librarian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	librarians := make([]domain.Librarian, 0, len(r.librarians))
	for _, l := range r.librarians {
		librarians = append(librarians, l)
	}
	sort.Slice(librarians, func(i, j int) bool { return librarians[i].ID < librarians[j].ID })
	return librarians, nil
}
