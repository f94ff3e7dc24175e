package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type libraryRepository struct {
	mu        sync.RWMutex
	libraries map[string]domain.Library
}

func NewLibraryRepository() repository.LibraryRepository {
	return &libraryRepository{libraries: make(map[string]domain.Library)}
}

func (r *libraryRepository) Add(ctx context.Context, l *domain.Library) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.libraries[l.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrLibraryAlreadyExists, l.ID)
	}
	r.libraries[l.ID] = *l
	return nil
}

func (r *libraryRepository) Update(ctx context.Context, l *domain.Library) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.libraries[l.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrLibraryNotFound, l.ID)
	}
	r.libraries[l.ID] = *l
	return nil
}

func (r *libraryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.libraries[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrLibraryNotFound, id)
	}
	delete(r.libraries, id)
	return nil
}

func (r *libraryRepository) GetByID(ctx context.Context, id string) (*domain.Library, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.libraries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLibraryNotFound, id)
	}
	return &l, nil
}

func (r *libraryRepository) GetAll(ctx context.Context) ([]domain.Library, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	libraries := make([]domain.Library, 0, len(r.libraries))
	for _, l := range r.libraries {
		libraries = append(libraries, l)
	}
	sort.Slice(libraries, func(i, j int) bool { return libraries[i].ID < libraries[j].ID })
	return libraries, nil
}
