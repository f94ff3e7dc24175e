package service

import (
	"context"
	"fmt"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
	"library-lending-backend/internal/utils"
)

type librarianService struct {
	librarianRepo repository.LibrarianRepository
	libraryRepo   repository.LibraryRepository
	clock         utils.Clock
	ids           utils.IDGenerator
}

func NewLibrarianService(
	librarianRepo repository.LibrarianRepository,
	libraryRepo repository.LibraryRepository,
	clock utils.Clock,
	ids utils.IDGenerator,
) LibrarianService {
	return &librarianService{
		librarianRepo: librarianRepo,
		libraryRepo:   libraryRepo,
		clock:         clock,
		ids:           ids,
	}
}

// AddLibrarian registers staff; the library they work at must exist.
func (s *librarianService) AddLibrarian(ctx context.Context, librarian *domain.Librarian) error {
	if librarian.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if _, err := s.libraryRepo.GetByID(ctx, librarian.LibraryID); err != nil {
		return err
	}
	if librarian.ID == "" {
		librarian.ID = s.ids.NewID()
	}
	librarian.CreatedOn = s.clock.Now()
	return s.librarianRepo.Add(ctx, librarian)
}

func (s *librarianService) UpdateLibrarian(ctx context.Context, librarian *domain.Librarian) error {
	existing, err := s.librarianRepo.GetByID(ctx, librarian.ID)
	if err != nil {
		return err
	}
	if librarian.LibraryID != existing.LibraryID {
		if _, err := s.libraryRepo.GetByID(ctx, librarian.LibraryID); err != nil {
			return err
		}
	}
	librarian.CreatedOn = existing.CreatedOn
	return s.librarianRepo.Update(ctx, librarian)
}

func (s *librarianService) DeleteLibrarian(ctx context.Context, id string) error {
	return s.librarianRepo.Delete(ctx, id)
}

func (s *librarianService) GetLibrarian(ctx context.Context, id string) (*domain.Librarian, error) {
	return s.librarianRepo.GetByID(ctx, id)
}

func (s *librarianService) ListLibrarians(ctx context.Context) ([]domain.Librarian, error) {
	return s.librarianRepo.GetAll(ctx)
}
