package service

import (
	"context"
	"fmt"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
	"library-lending-backend/internal/utils"
)

type libraryService struct {
	libraryRepo repository.LibraryRepository
	clock       utils.Clock
	ids         utils.IDGenerator
}

func NewLibraryService(libraryRepo repository.LibraryRepository, clock utils.Clock, ids utils.IDGenerator) LibraryService {
	return &libraryService{libraryRepo: libraryRepo, clock: clock, ids: ids}
}

func (s *libraryService) AddLibrary(ctx context.Context, library *domain.Library) error {
	if library.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if library.ID == "" {
		library.ID = s.ids.NewID()
	}
	library.CreatedOn = s.clock.Now()
	return s.libraryRepo.Add(ctx, library)
}

func (s *libraryService) UpdateLibrary(ctx context.Context, library *domain.Library) error {
	existing, err := s.libraryRepo.GetByID(ctx, library.ID)
	if err != nil {
		return err
	}
	library.CreatedOn = existing.CreatedOn
	return s.libraryRepo.Update(ctx, library)
}

func (s *libraryService) DeleteLibrary(ctx context.Context, id string) error {
	return s.libraryRepo.Delete(ctx, id)
}

func (s *libraryService) GetLibrary(ctx context.Context, id string) (*domain.Library, error) {
	return s.libraryRepo.GetByID(ctx, id)
}

func (s *libraryService) ListLibraries(ctx context.Context) ([]domain.Library, error) {
	return s.libraryRepo.GetAll(ctx)
}
