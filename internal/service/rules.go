package service

import (
	"context"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type rulesService struct {
	rulesRepo repository.RulesRepository
}

func NewRulesService(rulesRepo repository.RulesRepository) RulesService {
	return &rulesService{rulesRepo: rulesRepo}
}

func (s *rulesService) GetRules(ctx context.Context) (*domain.BorrowingRules, error) {
	return s.rulesRepo.GetRules(ctx)
}

func (s *rulesService) UpdateRules(ctx context.Context, rules *domain.BorrowingRules) error {
	return s.rulesRepo.UpdateRules(ctx, rules)
}
