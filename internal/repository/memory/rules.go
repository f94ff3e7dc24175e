package memory

import (
	"context"
	"sync"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type rulesRepository struct {
	mu    sync.RWMutex
	rules domain.BorrowingRules
}

func NewRulesRepository(initial domain.BorrowingRules) repository.RulesRepository {
	return &rulesRepository{rules: initial}
}

func (r *rulesRepository) GetRules(ctx context.Context) (*domain.BorrowingRules, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules := r.rules
	return &rules, nil
}

func (r *rulesRepository) UpdateRules(ctx context.Context, rules *domain.BorrowingRules) error {
	if err := rules.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = *rules
	return nil
}
