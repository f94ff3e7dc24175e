package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
)

type memberRepository struct {
	mu      sync.RWMutex
	members map[string]domain.Member
}

func NewMemberRepository() repository.MemberRepository {
	return &memberRepository{members: make(map[string]domain.Member)}
}

func (r *memberRepository) Add(ctx context.Context, m *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrMemberAlreadyExists, m.ID)
	}
	r.members[m.ID] = *m
	return nil
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrMemberNotFound, m.ID)
	}
	r.members[m.ID] = *m
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrMemberNotFound, id)
	}
	delete(r.members, id)
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, id)
	}
	return &m, nil
}

func (r *memberRepository) GetAll(ctx context.Context) ([]domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := make([]domain.Member, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}
