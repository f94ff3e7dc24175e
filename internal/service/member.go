package service

import (
	"context"
	"fmt"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/repository"
	"library-lending-backend/internal/utils"
)

type memberService struct {
	memberRepo repository.MemberRepository
	clock      utils.Clock
	ids        utils.IDGenerator
}

func NewMemberService(memberRepo repository.MemberRepository, clock utils.Clock, ids utils.IDGenerator) MemberService {
	return &memberService{memberRepo: memberRepo, clock: clock, ids: ids}
}

func (s *memberService) AddMember(ctx context.Context, member *domain.Member) error {
	if member.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if member.ID == "" {
		member.ID = s.ids.NewID()
	}
	member.JoinedOn = s.clock.Now()
	return s.memberRepo.Add(ctx, member)
}

func (s *memberService) UpdateMember(ctx context.Context, member *domain.Member) error {
	existing, err := s.memberRepo.GetByID(ctx, member.ID)
	if err != nil {
		return err
	}
	member.JoinedOn = existing.JoinedOn
	return s.memberRepo.Update(ctx, member)
}

func (s *memberService) DeleteMember(ctx context.Context, id string) error {
	return s.memberRepo.Delete(ctx, id)
}

func (s *memberService) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *memberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	return s.memberRepo.GetAll(ctx)
}
