package usecase

import (
	"context"
	"fmt"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
	repository "rentdesk/internal/pkg/disputes/persistence/repository/port"
)

type ListDisputesUseCase struct {
	Repo repository.DisputeRepository
}

func NewListDisputesUseCase(repo repository.DisputeRepository) *ListDisputesUseCase {
	return &ListDisputesUseCase{Repo: repo}
}

func (uc *ListDisputesUseCase) Execute(ctx context.Context) ([]disputes.Dispute, error) {
	out, err := uc.Repo.ListDisputes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return out, nil
}
