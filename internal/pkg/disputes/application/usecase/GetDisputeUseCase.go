package usecase

import (
	"context"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
	repository "rentdesk/internal/pkg/disputes/persistence/repository/port"
)

type GetDisputeInput struct {
	DisputeID string
}

type GetDisputeUseCase struct {
	Repo repository.DisputeRepository
}

func NewGetDisputeUseCase(repo repository.DisputeRepository) *GetDisputeUseCase {
	return &GetDisputeUseCase{Repo: repo}
}

func (uc *GetDisputeUseCase) Execute(ctx context.Context, in GetDisputeInput) (*disputes.Dispute, error) {
	if in.DisputeID == "" {
		return nil, disputes.ErrNotFound
	}
	return uc.Repo.GetDispute(ctx, in.DisputeID)
}
