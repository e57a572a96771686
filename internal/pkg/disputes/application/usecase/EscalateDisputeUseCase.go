package usecase

import (
	"context"
	"fmt"
	"time"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
	repository "rentdesk/internal/pkg/disputes/persistence/repository/port"

	"github.com/google/uuid"
)

// EscalateDisputeInput carries the escalation form submission.
type EscalateDisputeInput struct {
	DisputeID          string
	Reason             string
	Description        string
	Priority           disputes.Priority
	AdditionalEvidence []EvidenceUpload
}

// EscalateDisputeUseCase hands an unresolved dispute to the marketplace's
// resolution team. Escalation is only valid while the dispute is open.
type EscalateDisputeUseCase struct {
	Repo repository.DisputeRepository
}

func NewEscalateDisputeUseCase(repo repository.DisputeRepository) *EscalateDisputeUseCase {
	return &EscalateDisputeUseCase{Repo: repo}
}

func (uc *EscalateDisputeUseCase) Execute(ctx context.Context, in EscalateDisputeInput) (*disputes.Dispute, error) {
	if in.DisputeID == "" {
		return nil, disputes.ErrNotFound
	}

	d, err := uc.Repo.GetDispute(ctx, in.DisputeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var extra []disputes.Evidence
	for _, up := range in.AdditionalEvidence {
		extra = append(extra, disputes.Evidence{
			ID:         "EV-" + uuid.NewString()[:8],
			Filename:   up.Filename,
			FileURL:    "/evidence-display.png",
			UploadedAt: disputes.DateStamp(now),
		})
	}

	if err := d.Escalate(in.Reason, in.Description, in.Priority, extra, now); err != nil {
		return nil, err
	}

	if err := uc.Repo.SaveDispute(ctx, *d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return d, nil
}
