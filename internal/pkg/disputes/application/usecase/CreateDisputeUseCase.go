package usecase

import (
	"context"
	"fmt"
	"time"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
	repository "rentdesk/internal/pkg/disputes/persistence/repository/port"

	"github.com/google/uuid"
)

// EvidenceUpload names one file attached to a new dispute. Only metadata is
// carried; the dashboard never stores file contents.
type EvidenceUpload struct {
	Filename string
}

// CreateDisputeInput carries the dispute form submission.
type CreateDisputeInput struct {
	BookingID   string
	Reason      string
	Description string
	Evidence    []EvidenceUpload
}

// CreateDisputeUseCase opens a dispute against a booking. Customer and dress
// details are resolved from the booking options list.
type CreateDisputeUseCase struct {
	Repo repository.DisputeRepository
}

func NewCreateDisputeUseCase(repo repository.DisputeRepository) *CreateDisputeUseCase {
	return &CreateDisputeUseCase{Repo: repo}
}

func (uc *CreateDisputeUseCase) Execute(ctx context.Context, in CreateDisputeInput) (*disputes.Dispute, error) {
	if in.BookingID == "" {
		return nil, disputes.ErrBookingMissing
	}
	if in.Reason == "" {
		return nil, disputes.ErrReasonRequired
	}

	bookings, err := uc.Repo.ListBookingOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	now := time.Now()
	d := disputes.Dispute{
		ID:            fmt.Sprintf("DISP-%s", uuid.NewString()[:8]),
		BookingID:     in.BookingID,
		CustomerID:    "CUST-" + uuid.NewString()[:6],
		CustomerName:  "Customer",
		DressID:       "UNKNOWN",
		Reason:        in.Reason,
		Description:   in.Description,
		Status:        disputes.StatusPending,
		DateSubmitted: disputes.DateStamp(now),
		Timeline: []disputes.TimelineEvent{
			{Date: disputes.DateStamp(now), Action: "Dispute Opened"},
		},
	}
	for _, b := range bookings {
		if b.ID == in.BookingID {
			d.CustomerName = b.CustomerName
			d.DressID = b.DressID
			d.DressName = b.DressName
			break
		}
	}
	for _, up := range in.Evidence {
		d.Evidence = append(d.Evidence, disputes.Evidence{
			ID:         "EV-" + uuid.NewString()[:8],
			DisputeID:  d.ID,
			Filename:   up.Filename,
			FileURL:    "/evidence-display.png",
			UploadedAt: disputes.DateStamp(now),
		})
	}

	if err := uc.Repo.SaveDispute(ctx, d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &d, nil
}
