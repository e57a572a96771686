package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
)

// opLatency paces the mock repository like a remote API.
const opLatency = 300 * time.Millisecond

// MemoryDisputeRepository keeps disputes in process memory, seeded with the
// demo data set. Newest dispute first, matching the dashboard ordering.
type MemoryDisputeRepository struct {
	latency time.Duration

	mu       sync.RWMutex
	disputes []disputes.Dispute
	bookings []disputes.BookingOption
}

// NewMemoryDisputeRepository seeds the demo disputes with production pacing.
func NewMemoryDisputeRepository() *MemoryDisputeRepository {
	return NewMemoryDisputeRepositoryWithLatency(opLatency)
}

// NewMemoryDisputeRepositoryWithLatency overrides the simulated latency;
// zero disables it (used by tests).
func NewMemoryDisputeRepositoryWithLatency(latency time.Duration) *MemoryDisputeRepository {
	return &MemoryDisputeRepository{
		latency:  latency,
		disputes: seedDisputes(),
		bookings: seedBookingOptions(),
	}
}

func (r *MemoryDisputeRepository) ListDisputes(ctx context.Context) ([]disputes.Dispute, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneDisputes(r.disputes), nil
}

func (r *MemoryDisputeRepository) GetDispute(ctx context.Context, id string) (*disputes.Dispute, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.disputes {
		if r.disputes[i].ID == id {
			d := cloneDispute(r.disputes[i])
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", disputes.ErrNotFound, id)
}

// SaveDispute inserts a new dispute at the head of the list or replaces an
// existing one in place.
func (r *MemoryDisputeRepository) SaveDispute(ctx context.Context, d disputes.Dispute) error {
	if d.ID == "" {
		return errors.New("disputes: dispute id is required")
	}
	if err := r.wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.disputes {
		if r.disputes[i].ID == d.ID {
			r.disputes[i] = cloneDispute(d)
			return nil
		}
	}
	r.disputes = append([]disputes.Dispute{cloneDispute(d)}, r.disputes...)
	return nil
}

func (r *MemoryDisputeRepository) ListBookingOptions(ctx context.Context) ([]disputes.BookingOption, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]disputes.BookingOption(nil), r.bookings...), nil
}

func (r *MemoryDisputeRepository) wait(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(r.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func cloneDisputes(in []disputes.Dispute) []disputes.Dispute {
	out := make([]disputes.Dispute, len(in))
	for i := range in {
		out[i] = cloneDispute(in[i])
	}
	return out
}

func cloneDispute(d disputes.Dispute) disputes.Dispute {
	d.Evidence = append([]disputes.Evidence(nil), d.Evidence...)
	d.Timeline = append([]disputes.TimelineEvent(nil), d.Timeline...)
	return d
}

func seedDisputes() []disputes.Dispute {
	return []disputes.Dispute{
		{
			ID: "DISP-001", BookingID: "BK-12345", CustomerID: "CUST-001",
			CustomerName: "Sophia M.", DressID: "MG-480012", DressName: "Black Evening Gown",
			Reason:      "Late Return",
			Description: "The dress was not returned by the due date of Apr 8, 2025.",
			Status:      disputes.StatusPending, DateSubmitted: "Apr 10, 2025",
			Evidence: []disputes.Evidence{
				{ID: "EV-001", DisputeID: "DISP-001", Filename: "evidence1.jpg", FileURL: "/evidence-display.png", UploadedAt: "Apr 10, 2025"},
				{ID: "EV-002", DisputeID: "DISP-001", Filename: "evidence2.jpg", FileURL: "/evidence-display.png", UploadedAt: "Apr 10, 2025"},
			},
			Timeline: []disputes.TimelineEvent{
				{Date: "Apr 12, 2025", Action: "Dispute Opened"},
				{Date: "Apr 12, 2025", Action: "Customer Contacted", Details: "Customer contacted regarding late return."},
				{Date: "Apr 12, 2025", Action: "Fee Applied", Details: "Late fee added to customer account."},
			},
		},
		{
			ID: "DISP-002", BookingID: "BK-67890", CustomerID: "CUST-002",
			CustomerName: "Emma J.", DressID: "DR-54321", DressName: "Zimmermann Silk Gown",
			Reason:      "Not Returned",
			Description: "The dress was not returned after the rental period ended.",
			Status:      disputes.StatusInProgress, DateSubmitted: "Apr 5, 2025",
			Timeline: []disputes.TimelineEvent{
				{Date: "Apr 5, 2025", Action: "Dispute Opened"},
				{Date: "Apr 6, 2025", Action: "Customer Contacted"},
			},
		},
		{
			ID: "DISP-003", BookingID: "BK-24680", CustomerID: "CUST-003",
			CustomerName: "Olivia P.", DressID: "DR-97531", DressName: "Red Cocktail Dress",
			Reason:      "Damaged Dress",
			Description: "The dress was returned with visible stains on the front.",
			Status:      disputes.StatusResolved, DateSubmitted: "Mar 20, 2025",
			Evidence: []disputes.Evidence{
				{ID: "EV-003", DisputeID: "DISP-003", Filename: "damage_photo.jpg", FileURL: "/evidence-display.png", UploadedAt: "Mar 20, 2025"},
			},
			Timeline: []disputes.TimelineEvent{
				{Date: "Mar 20, 2025", Action: "Dispute Opened"},
				{Date: "Mar 22, 2025", Action: "Damage Assessment"},
				{Date: "Mar 25, 2025", Action: "Resolved", Details: "Customer charged cleaning fee."},
			},
		},
	}
}

func seedBookingOptions() []disputes.BookingOption {
	return []disputes.BookingOption{
		{ID: "BK-12345", CustomerName: "Sophia M.", Date: "Apr 1, 2025", DressID: "MG-480012", DressName: "Black Evening Gown"},
		{ID: "BK-67890", CustomerName: "Emma J.", Date: "Apr 2, 2025", DressID: "DR-54321", DressName: "Zimmermann Silk Gown"},
		{ID: "BK-24680", CustomerName: "Olivia P.", Date: "Mar 15, 2025", DressID: "DR-97531", DressName: "Red Cocktail Dress"},
	}
}
