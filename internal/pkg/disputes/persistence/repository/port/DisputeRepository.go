package repository

import (
	"context"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
)

// DisputeRepository defines the storage operations for the disputes domain.
// The dashboard ships with an in-memory adapter; a backend-integrated
// deployment would swap in a real one behind the same port.
type DisputeRepository interface {
	ListDisputes(ctx context.Context) ([]disputes.Dispute, error)
	GetDispute(ctx context.Context, id string) (*disputes.Dispute, error)
	SaveDispute(ctx context.Context, d disputes.Dispute) error
	ListBookingOptions(ctx context.Context) ([]disputes.BookingOption, error)
}
