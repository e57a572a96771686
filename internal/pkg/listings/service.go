package listings

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// defaultLatencyUnit paces the mock service so the dashboard behaves as if a
// real API sat behind it. Operations wait a small multiple of this unit.
const defaultLatencyUnit = 100 * time.Millisecond

// DressInput carries the caller-editable listing fields.
type DressInput struct {
	Name             string         `json:"name"`
	Brand            string         `json:"brand"`
	NumericPrice     float64        `json:"numericPrice"`
	Size             string         `json:"size"`
	Color            string         `json:"color"`
	Condition        string         `json:"condition"`
	Active           bool           `json:"status"`
	Image            string         `json:"image"`
	Description      string         `json:"description"`
	Materials        string         `json:"materials"`
	CareInstructions string         `json:"careInstructions"`
	Category         string         `json:"category"`
	DeliveryMethod   DeliveryMethod `json:"deliveryMethod"`
	Tags             []string       `json:"tags"`
	PickupAddresses  []string       `json:"pickupAddresses"`
	RentalPeriods    []RentalPeriod `json:"rentalPeriods"`
}

// Service is the in-memory listings catalogue. There is no persistence by
// design; the seeded data lives for the lifetime of the process and every
// operation simulates API latency so UI flows stay realistic.
type Service struct {
	unit time.Duration

	mu       sync.RWMutex
	dresses  []Dress
	reports  map[string][]ConditionReport
	audit    map[string][]AuditLogEntry
	bookings map[string][]Booking
}

// NewService seeds the catalogue with the demo inventory.
func NewService() *Service {
	return NewServiceWithLatency(defaultLatencyUnit)
}

// NewServiceWithLatency overrides the latency unit; zero disables the
// simulated delays entirely (used by tests).
func NewServiceWithLatency(unit time.Duration) *Service {
	return &Service{
		unit:     unit,
		dresses:  seedDresses(),
		reports:  seedConditionReports(),
		audit:    seedAuditLogs(),
		bookings: seedBookings(),
	}
}

// ListDresses returns the full catalogue.
func (s *Service) ListDresses(ctx context.Context) ([]Dress, error) {
	if err := s.wait(ctx, 5); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Dress(nil), s.dresses...), nil
}

// GetDress returns one listing by id.
func (s *Service) GetDress(ctx context.Context, id string) (*Dress, error) {
	if err := s.wait(ctx, 3); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.indexLocked(id); ok {
		d := s.dresses[i]
		return &d, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// CreateDress adds a listing under a generated DRESSnnn id and opens its
// audit log.
func (s *Service) CreateDress(ctx context.Context, in DressInput) (*Dress, error) {
	if in.Name == "" {
		return nil, ErrNameEmpty
	}
	if err := s.wait(ctx, 5); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := time.Now().Format("2006-01-02")
	d := Dress{
		ID:               fmt.Sprintf("DRESS%03d", len(s.dresses)+1),
		Name:             in.Name,
		Brand:            in.Brand,
		Price:            fmt.Sprintf("$%.2f", in.NumericPrice),
		NumericPrice:     in.NumericPrice,
		Size:             in.Size,
		Color:            in.Color,
		Condition:        in.Condition,
		Active:           in.Active,
		Image:            in.Image,
		Description:      in.Description,
		Materials:        in.Materials,
		CareInstructions: in.CareInstructions,
		Category:         in.Category,
		DateAdded:        today,
		LastUpdated:      today,
		DeliveryMethod:   in.DeliveryMethod,
		Tags:             append([]string(nil), in.Tags...),
		PickupAddresses:  append([]string(nil), in.PickupAddresses...),
		RentalPeriods:    append([]RentalPeriod(nil), in.RentalPeriods...),
	}
	s.dresses = append(s.dresses, d)
	s.appendAuditLocked(d.ID, "Listing created.")
	return &d, nil
}

// UpdateDress overwrites the editable fields of a listing.
func (s *Service) UpdateDress(ctx context.Context, id string, in DressInput) (*Dress, error) {
	if in.Name == "" {
		return nil, ErrNameEmpty
	}
	if err := s.wait(ctx, 5); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexLocked(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	d := &s.dresses[i]
	d.Name = in.Name
	d.Brand = in.Brand
	d.Price = fmt.Sprintf("$%.2f", in.NumericPrice)
	d.NumericPrice = in.NumericPrice
	d.Size = in.Size
	d.Color = in.Color
	d.Condition = in.Condition
	d.Active = in.Active
	d.Image = in.Image
	d.Description = in.Description
	d.Materials = in.Materials
	d.CareInstructions = in.CareInstructions
	d.Category = in.Category
	d.DeliveryMethod = in.DeliveryMethod
	d.Tags = append([]string(nil), in.Tags...)
	d.PickupAddresses = append([]string(nil), in.PickupAddresses...)
	d.RentalPeriods = append([]RentalPeriod(nil), in.RentalPeriods...)
	d.LastUpdated = time.Now().Format("2006-01-02")

	s.appendAuditLocked(id, "Listing updated.")
	out := *d
	return &out, nil
}

// SetDressStatus toggles a listing between active and inactive.
func (s *Service) SetDressStatus(ctx context.Context, id string, active bool) (*Dress, error) {
	if err := s.wait(ctx, 3); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexLocked(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.dresses[i].Active = active
	s.dresses[i].LastUpdated = time.Now().Format("2006-01-02")

	state := "Inactive"
	if active {
		state = "Active"
	}
	s.appendAuditLocked(id, "Status changed to "+state+".")

	d := s.dresses[i]
	return &d, nil
}

// ConditionReports returns the inspection history for a dress.
func (s *Service) ConditionReports(ctx context.Context, dressID string) ([]ConditionReport, error) {
	if err := s.wait(ctx, 2); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ConditionReport(nil), s.reports[dressID]...), nil
}

// AuditLog returns the change history for a dress, newest first.
func (s *Service) AuditLog(ctx context.Context, dressID string) ([]AuditLogEntry, error) {
	if err := s.wait(ctx, 2); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]AuditLogEntry(nil), s.audit[dressID]...), nil
}

// BookingsForDress returns the rentals recorded against a dress.
func (s *Service) BookingsForDress(ctx context.Context, dressID string) ([]Booking, error) {
	if err := s.wait(ctx, 2); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Booking(nil), s.bookings[dressID]...), nil
}

// MostPopularDress returns the listing with the most bookings, falling back
// to the first listing when nothing has been booked yet.
func (s *Service) MostPopularDress(ctx context.Context) (*Dress, error) {
	if err := s.wait(ctx, 3); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.dresses) == 0 {
		return nil, ErrNotFound
	}

	best := 0
	bestCount := -1
	for i := range s.dresses {
		if n := len(s.bookings[s.dresses[i].ID]); n > bestCount {
			best, bestCount = i, n
		}
	}
	d := s.dresses[best]
	return &d, nil
}

// Counts returns total and active listing counts.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	if err := s.wait(ctx, 2); err != nil {
		return Counts{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := Counts{Total: len(s.dresses)}
	for i := range s.dresses {
		if s.dresses[i].Active {
			c.Active++
		}
	}
	return c, nil
}

// wait simulates API latency; it returns early if ctx is cancelled.
func (s *Service) wait(ctx context.Context, units int) error {
	if s.unit <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(units) * s.unit)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Service) indexLocked(id string) (int, bool) {
	for i := range s.dresses {
		if s.dresses[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Service) appendAuditLocked(id, action string) {
	entry := AuditLogEntry{Date: time.Now().Format("Jan 2, 2006"), Action: action}
	s.audit[id] = append([]AuditLogEntry{entry}, s.audit[id]...)
}
