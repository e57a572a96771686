package listings

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService() *Service {
	return NewServiceWithLatency(0)
}

func TestListDresses(t *testing.T) {
	svc := newTestService()
	dresses, err := svc.ListDresses(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(dresses) == 0 {
		t.Fatal("catalogue should be seeded")
	}
	for _, d := range dresses {
		if d.ID == "" || d.Name == "" {
			t.Errorf("incomplete seed entry: %+v", d)
		}
	}
}

func TestGetDress(t *testing.T) {
	svc := newTestService()

	d, err := svc.GetDress(context.Background(), "DRESS001")
	if err != nil {
		t.Fatal(err)
	}
	if d.ID != "DRESS001" {
		t.Errorf("id = %s", d.ID)
	}

	if _, err := svc.GetDress(context.Background(), "DRESS999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing dress: err = %v, want %v", err, ErrNotFound)
	}
}

func TestCreateDress(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	before, _ := svc.ListDresses(ctx)

	d, err := svc.CreateDress(ctx, DressInput{
		Name:         "Emerald Wrap Dress",
		Brand:        "Reformation",
		NumericPrice: 45,
		Size:         "M",
		Active:       true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.ID == "" {
		t.Error("created dress needs an id")
	}
	if d.Price != "$45.00" {
		t.Errorf("display price = %q, want %q", d.Price, "$45.00")
	}

	after, _ := svc.ListDresses(ctx)
	if len(after) != len(before)+1 {
		t.Errorf("catalogue size = %d, want %d", len(after), len(before)+1)
	}

	// Creation opens the audit log.
	audit, err := svc.AuditLog(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(audit) != 1 || audit[0].Action != "Listing created." {
		t.Errorf("audit log = %+v", audit)
	}

	if _, err := svc.CreateDress(ctx, DressInput{}); !errors.Is(err, ErrNameEmpty) {
		t.Errorf("nameless dress: err = %v, want %v", err, ErrNameEmpty)
	}
}

func TestUpdateDress(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	orig, err := svc.GetDress(ctx, "DRESS001")
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateDress(ctx, "DRESS001", DressInput{
		Name:         orig.Name,
		Brand:        orig.Brand,
		NumericPrice: 99,
		Size:         orig.Size,
		Active:       orig.Active,
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.NumericPrice != 99 {
		t.Errorf("price = %v, want 99", updated.NumericPrice)
	}

	audit, _ := svc.AuditLog(ctx, "DRESS001")
	if len(audit) == 0 {
		t.Fatal("update should append an audit entry")
	}

	if _, err := svc.UpdateDress(ctx, "DRESS999", DressInput{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want %v", err, ErrNotFound)
	}
}

func TestSetDressStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.SetDressStatus(ctx, "DRESS001", false)
	if err != nil {
		t.Fatal(err)
	}
	if d.Active {
		t.Error("dress should be deactivated")
	}

	d, err = svc.SetDressStatus(ctx, "DRESS001", true)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Active {
		t.Error("dress should be active again")
	}
}

func TestMostPopularDress(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	popular, err := svc.MostPopularDress(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// The winner must hold at least as many bookings as every other listing.
	winner, _ := svc.BookingsForDress(ctx, popular.ID)
	all, _ := svc.ListDresses(ctx)
	for _, d := range all {
		other, _ := svc.BookingsForDress(ctx, d.ID)
		if len(other) > len(winner) {
			t.Errorf("%s has %d bookings, more than popular %s with %d",
				d.ID, len(other), popular.ID, len(winner))
		}
	}
}

func TestCounts(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	counts, err := svc.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	all, _ := svc.ListDresses(ctx)
	if counts.Total != len(all) {
		t.Errorf("total = %d, want %d", counts.Total, len(all))
	}
	if counts.Active > counts.Total {
		t.Errorf("active %d exceeds total %d", counts.Active, counts.Total)
	}
}

func TestLatencyHonorsContext(t *testing.T) {
	svc := NewServiceWithLatency(50 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.ListDresses(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want %v", err, context.Canceled)
	}
}
