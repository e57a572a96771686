package disputes

import (
	"errors"
	"time"
)

// DisputeStatus tracks where a dispute sits in its lifecycle.
type DisputeStatus string

const (
	StatusPending    DisputeStatus = "Pending"
	StatusInProgress DisputeStatus = "In Progress"
	StatusResolved   DisputeStatus = "Resolved"
	StatusEscalated  DisputeStatus = "Escalated"
	StatusClosed     DisputeStatus = "Closed"
)

// Priority applies once a dispute is escalated.
type Priority string

const (
	PriorityStandard Priority = "Standard"
	PriorityHigh     Priority = "High"
)

var (
	ErrNotFound       = errors.New("disputes: dispute not found")
	ErrNotEscalatable = errors.New("disputes: dispute cannot be escalated in its current state")
	ErrReasonRequired = errors.New("disputes: reason is required")
	ErrBookingMissing = errors.New("disputes: booking id is required")
)

// Evidence is one uploaded file attached to a dispute.
type Evidence struct {
	ID        string `json:"id"`
	DisputeID string `json:"disputeId"`
	Filename  string `json:"filename"`
	FileURL   string `json:"fileUrl"`
	UploadedAt string `json:"uploadedAt"`
}

// TimelineEvent records one step in the dispute's history.
type TimelineEvent struct {
	Date    string `json:"date"`
	Action  string `json:"action"`
	Details string `json:"details,omitempty"`
}

// Dispute is a claim a lender raises against a booking.
type Dispute struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"bookingId"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	DressID       string          `json:"dressId"`
	DressName     string          `json:"dressName,omitempty"`
	Reason        string          `json:"reason"`
	Description   string          `json:"description"`
	Status        DisputeStatus   `json:"status"`
	Priority      Priority        `json:"priority,omitempty"`
	DateSubmitted string          `json:"dateSubmitted"`
	Evidence      []Evidence      `json:"evidence,omitempty"`
	Timeline      []TimelineEvent `json:"timeline,omitempty"`
}

// CanEscalate reports whether the dispute is still open for escalation.
func (d *Dispute) CanEscalate() bool {
	switch d.Status {
	case StatusPending, StatusInProgress:
		return true
	}
	return false
}

// Escalate moves the dispute to Escalated, stamps the timeline and attaches
// any additional evidence.
func (d *Dispute) Escalate(reason, description string, priority Priority, extraEvidence []Evidence, now time.Time) error {
	if reason == "" {
		return ErrReasonRequired
	}
	if !d.CanEscalate() {
		return ErrNotEscalatable
	}

	d.Status = StatusEscalated
	if priority != "" {
		d.Priority = priority
	} else {
		d.Priority = PriorityStandard
	}
	details := "Reason: " + reason
	if description != "" {
		details += ". " + description
	}
	d.Timeline = append(d.Timeline, TimelineEvent{
		Date:    DateStamp(now),
		Action:  "Dispute Escalated",
		Details: details,
	})
	for _, ev := range extraEvidence {
		ev.DisputeID = d.ID
		d.Evidence = append(d.Evidence, ev)
	}
	return nil
}

// RecordMessage appends a support-message timeline entry with the message
// text truncated for display.
func (d *Dispute) RecordMessage(message string, now time.Time) {
	details := message
	if len(details) > 50 {
		details = details[:50] + "..."
	}
	d.Timeline = append(d.Timeline, TimelineEvent{
		Date:    DateStamp(now),
		Action:  "Message Sent",
		Details: details,
	})
}

// BookingOption is a row in the booking dropdown shown on the dispute form.
type BookingOption struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`
	DressID      string `json:"dressId"`
	DressName    string `json:"dressName"`
}

// ReasonOption is a selectable dispute or escalation reason.
type ReasonOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DisputeReasons lists the reasons offered when opening a dispute.
func DisputeReasons() []ReasonOption {
	return []ReasonOption{
		{ID: "reason-1", Label: "Late Return"},
		{ID: "reason-2", Label: "Not Returned"},
		{ID: "reason-3", Label: "Damaged Dress"},
		{ID: "reason-4", Label: "Wrong Size"},
		{ID: "reason-5", Label: "Quality Issue"},
		{ID: "reason-6", Label: "Other"},
	}
}

// EscalationReasons lists the reasons offered when escalating.
func EscalationReasons() []ReasonOption {
	return []ReasonOption{
		{ID: "escalation-1", Label: "No Response from Customer"},
		{ID: "escalation-2", Label: "Dispute Unresolved"},
		{ID: "escalation-3", Label: "Significant Damage"},
		{ID: "escalation-4", Label: "Item Not Returned"},
		{ID: "escalation-5", Label: "Need Higher Authority"},
		{ID: "escalation-6", Label: "Other"},
	}
}

// DateStamp renders t the way dispute dates appear across the dashboard.
func DateStamp(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
