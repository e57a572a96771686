package chat

import (
	"errors"
	"strings"
	"time"
)

// Sender identifies which side of the conversation authored a message.
// Wire values match what the dashboard client expects.
type Sender string

const (
	SenderOperator Sender = "admin" // the lender operating the dashboard
	SenderCustomer Sender = "user"  // the renting customer
)

// Status is the delivery state of a message.
// Forward order: sending -> sent -> delivered -> read. Any state may fall to
// error. read and error are terminal.
type Status string

const (
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusError     Status = "error"
)

var statusRank = map[Status]int{
	StatusSending:   0,
	StatusSent:      1,
	StatusDelivered: 2,
	StatusRead:      3,
}

// Valid reports whether s is one of the known delivery states.
func (s Status) Valid() bool {
	if s == StatusError {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusRead || s == StatusError
}

// CanAdvanceTo reports whether moving from s to next is a legal transition.
func (s Status) CanAdvanceTo(next Status) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s.Terminal() {
		return false
	}
	if next == StatusError {
		return true
	}
	return statusRank[next] > statusRank[s]
}

// Message is a single entry in a conversation's append-only log.
// Timestamp is the display-formatted clock time, not a sortable value.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	Sender         Sender `json:"sender"`
	Text           string `json:"text"`
	ImageURL       string `json:"imageUrl,omitempty"`
	Timestamp      string `json:"timestamp"`
	Status         Status `json:"status"`
}

var (
	ErrEmptyMessage   = errors.New("chat: empty message (no text or image)")
	ErrNoConversation = errors.New("chat: conversation id is required")
)

// NewMessage validates and normalizes a message. Text is trimmed; a message
// must carry either text or an image. A zero timestamp is stamped with now.
func NewMessage(m Message) (*Message, error) {
	if m.ConversationID == "" {
		return nil, ErrNoConversation
	}

	m.Text = strings.TrimSpace(m.Text)
	if m.Text == "" && m.ImageURL == "" {
		return nil, ErrEmptyMessage
	}

	if m.Timestamp == "" {
		m.Timestamp = ClockStamp(time.Now())
	}
	if m.Status == "" {
		m.Status = StatusSending
	}

	return &m, nil
}

// ClockStamp renders t the way the dashboard shows message times.
func ClockStamp(t time.Time) string {
	return t.Format("3:04 PM")
}
