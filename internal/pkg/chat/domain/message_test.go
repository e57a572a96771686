package chat

import (
	"errors"
	"testing"
	"time"
)

func TestStatusCanAdvanceTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"sending to sent", StatusSending, StatusSent, true},
		{"sending to delivered skips sent", StatusSending, StatusDelivered, true},
		{"sent to delivered", StatusSent, StatusDelivered, true},
		{"delivered to read", StatusDelivered, StatusRead, true},
		{"sending to read", StatusSending, StatusRead, true},
		{"any to error", StatusDelivered, StatusError, true},
		{"sent back to sending", StatusSent, StatusSending, false},
		{"delivered back to sent", StatusDelivered, StatusSent, false},
		{"read is terminal", StatusRead, StatusError, false},
		{"error is terminal", StatusError, StatusSent, false},
		{"same state is not an advance", StatusSent, StatusSent, false},
		{"unknown target", StatusSent, Status("queued"), false},
		{"unknown source", Status("queued"), StatusSent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanAdvanceTo(tt.to); got != tt.want {
				t.Errorf("CanAdvanceTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusSending, StatusSent, StatusDelivered} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []Status{StatusRead, StatusError} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		in      Message
		wantErr error
	}{
		{
			name: "valid text message",
			in:   Message{ConversationID: "BK-10231", Sender: SenderOperator, Text: "hello"},
		},
		{
			name: "image only is valid",
			in:   Message{ConversationID: "BK-10231", Sender: SenderOperator, ImageURL: "/a.png"},
		},
		{
			name:    "whitespace text rejected",
			in:      Message{ConversationID: "BK-10231", Text: "   "},
			wantErr: ErrEmptyMessage,
		},
		{
			name:    "missing conversation",
			in:      Message{Text: "hello"},
			wantErr: ErrNoConversation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewMessage() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMessage() unexpected error: %v", err)
			}
			if msg.Status != StatusSending {
				t.Errorf("default status = %s, want %s", msg.Status, StatusSending)
			}
			if msg.Timestamp == "" {
				t.Error("timestamp should be stamped")
			}
		})
	}
}

func TestNewMessageTrimsText(t *testing.T) {
	msg, err := NewMessage(Message{ConversationID: "BK-10231", Text: "  hi there  "})
	if err != nil {
		t.Fatal(err)
	}
	if msg.Text != "hi there" {
		t.Errorf("text = %q, want %q", msg.Text, "hi there")
	}
}

func TestClockStamp(t *testing.T) {
	ts := time.Date(2026, 8, 31, 14, 5, 0, 0, time.UTC)
	if got := ClockStamp(ts); got != "2:05 PM" {
		t.Errorf("ClockStamp = %q, want %q", got, "2:05 PM")
	}
}
