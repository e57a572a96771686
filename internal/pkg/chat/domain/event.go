package chat

import (
	"encoding/json"
	"fmt"
)

// EventType tags the wire envelope exchanged over the realtime connection.
type EventType string

const (
	EventNewMessage     EventType = "new_message"
	EventMessageStatus  EventType = "message_status"
	EventUserTyping     EventType = "user_typing"
	EventReadReceipt    EventType = "read_receipt"
	EventChatListUpdate EventType = "chat_list_update"
	EventError          EventType = "error"
)

// Known reports whether t is one of the event kinds this module understands.
// Anything else falls through to the caller's unknown branch.
func (t EventType) Known() bool {
	switch t {
	case EventNewMessage, EventMessageStatus, EventUserTyping,
		EventReadReceipt, EventChatListUpdate, EventError:
		return true
	}
	return false
}

// Envelope is the outer wire frame: a type tag plus an event-specific payload.
type Envelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessagePayload carries an inbound message from the counterparty.
type NewMessagePayload struct {
	Message Message `json:"message"`
}

// OutboundMessagePayload is the client-side shape of new_message: the server
// echoes TempID back in the first status update so the optimistic entry can
// be re-keyed to the assigned id.
type OutboundMessagePayload struct {
	TempID         string `json:"tempId"`
	ConversationID string `json:"conversationId"`
	Text           string `json:"text"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

// MessageStatusPayload updates a single message's delivery state.
type MessageStatusPayload struct {
	ConversationID string `json:"conversationId"`
	MessageID      string `json:"messageId"`
	TempID         string `json:"tempId,omitempty"`
	Status         Status `json:"status"`
}

// TypingPayload toggles the counterparty's typing indicator.
type TypingPayload struct {
	ConversationID string `json:"conversationId"`
	IsTyping       bool   `json:"isTyping"`
}

// ReadReceiptPayload marks one or many messages read. Either MessageID or
// MessageIDs is set, never both.
type ReadReceiptPayload struct {
	ConversationID string   `json:"conversationId"`
	MessageID      string   `json:"messageId,omitempty"`
	MessageIDs     []string `json:"messageIds,omitempty"`
}

// IDs collapses the single/bulk forms into one list.
func (p ReadReceiptPayload) IDs() []string {
	if len(p.MessageIDs) > 0 {
		return p.MessageIDs
	}
	if p.MessageID != "" {
		return []string{p.MessageID}
	}
	return nil
}

// ChatListPayload replaces the full conversation list (no merge semantics).
type ChatListPayload struct {
	Conversations []Conversation `json:"conversations"`
}

// ErrorPayload is a server-reported failure.
type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Encode wraps payload in an Envelope of the given type and marshals it.
func Encode(t EventType, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("chat: encode %s payload: %w", t, err)
	}
	return json.Marshal(Envelope{Type: t, Payload: raw})
}

// DecodeEnvelope parses the outer frame. Payload decoding is left to the
// dispatcher so unknown types can be skipped without error.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("chat: decode envelope: %w", err)
	}
	return env, nil
}
