package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	chat "rentdesk/internal/pkg/chat/domain"
)

// Transport is the slice of the realtime client the session depends on.
// It is injected at construction so tests can supply a fake.
type Transport interface {
	Send(v any) bool
	Connected() bool
}

var (
	ErrClosed         = errors.New("session: closed")
	ErrUnknownMessage = errors.New("session: message not found")
	ErrNotRetryable   = errors.New("session: message is not in error state")
)

// firstLocalID seeds the temp-id counter used for optimistic inserts.
const firstLocalID = 1000

// Session owns per-conversation message lists and typing state and presents
// a connection-agnostic messaging API: callers never need to know whether a
// message travels over the wire or through the local delivery simulation.
type Session struct {
	transport Transport
	delays    Delays

	mu            sync.Mutex
	closed        bool
	conversations []chat.Conversation
	messages      map[string][]chat.Message
	typing        map[string]bool
	typingTimers  map[string]*time.Timer
	active        string
	nextLocalID   int
	alias         map[string]string // temp id -> server-assigned id
	sim           *simulator
}

// New constructs a Session over the given transport, seeded with the initial
// conversation list and message history. transport may be nil for a purely
// offline session.
func New(transport Transport, conversations []chat.Conversation, messages map[string][]chat.Message, delays Delays) *Session {
	s := &Session{
		transport:     transport,
		delays:        delays.withDefaults(),
		conversations: append([]chat.Conversation(nil), conversations...),
		messages:      make(map[string][]chat.Message, len(messages)),
		typing:        make(map[string]bool),
		typingTimers:  make(map[string]*time.Timer),
		nextLocalID:   firstLocalID,
		alias:         make(map[string]string),
	}
	for id, msgs := range messages {
		s.messages[id] = append([]chat.Message(nil), msgs...)
	}
	s.sim = newSimulator(s)
	return s
}

// Close stops the session: every pending simulation and typing timer is
// cancelled and no further asynchronous update is applied.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, t := range s.typingTimers {
		t.Stop()
		delete(s.typingTimers, id)
	}
	s.mu.Unlock()
	s.sim.cancelAll()
}

// SendMessage appends an optimistic entry with a temporary id and status
// "sending", updates the conversation preview, and then either sends the
// message over the transport or runs the local delivery simulation. It
// returns immediately; status progression arrives asynchronously.
func (s *Session) SendMessage(conversationID, text, imageURL string) (*chat.Message, error) {
	msg, err := chat.NewMessage(chat.Message{
		ConversationID: conversationID,
		Sender:         chat.SenderOperator,
		Text:           text,
		ImageURL:       imageURL,
		Status:         chat.StatusSending,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	msg.ID = s.nextTempIDLocked()
	s.messages[conversationID] = append(s.messages[conversationID], *msg)
	s.updatePreviewLocked(conversationID, msg.Text, msg.Timestamp, false)
	s.mu.Unlock()

	s.dispatchSend(*msg)
	return msg, nil
}

// Retry re-sends a message stuck in the error state: its status is reset to
// sending and the normal send path runs again under the same id.
func (s *Session) Retry(conversationID, messageID string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	idx, ok := s.findLocked(conversationID, messageID)
	if !ok {
		s.mu.Unlock()
		return ErrUnknownMessage
	}
	if s.messages[conversationID][idx].Status != chat.StatusError {
		s.mu.Unlock()
		return ErrNotRetryable
	}
	s.messages[conversationID][idx].Status = chat.StatusSending
	msg := s.messages[conversationID][idx]
	s.mu.Unlock()

	s.dispatchSend(msg)
	return nil
}

// SendTyping forwards a typing event when connected; offline it only flips
// the local indicator. Typing is best-effort and never queued or retried.
func (s *Session) SendTyping(conversationID string, isTyping bool) {
	if conversationID == "" {
		return
	}
	if s.transport != nil && s.transport.Connected() {
		s.sendEvent(chat.EventUserTyping, chat.TypingPayload{
			ConversationID: conversationID,
			IsTyping:       isTyping,
		})
		return
	}

	s.mu.Lock()
	if !s.closed {
		s.setTypingLocked(conversationID, isTyping, false)
	}
	s.mu.Unlock()
}

// MarkRead marks every customer message in the conversation read, clears the
// unread flag, and emits one bulk read receipt when connected.
func (s *Session) MarkRead(conversationID string) {
	if conversationID == "" {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	var ids []string
	msgs := s.messages[conversationID]
	for i := range msgs {
		if msgs[i].Sender == chat.SenderCustomer && msgs[i].Status != chat.StatusRead {
			ids = append(ids, msgs[i].ID)
			msgs[i].Status = chat.StatusRead
		}
	}
	for i := range s.conversations {
		if s.conversations[i].ID == conversationID {
			s.conversations[i].Unread = false
		}
	}
	s.mu.Unlock()

	if len(ids) > 0 && s.transport != nil && s.transport.Connected() {
		s.sendEvent(chat.EventReadReceipt, chat.ReadReceiptPayload{
			ConversationID: conversationID,
			MessageIDs:     ids,
		})
	}
}

// SetActiveConversation switches focus to the given conversation and marks
// it read.
func (s *Session) SetActiveConversation(conversationID string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.active = conversationID
	s.mu.Unlock()
	s.MarkRead(conversationID)
}

// HandleInbound parses a raw frame from the transport and dispatches it by
// event kind. Malformed payloads are logged and dropped; unknown event types
// are logged and ignored. Intended as the realtime client's OnMessage hook.
func (s *Session) HandleInbound(data []byte) {
	env, err := chat.DecodeEnvelope(data)
	if err != nil {
		log.Printf("session: dropping malformed frame: %v", err)
		return
	}

	switch env.Type {
	case chat.EventNewMessage:
		var p chat.NewMessagePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("session: bad new_message payload: %v", err)
			return
		}
		s.handleNewMessage(p.Message)
	case chat.EventMessageStatus:
		var p chat.MessageStatusPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("session: bad message_status payload: %v", err)
			return
		}
		s.handleMessageStatus(p)
	case chat.EventUserTyping:
		var p chat.TypingPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("session: bad user_typing payload: %v", err)
			return
		}
		s.handleTyping(p)
	case chat.EventReadReceipt:
		var p chat.ReadReceiptPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("session: bad read_receipt payload: %v", err)
			return
		}
		s.handleReadReceipt(p)
	case chat.EventChatListUpdate:
		var p chat.ChatListPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("session: bad chat_list_update payload: %v", err)
			return
		}
		s.handleChatListUpdate(p)
	case chat.EventError:
		var p chat.ErrorPayload
		if err := json.Unmarshal(env.Payload, &p); err == nil {
			log.Printf("session: server error: %s %s", p.Code, p.Message)
		}
	default:
		log.Printf("session: ignoring unknown event type %q", env.Type)
	}
}

// Conversations returns a copy of the current conversation list.
func (s *Session) Conversations() []chat.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Conversation(nil), s.conversations...)
}

// Messages returns a copy of the message list for the conversation.
func (s *Session) Messages(conversationID string) []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Message(nil), s.messages[conversationID]...)
}

// Typing reports whether the counterparty is currently typing.
func (s *Session) Typing(conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing[conversationID]
}

// ActiveConversation returns the id of the focused conversation, if any.
func (s *Session) ActiveConversation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// dispatchSend routes an optimistic message either over the wire or into the
// local simulation. A failed transport send falls back to the simulation so
// sending never surfaces an error to the caller.
func (s *Session) dispatchSend(msg chat.Message) {
	if s.transport != nil && s.transport.Connected() {
		payload, err := chat.Encode(chat.EventNewMessage, chat.OutboundMessagePayload{
			TempID:         msg.ID,
			ConversationID: msg.ConversationID,
			Text:           msg.Text,
			ImageURL:       msg.ImageURL,
		})
		if err == nil && s.transport.Send(json.RawMessage(payload)) {
			return
		}
	}
	s.sim.start(msg.ConversationID, msg.ID)
}

func (s *Session) sendEvent(t chat.EventType, payload any) {
	raw, err := chat.Encode(t, payload)
	if err != nil {
		log.Printf("session: encode %s: %v", t, err)
		return
	}
	s.transport.Send(json.RawMessage(raw))
}

func (s *Session) handleNewMessage(msg chat.Message) {
	if msg.ID == "" || msg.ConversationID == "" {
		log.Printf("session: dropping new_message without ids")
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if _, exists := s.findLocked(msg.ConversationID, msg.ID); exists {
		// Redelivered event; the first insert wins.
		s.mu.Unlock()
		return
	}
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	active := s.active == msg.ConversationID
	s.updatePreviewLocked(msg.ConversationID, msg.Text, msg.Timestamp, !active)
	s.mu.Unlock()

	if active && s.transport != nil && s.transport.Connected() {
		s.sendEvent(chat.EventReadReceipt, chat.ReadReceiptPayload{
			ConversationID: msg.ConversationID,
			MessageID:      msg.ID,
		})
	}
}

func (s *Session) handleMessageStatus(p chat.MessageStatusPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	// Reconcile the optimistic entry with the server-assigned id: the first
	// status update carries the temp id it acknowledges.
	if p.TempID != "" && p.MessageID != "" && p.TempID != p.MessageID {
		if idx, ok := s.findLocked(p.ConversationID, p.TempID); ok {
			s.messages[p.ConversationID][idx].ID = p.MessageID
			s.alias[p.TempID] = p.MessageID
		}
	}

	s.applyStatusLocked(p.ConversationID, p.MessageID, p.Status)
}

func (s *Session) handleTyping(p chat.TypingPayload) {
	if p.ConversationID == "" {
		return
	}
	s.mu.Lock()
	if !s.closed {
		s.setTypingLocked(p.ConversationID, p.IsTyping, true)
	}
	s.mu.Unlock()
}

func (s *Session) handleReadReceipt(p chat.ReadReceiptPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, id := range p.IDs() {
		s.applyStatusLocked(p.ConversationID, id, chat.StatusRead)
	}
}

func (s *Session) handleChatListUpdate(p chat.ChatListPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	// Full-refresh semantics: the server list replaces ours wholesale.
	s.conversations = append([]chat.Conversation(nil), p.Conversations...)
}

// applyStatusLocked overwrites a message's status by id, falling back to the
// temp-id alias when the direct lookup misses. Transitions that would move
// the state machine backwards are logged and ignored.
func (s *Session) applyStatusLocked(conversationID, messageID string, status chat.Status) {
	idx, ok := s.findLocked(conversationID, messageID)
	if !ok {
		if final, aliased := s.alias[messageID]; aliased {
			idx, ok = s.findLocked(conversationID, final)
		}
		if !ok {
			log.Printf("session: status update for unknown message %s/%s", conversationID, messageID)
			return
		}
	}

	current := s.messages[conversationID][idx].Status
	if current == status {
		return
	}
	if !current.CanAdvanceTo(status) {
		log.Printf("session: ignoring status regression %s -> %s for message %s", current, status, messageID)
		return
	}
	s.messages[conversationID][idx].Status = status
}

// setTypingLocked flips the indicator and manages the auto-expiry timer so a
// lost clear event can never leave the flag stuck on.
func (s *Session) setTypingLocked(conversationID string, isTyping, withExpiry bool) {
	s.typing[conversationID] = isTyping

	if t, ok := s.typingTimers[conversationID]; ok {
		t.Stop()
		delete(s.typingTimers, conversationID)
	}
	if isTyping && withExpiry {
		s.typingTimers[conversationID] = time.AfterFunc(s.delays.TypingExpiry, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.closed {
				return
			}
			s.typing[conversationID] = false
			delete(s.typingTimers, conversationID)
		})
	}
}

func (s *Session) updatePreviewLocked(conversationID, text, timestamp string, markUnread bool) {
	for i := range s.conversations {
		if s.conversations[i].ID != conversationID {
			continue
		}
		s.conversations[i].Preview = text
		s.conversations[i].Timestamp = timestamp
		if markUnread {
			s.conversations[i].Unread = true
		}
		return
	}
}

func (s *Session) findLocked(conversationID, messageID string) (int, bool) {
	msgs := s.messages[conversationID]
	for i := range msgs {
		if msgs[i].ID == messageID {
			return i, true
		}
	}
	return 0, false
}

func (s *Session) nextTempIDLocked() string {
	id := fmt.Sprintf("local-%d", s.nextLocalID)
	s.nextLocalID++
	return id
}
