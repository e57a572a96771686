package session

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	chat "rentdesk/internal/pkg/chat/domain"
)

// fakeTransport records outbound frames and lets tests toggle connectivity
// and force send failures.
type fakeTransport struct {
	mu        sync.Mutex
	connected bool
	failSends bool
	frames    [][]byte
}

func (f *fakeTransport) Send(v any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected || f.failSends {
		return false
	}
	raw, ok := v.(json.RawMessage)
	if !ok {
		var err error
		raw, err = json.Marshal(v)
		if err != nil {
			return false
		}
	}
	f.frames = append(f.frames, append([]byte(nil), raw...))
	return true
}

func (f *fakeTransport) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeTransport) sent() []chat.Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]chat.Envelope, 0, len(f.frames))
	for _, frame := range f.frames {
		env, err := chat.DecodeEnvelope(frame)
		if err != nil {
			continue
		}
		out = append(out, env)
	}
	return out
}

func testDelays() Delays {
	return Delays{
		Sent:         5 * time.Millisecond,
		Delivered:    5 * time.Millisecond,
		Read:         5 * time.Millisecond,
		Reply:        10 * time.Millisecond,
		TypingExpiry: 30 * time.Millisecond,
	}
}

func testConversations() []chat.Conversation {
	return []chat.Conversation{
		{ID: "BK-10231", CustomerName: "Sarah Johnson", Unread: true},
		{ID: "BK-10198", CustomerName: "Michael Brown"},
	}
}

func newTestSession(t *testing.T, tr Transport) *Session {
	t.Helper()
	s := New(tr, testConversations(), nil, testDelays())
	t.Cleanup(s.Close)
	return s
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func statusFrame(t *testing.T, p chat.MessageStatusPayload) []byte {
	t.Helper()
	data, err := chat.Encode(chat.EventMessageStatus, p)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestSendMessageOptimisticInsert(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)

	msg, err := s.SendMessage("BK-10231", "  hello  ", "")
	if err != nil {
		t.Fatal(err)
	}
	if msg.ID != "local-1000" {
		t.Errorf("temp id = %s, want local-1000", msg.ID)
	}
	if msg.Status != chat.StatusSending {
		t.Errorf("status = %s, want %s", msg.Status, chat.StatusSending)
	}
	if msg.Text != "hello" {
		t.Errorf("text = %q, want trimmed", msg.Text)
	}

	msgs := s.Messages("BK-10231")
	if len(msgs) != 1 || msgs[0].ID != "local-1000" {
		t.Fatalf("message not inserted: %+v", msgs)
	}

	// Preview follows the outgoing message without flipping unread.
	for _, conv := range s.Conversations() {
		if conv.ID == "BK-10231" && conv.Preview != "hello" {
			t.Errorf("preview = %q, want %q", conv.Preview, "hello")
		}
	}

	frames := tr.sent()
	if len(frames) != 1 || frames[0].Type != chat.EventNewMessage {
		t.Fatalf("expected one new_message frame, got %+v", frames)
	}
	var p chat.OutboundMessagePayload
	if err := json.Unmarshal(frames[0].Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.TempID != "local-1000" || p.Text != "hello" {
		t.Errorf("outbound payload mismatch: %+v", p)
	}
}

func TestSendMessageValidation(t *testing.T) {
	s := newTestSession(t, nil)

	if _, err := s.SendMessage("BK-10231", "   ", ""); !errors.Is(err, chat.ErrEmptyMessage) {
		t.Errorf("whitespace message: err = %v, want %v", err, chat.ErrEmptyMessage)
	}
	if _, err := s.SendMessage("", "hello", ""); !errors.Is(err, chat.ErrNoConversation) {
		t.Errorf("missing conversation: err = %v, want %v", err, chat.ErrNoConversation)
	}
}

func TestStatusProgressionFromServer(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)

	msg, err := s.SendMessage("BK-10231", "hello", "")
	if err != nil {
		t.Fatal(err)
	}

	// First ack re-keys the optimistic entry to the server id.
	s.HandleInbound(statusFrame(t, chat.MessageStatusPayload{
		ConversationID: "BK-10231",
		MessageID:      "srv-9",
		TempID:         msg.ID,
		Status:         chat.StatusSent,
	}))

	msgs := s.Messages("BK-10231")
	if msgs[0].ID != "srv-9" || msgs[0].Status != chat.StatusSent {
		t.Fatalf("after ack: %+v", msgs[0])
	}

	for _, st := range []chat.Status{chat.StatusDelivered, chat.StatusRead} {
		s.HandleInbound(statusFrame(t, chat.MessageStatusPayload{
			ConversationID: "BK-10231",
			MessageID:      "srv-9",
			Status:         st,
		}))
	}
	if got := s.Messages("BK-10231")[0].Status; got != chat.StatusRead {
		t.Errorf("final status = %s, want %s", got, chat.StatusRead)
	}
}

func TestStatusRegressionIgnored(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)

	msg, _ := s.SendMessage("BK-10231", "hello", "")
	for _, st := range []chat.Status{chat.StatusSent, chat.StatusDelivered} {
		s.HandleInbound(statusFrame(t, chat.MessageStatusPayload{
			ConversationID: "BK-10231",
			MessageID:      msg.ID,
			Status:         st,
		}))
	}

	// Late, out-of-order update must not move the state machine backwards.
	s.HandleInbound(statusFrame(t, chat.MessageStatusPayload{
		ConversationID: "BK-10231",
		MessageID:      msg.ID,
		Status:         chat.StatusSent,
	}))
	if got := s.Messages("BK-10231")[0].Status; got != chat.StatusDelivered {
		t.Errorf("status = %s after stale update, want %s", got, chat.StatusDelivered)
	}
}

func TestAliasSurvivesRekey(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)

	msg, _ := s.SendMessage("BK-10231", "hello", "")
	s.HandleInbound(statusFrame(t, chat.MessageStatusPayload{
		ConversationID: "BK-10231",
		MessageID:      "srv-9",
		TempID:         msg.ID,
		Status:         chat.StatusSent,
	}))

	// A later update still addressed by the temp id resolves via the alias.
	s.HandleInbound(statusFrame(t, chat.MessageStatusPayload{
		ConversationID: "BK-10231",
		MessageID:      msg.ID,
		Status:         chat.StatusDelivered,
	}))
	if got := s.Messages("BK-10231")[0].Status; got != chat.StatusDelivered {
		t.Errorf("status = %s, want %s", got, chat.StatusDelivered)
	}
}

func TestOfflineSimulationChain(t *testing.T) {
	s := newTestSession(t, nil)

	msg, err := s.SendMessage("BK-10231", "hello", "")
	if err != nil {
		t.Fatal(err)
	}

	status := func() chat.Status { return s.Messages("BK-10231")[0].Status }

	waitFor(t, time.Second, func() bool { return status() == chat.StatusRead })

	// The typing flash precedes the canned reply.
	waitFor(t, time.Second, func() bool { return s.Typing("BK-10231") })
	waitFor(t, time.Second, func() bool {
		msgs := s.Messages("BK-10231")
		return len(msgs) == 2 && msgs[1].Text == SimulatedReply
	})

	if s.Typing("BK-10231") {
		t.Error("typing flash should clear when the reply lands")
	}
	reply := s.Messages("BK-10231")[1]
	if reply.Sender != chat.SenderCustomer || reply.Status != chat.StatusRead {
		t.Errorf("reply = %+v", reply)
	}
	if reply.ID == msg.ID {
		t.Error("reply should have its own id")
	}
	for _, conv := range s.Conversations() {
		if conv.ID == "BK-10231" && conv.Preview != SimulatedReply {
			t.Errorf("preview = %q, want the reply text", conv.Preview)
		}
	}
}

func TestFailedTransportSendFallsBackToSimulation(t *testing.T) {
	tr := &fakeTransport{connected: true, failSends: true}
	s := newTestSession(t, tr)

	if _, err := s.SendMessage("BK-10231", "hello", ""); err != nil {
		t.Fatal(err)
	}
	waitFor(t, time.Second, func() bool {
		msgs := s.Messages("BK-10231")
		return len(msgs) == 2 && msgs[1].Text == SimulatedReply
	})
}

func TestInboundNewMessageIsIdempotent(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)

	frame, err := chat.Encode(chat.EventNewMessage, chat.NewMessagePayload{Message: chat.Message{
		ID:             "srv-1",
		ConversationID: "BK-10198",
		Sender:         chat.SenderCustomer,
		Text:           "is it available?",
		Status:         chat.StatusDelivered,
	}})
	if err != nil {
		t.Fatal(err)
	}

	s.HandleInbound(frame)
	s.HandleInbound(frame)

	if got := len(s.Messages("BK-10198")); got != 1 {
		t.Errorf("message count = %d after duplicate delivery, want 1", got)
	}
	for _, conv := range s.Conversations() {
		if conv.ID == "BK-10198" && !conv.Unread {
			t.Error("inactive conversation should be flagged unread")
		}
	}
}

func TestInboundMessageToActiveConversationAcksRead(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)
	s.SetActiveConversation("BK-10198")

	frame, _ := chat.Encode(chat.EventNewMessage, chat.NewMessagePayload{Message: chat.Message{
		ID:             "srv-1",
		ConversationID: "BK-10198",
		Sender:         chat.SenderCustomer,
		Text:           "is it available?",
		Status:         chat.StatusDelivered,
	}})
	s.HandleInbound(frame)

	var receipts int
	for _, env := range tr.sent() {
		if env.Type == chat.EventReadReceipt {
			receipts++
		}
	}
	if receipts != 1 {
		t.Errorf("read receipts = %d, want 1", receipts)
	}
	for _, conv := range s.Conversations() {
		if conv.ID == "BK-10198" && conv.Unread {
			t.Error("active conversation must not be flagged unread")
		}
	}
}

func TestMarkReadIsBulk(t *testing.T) {
	tr := &fakeTransport{connected: true}
	msgs := map[string][]chat.Message{
		"BK-10231": {
			{ID: "m1", ConversationID: "BK-10231", Sender: chat.SenderCustomer, Text: "a", Status: chat.StatusDelivered},
			{ID: "m2", ConversationID: "BK-10231", Sender: chat.SenderCustomer, Text: "b", Status: chat.StatusDelivered},
			{ID: "m3", ConversationID: "BK-10231", Sender: chat.SenderOperator, Text: "c", Status: chat.StatusSent},
		},
	}
	s := New(tr, testConversations(), msgs, testDelays())
	t.Cleanup(s.Close)

	s.MarkRead("BK-10231")

	for _, m := range s.Messages("BK-10231") {
		if m.Sender == chat.SenderCustomer && m.Status != chat.StatusRead {
			t.Errorf("customer message %s not marked read", m.ID)
		}
		if m.Sender == chat.SenderOperator && m.Status == chat.StatusRead {
			t.Errorf("own message %s must not be marked read", m.ID)
		}
	}
	for _, conv := range s.Conversations() {
		if conv.ID == "BK-10231" && conv.Unread {
			t.Error("unread flag should clear")
		}
	}

	frames := tr.sent()
	if len(frames) != 1 || frames[0].Type != chat.EventReadReceipt {
		t.Fatalf("expected a single read_receipt, got %+v", frames)
	}
	var p chat.ReadReceiptPayload
	if err := json.Unmarshal(frames[0].Payload, &p); err != nil {
		t.Fatal(err)
	}
	if len(p.IDs()) != 2 {
		t.Errorf("receipt ids = %v, want m1 and m2", p.IDs())
	}

	// Nothing left to acknowledge: no second receipt.
	s.MarkRead("BK-10231")
	if got := len(tr.sent()); got != 1 {
		t.Errorf("frames = %d after idempotent MarkRead, want 1", got)
	}
}

func TestTypingIndicatorExpires(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)

	frame, _ := chat.Encode(chat.EventUserTyping, chat.TypingPayload{
		ConversationID: "BK-10231",
		IsTyping:       true,
	})
	s.HandleInbound(frame)

	if !s.Typing("BK-10231") {
		t.Fatal("typing indicator should be on")
	}
	// No clear event arrives; the indicator must expire on its own.
	waitFor(t, time.Second, func() bool { return !s.Typing("BK-10231") })
}

func TestTypingClearEventStopsExpiry(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)

	on, _ := chat.Encode(chat.EventUserTyping, chat.TypingPayload{ConversationID: "BK-10231", IsTyping: true})
	off, _ := chat.Encode(chat.EventUserTyping, chat.TypingPayload{ConversationID: "BK-10231", IsTyping: false})
	s.HandleInbound(on)
	s.HandleInbound(off)

	if s.Typing("BK-10231") {
		t.Error("explicit clear should turn the indicator off")
	}
}

func TestChatListUpdateReplacesList(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)

	frame, _ := chat.Encode(chat.EventChatListUpdate, chat.ChatListPayload{
		Conversations: []chat.Conversation{
			{ID: "BK-20000", CustomerName: "New Customer", Preview: "hi"},
		},
	})
	s.HandleInbound(frame)

	convs := s.Conversations()
	if len(convs) != 1 || convs[0].ID != "BK-20000" {
		t.Errorf("conversation list not replaced: %+v", convs)
	}
}

func TestMalformedAndUnknownFramesAreDropped(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)
	s.SendMessage("BK-10231", "hello", "")
	before := s.Messages("BK-10231")

	s.HandleInbound([]byte("{broken"))
	s.HandleInbound([]byte(`{"type":"presence_update","payload":{}}`))
	s.HandleInbound([]byte(`{"type":"new_message","payload":"not an object"}`))

	after := s.Messages("BK-10231")
	if len(after) != len(before) {
		t.Error("bad frames must not change session state")
	}
}

func TestRetryResendsErroredMessage(t *testing.T) {
	tr := &fakeTransport{connected: true}
	s := newTestSession(t, tr)

	msg, _ := s.SendMessage("BK-10231", "hello", "")
	if err := s.Retry("BK-10231", msg.ID); !errors.Is(err, ErrNotRetryable) {
		t.Errorf("retry of non-errored message: err = %v, want %v", err, ErrNotRetryable)
	}

	s.HandleInbound(statusFrame(t, chat.MessageStatusPayload{
		ConversationID: "BK-10231",
		MessageID:      msg.ID,
		Status:         chat.StatusError,
	}))

	if err := s.Retry("BK-10231", msg.ID); err != nil {
		t.Fatal(err)
	}
	if got := s.Messages("BK-10231")[0].Status; got != chat.StatusSending {
		t.Errorf("status = %s after retry, want %s", got, chat.StatusSending)
	}

	var sends int
	for _, env := range tr.sent() {
		if env.Type == chat.EventNewMessage {
			sends++
		}
	}
	if sends != 2 {
		t.Errorf("new_message frames = %d, want 2", sends)
	}

	if err := s.Retry("BK-10231", "missing"); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("retry of unknown message: err = %v, want %v", err, ErrUnknownMessage)
	}
}

func TestClosedSessionRejectsWork(t *testing.T) {
	s := New(nil, testConversations(), nil, testDelays())
	s.Close()

	if _, err := s.SendMessage("BK-10231", "hello", ""); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want %v", err, ErrClosed)
	}
	// Inbound frames after Close are ignored without panicking.
	s.HandleInbound([]byte(`{"type":"user_typing","payload":{"conversationId":"BK-10231","isTyping":true}}`))
	if s.Typing("BK-10231") {
		t.Error("closed session must not apply inbound events")
	}
}
