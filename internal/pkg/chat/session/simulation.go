package session

import (
	"fmt"
	"sync"
	"time"

	chat "rentdesk/internal/pkg/chat/domain"
)

// SimulatedReply is the canned customer response injected at the end of the
// offline delivery chain.
const SimulatedReply = "Thanks for the information!"

// Delays configures the local delivery simulation and the typing auto-expiry
// timeout. Zero fields fall back to the production values; tests shrink them.
type Delays struct {
	Sent         time.Duration // sending -> sent
	Delivered    time.Duration // sent -> delivered
	Read         time.Duration // delivered -> read
	Reply        time.Duration // typing flash before the canned reply lands
	TypingExpiry time.Duration
}

// DefaultDelays returns the production simulation timings.
func DefaultDelays() Delays {
	return Delays{
		Sent:         time.Second,
		Delivered:    time.Second,
		Read:         time.Second,
		Reply:        3 * time.Second,
		TypingExpiry: 5 * time.Second,
	}
}

func (d Delays) withDefaults() Delays {
	def := DefaultDelays()
	if d.Sent <= 0 {
		d.Sent = def.Sent
	}
	if d.Delivered <= 0 {
		d.Delivered = def.Delivered
	}
	if d.Read <= 0 {
		d.Read = def.Read
	}
	if d.Reply <= 0 {
		d.Reply = def.Reply
	}
	if d.TypingExpiry <= 0 {
		d.TypingExpiry = def.TypingExpiry
	}
	return d
}

// simStep is one pending transition in the offline delivery chain.
type simStep int

const (
	stepSent simStep = iota
	stepDelivered
	stepRead
	stepReply
)

// simulator drives the local delivery simulation: a fixed chain of delayed
// status transitions ending in a synthesized customer reply. Each pending
// transition is one cancellable timer, so teardown is a single bounded sweep
// rather than a hunt through nested callbacks.
type simulator struct {
	session *Session

	mu     sync.Mutex
	closed bool
	timers map[string]*time.Timer // message id -> pending timer
}

func newSimulator(s *Session) *simulator {
	return &simulator{session: s, timers: make(map[string]*time.Timer)}
}

// start queues the first transition for an optimistic message.
func (sim *simulator) start(conversationID, messageID string) {
	sim.schedule(conversationID, messageID, stepSent, sim.session.delays.Sent)
}

// cancelAll stops every pending transition.
func (sim *simulator) cancelAll() {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.closed = true
	for id, t := range sim.timers {
		t.Stop()
		delete(sim.timers, id)
	}
}

func (sim *simulator) schedule(conversationID, messageID string, step simStep, delay time.Duration) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	if sim.closed {
		return
	}
	if prev, ok := sim.timers[messageID]; ok {
		prev.Stop()
	}
	sim.timers[messageID] = time.AfterFunc(delay, func() {
		sim.fire(conversationID, messageID, step)
	})
}

func (sim *simulator) fire(conversationID, messageID string, step simStep) {
	sim.mu.Lock()
	if sim.closed {
		sim.mu.Unlock()
		return
	}
	delete(sim.timers, messageID)
	sim.mu.Unlock()

	s := sim.session
	d := s.delays

	switch step {
	case stepSent:
		s.applyStatus(conversationID, messageID, chat.StatusSent)
		sim.schedule(conversationID, messageID, stepDelivered, d.Delivered)
	case stepDelivered:
		s.applyStatus(conversationID, messageID, chat.StatusDelivered)
		sim.schedule(conversationID, messageID, stepRead, d.Read)
	case stepRead:
		s.applyStatus(conversationID, messageID, chat.StatusRead)
		s.mu.Lock()
		if !s.closed {
			s.setTypingLocked(conversationID, true, false)
		}
		s.mu.Unlock()
		sim.schedule(conversationID, messageID, stepReply, d.Reply)
	case stepReply:
		sim.injectReply(conversationID)
	}
}

// injectReply clears the typing flash and appends the canned customer reply.
func (sim *simulator) injectReply(conversationID string) {
	s := sim.session

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.setTypingLocked(conversationID, false, false)
	reply := chat.Message{
		ID:             fmt.Sprintf("local-%d", s.nextLocalID),
		ConversationID: conversationID,
		Sender:         chat.SenderCustomer,
		Text:           SimulatedReply,
		Timestamp:      chat.ClockStamp(time.Now()),
		Status:         chat.StatusRead,
	}
	s.nextLocalID++
	s.messages[conversationID] = append(s.messages[conversationID], reply)
	s.updatePreviewLocked(conversationID, reply.Text, reply.Timestamp, false)
	s.mu.Unlock()
}

// applyStatus is the unlocked entry point the simulator uses.
func (s *Session) applyStatus(conversationID, messageID string, status chat.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.applyStatusLocked(conversationID, messageID, status)
}
