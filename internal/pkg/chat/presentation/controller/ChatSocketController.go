package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"rentdesk/internal/infrastructure/realtime"
	chat "rentdesk/internal/pkg/chat/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ChatSocketController serves the realtime endpoint the dashboard's
// connection manager dials in dev. It speaks the chat wire protocol from the
// server side: acknowledges sent messages with status updates, relays typing
// and read receipts, and pushes the conversation list on attach.
type ChatSocketController struct {
	hub *realtime.Hub

	mu            sync.Mutex
	conversations []chat.Conversation
	messages      map[string][]chat.Message

	// deliveredDelay spaces the sent -> delivered acknowledgements.
	deliveredDelay time.Duration
}

// NewChatSocketController seeds the controller with the demo conversations.
func NewChatSocketController(hub *realtime.Hub) *ChatSocketController {
	return &ChatSocketController{
		hub:            hub,
		conversations:  chat.SeedConversations(),
		messages:       chat.SeedMessages(),
		deliveredDelay: 500 * time.Millisecond,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Dev server only; no origin policy.
		return true
	},
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades the request and processes frames until the dashboard
// disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(ws)
		ctl.hub.Attach(conn)
		defer func() {
			ctl.hub.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		ctl.pushChatList(conn)

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.replyError(conn, "read_error", err.Error())
				return
			}

			env, err := chat.DecodeEnvelope(data)
			if err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch env.Type {
			case chat.EventNewMessage:
				ctl.handleNewMessage(conn, env.Payload)
			case chat.EventUserTyping:
				ctl.handleTyping(conn, env.Payload)
			case chat.EventReadReceipt:
				ctl.handleReadReceipt(conn, env.Payload)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

// handleNewMessage stores the operator message under a server-assigned id,
// acks it as sent (carrying the temp id so the client can re-key its
// optimistic entry), relays it to other sessions, and acks delivered after a
// short delay.
func (ctl *ChatSocketController) handleNewMessage(conn *realtime.Connection, payload json.RawMessage) {
	var p chat.OutboundMessagePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		ctl.replyError(conn, "bad_request", "invalid new_message payload")
		return
	}
	if p.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversationId is required")
		return
	}

	msg, err := chat.NewMessage(chat.Message{
		ID:             uuid.NewString(),
		ConversationID: p.ConversationID,
		Sender:         chat.SenderOperator,
		Text:           p.Text,
		ImageURL:       p.ImageURL,
		Status:         chat.StatusSent,
	})
	if err != nil {
		ctl.replyError(conn, "bad_request", err.Error())
		return
	}

	ctl.mu.Lock()
	ctl.messages[msg.ConversationID] = append(ctl.messages[msg.ConversationID], *msg)
	for i := range ctl.conversations {
		if ctl.conversations[i].ID == msg.ConversationID {
			ctl.conversations[i].Preview = msg.Text
			ctl.conversations[i].Timestamp = msg.Timestamp
		}
	}
	ctl.mu.Unlock()

	ctl.sendEvent(conn, chat.EventMessageStatus, chat.MessageStatusPayload{
		ConversationID: msg.ConversationID,
		MessageID:      msg.ID,
		TempID:         p.TempID,
		Status:         chat.StatusSent,
	})

	if out, err := chat.Encode(chat.EventNewMessage, chat.NewMessagePayload{Message: *msg}); err == nil {
		ctl.hub.Broadcast(out, conn.ID)
	}

	connID := conn.ID
	msgID := msg.ID
	convID := msg.ConversationID
	time.AfterFunc(ctl.deliveredDelay, func() {
		ack, err := chat.Encode(chat.EventMessageStatus, chat.MessageStatusPayload{
			ConversationID: convID,
			MessageID:      msgID,
			Status:         chat.StatusDelivered,
		})
		if err != nil {
			return
		}
		if !ctl.hub.Notify(connID, ack) {
			log.Printf("chat socket: delivered ack dropped for %s", msgID)
		}
	})
}

func (ctl *ChatSocketController) handleTyping(conn *realtime.Connection, payload json.RawMessage) {
	var p chat.TypingPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "invalid user_typing payload")
		return
	}
	if out, err := chat.Encode(chat.EventUserTyping, p); err == nil {
		ctl.hub.Broadcast(out, conn.ID)
	}
}

func (ctl *ChatSocketController) handleReadReceipt(conn *realtime.Connection, payload json.RawMessage) {
	var p chat.ReadReceiptPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "invalid read_receipt payload")
		return
	}

	ctl.mu.Lock()
	msgs := ctl.messages[p.ConversationID]
	for _, id := range p.IDs() {
		for i := range msgs {
			if msgs[i].ID == id && msgs[i].Status.CanAdvanceTo(chat.StatusRead) {
				msgs[i].Status = chat.StatusRead
			}
		}
	}
	for i := range ctl.conversations {
		if ctl.conversations[i].ID == p.ConversationID {
			ctl.conversations[i].Unread = false
		}
	}
	ctl.mu.Unlock()

	if out, err := chat.Encode(chat.EventReadReceipt, p); err == nil {
		ctl.hub.Broadcast(out, conn.ID)
	}
}

func (ctl *ChatSocketController) pushChatList(conn *realtime.Connection) {
	ctl.mu.Lock()
	list := append([]chat.Conversation(nil), ctl.conversations...)
	ctl.mu.Unlock()

	ctl.sendEvent(conn, chat.EventChatListUpdate, chat.ChatListPayload{Conversations: list})
}

func (ctl *ChatSocketController) sendEvent(conn *realtime.Connection, t chat.EventType, payload any) {
	out, err := chat.Encode(t, payload)
	if err != nil {
		log.Printf("chat socket: encode %s: %v", t, err)
		return
	}
	_ = conn.Send(out)
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	ctl.sendEvent(conn, chat.EventError, chat.ErrorPayload{Code: code, Message: message})
}
