package chat

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEncodeDecodeEnvelope(t *testing.T) {
	data, err := Encode(EventMessageStatus, MessageStatusPayload{
		ConversationID: "BK-10231",
		MessageID:      "srv-1",
		TempID:         "local-1000",
		Status:         StatusSent,
	})
	if err != nil {
		t.Fatal(err)
	}

	env, err := DecodeEnvelope(data)
	if err != nil {
		t.Fatal(err)
	}
	if env.Type != EventMessageStatus {
		t.Fatalf("type = %s, want %s", env.Type, EventMessageStatus)
	}

	var p MessageStatusPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.MessageID != "srv-1" || p.TempID != "local-1000" || p.Status != StatusSent {
		t.Errorf("payload round trip mismatch: %+v", p)
	}
}

func TestDecodeEnvelopeMalformed(t *testing.T) {
	if _, err := DecodeEnvelope([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed frame")
	}
}

func TestEventTypeKnown(t *testing.T) {
	known := []EventType{
		EventNewMessage, EventMessageStatus, EventUserTyping,
		EventReadReceipt, EventChatListUpdate, EventError,
	}
	for _, et := range known {
		if !et.Known() {
			t.Errorf("%s should be known", et)
		}
	}
	if EventType("presence_update").Known() {
		t.Error("presence_update should be unknown")
	}
}

func TestReadReceiptIDs(t *testing.T) {
	tests := []struct {
		name string
		in   ReadReceiptPayload
		want []string
	}{
		{"bulk form", ReadReceiptPayload{MessageIDs: []string{"a", "b"}}, []string{"a", "b"}},
		{"single form", ReadReceiptPayload{MessageID: "a"}, []string{"a"}},
		{"bulk wins over single", ReadReceiptPayload{MessageID: "x", MessageIDs: []string{"a"}}, []string{"a"}},
		{"empty", ReadReceiptPayload{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.IDs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("IDs() = %v, want %v", got, tt.want)
			}
		})
	}
}
