package chat

// Conversation is a single customer-support thread, keyed by a booking-like
// identifier. Preview and Timestamp are the denormalized last-message summary
// shown in the conversation list.
type Conversation struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	Preview      string `json:"preview"`
	Timestamp    string `json:"timestamp"`
	Unread       bool   `json:"unread"`
}
