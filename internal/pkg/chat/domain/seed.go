package chat

// SeedConversations returns the demo support threads the dashboard boots with.
func SeedConversations() []Conversation {
	return []Conversation{
		{
			ID:           "BK-10231",
			CustomerName: "Sarah Johnson",
			Preview:      "Hi, I have a question...",
			Timestamp:    "10:15 AM",
			Unread:       true,
		},
		{
			ID:           "BK-10198",
			CustomerName: "Michael Brown",
			Preview:      "When will my dress be ready?",
			Timestamp:    "Yesterday",
			Unread:       false,
		},
		{
			ID:           "BK-10144",
			CustomerName: "Emma Wilson",
			Preview:      "Thanks for your help!",
			Timestamp:    "Mon",
			Unread:       false,
		},
	}
}

// SeedMessages returns the demo message history keyed by conversation id.
func SeedMessages() map[string][]Message {
	return map[string][]Message{
		"BK-10231": {
			{ID: "1", ConversationID: "BK-10231", Sender: SenderCustomer, Text: "Hi, Mandy", Timestamp: "09:41 AM", Status: StatusRead},
			{ID: "2", ConversationID: "BK-10231", Sender: SenderCustomer, Text: "I've tried the app", Timestamp: "09:41 AM", Status: StatusRead},
			{ID: "3", ConversationID: "BK-10231", Sender: SenderOperator, Text: "Really?", Timestamp: "09:41 AM", Status: StatusRead},
		},
		"BK-10198": {
			{ID: "1", ConversationID: "BK-10198", Sender: SenderCustomer, Text: "When will my dress be ready for pickup?", Timestamp: "Yesterday", Status: StatusRead},
		},
		"BK-10144": {
			{ID: "1", ConversationID: "BK-10144", Sender: SenderCustomer, Text: "Thanks for your help with my booking!", Timestamp: "Mon", Status: StatusRead},
		},
	}
}

// QuickReplies are the canned operator responses offered by the compose box.
func QuickReplies() []string {
	return []string{
		"If you have any questions about care or fit, feel free to ask!",
		"Just confirming your booking — the dress will be ready for pickup from [time].",
		"Thanks for booking with me! Let me know what time works best for local pickup.",
	}
}
