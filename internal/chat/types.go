package chat

import (
	"time"

	"sparkd/internal/directory"
)

// Sender identifies which side of a conversation produced a message.
type Sender string

const (
	// SenderLocal is the device owner.
	SenderLocal Sender = "local"
	// SenderMatched is the matched user on the other side.
	SenderMatched Sender = "matched"
)

// Message is one entry in a conversation log. Logs are append-only;
// messages are never reordered or deleted.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// MatchAdded is the bus payload published when a user enters the match set.
type MatchAdded struct {
	User directory.User
}

// MessageAdded is the bus payload published for every accepted append.
type MessageAdded struct {
	MatchID string
	Message Message
}
