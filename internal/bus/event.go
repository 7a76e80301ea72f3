package bus

import "time"

// Event kinds published by the core. Subscribers filter by prefix, so
// "chat." matches both match and message events.
const (
	KindMatchAdded   = "chat.match_added"
	KindMessageAdded = "chat.message_added"
	KindLikeReceived = "like.received"
	KindLikesState   = "like.state_changed"
	KindProfileSaved = "profile.saved"
	KindProfileClear = "profile.cleared"
	KindNotification = "notify.toast"
)

// Event is a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// Notification is the payload for transient user-facing toasts.
// Category is "success" or "error"; delivery is best-effort.
type Notification struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}
