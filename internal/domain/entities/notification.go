package entities

import "time"

// NotificationVariant drives how the message is rendered by the operator UI.
type NotificationVariant string

const (
	NotificationSuccess NotificationVariant = "success"
	NotificationError   NotificationVariant = "error"
	NotificationInfo    NotificationVariant = "info"
	NotificationWarning NotificationVariant = "warning"
)

// Notification is an ephemeral, fire-and-forget message emitted when a
// mutation settles. It is never persisted.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
	Actor       string              `json:"actor,omitempty"`
	EmittedAt   time.Time           `json:"emitted_at"`
}
