package domain

import "time"

type NotificationType string

const (
	NotifSuccess NotificationType = "success"
	NotifError   NotificationType = "error"
)

// Notification is an append-only per-user log entry. Entries are never
// updated except for the read marker.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
