package booking

import "time"

// CreateBookingRequest covers all three item types; type-conditional fields
// are validated in the service, not by binding tags, so partial payloads
// come back with field-level detail instead of a generic bind error.
type CreateBookingRequest struct {
	ItemID     int64      `json:"item_id"`
	ItemType   string     `json:"item_type"`
	ProviderID int64      `json:"provider_id"`
	Quantity   *float64   `json:"quantity,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Purpose    string     `json:"purpose,omitempty"`
	Attachment string     `json:"attachment,omitempty"`
	Acres      *float64   `json:"acres,omitempty"`
	Cost       string     `json:"cost,omitempty"`
}
