package domain

import (
	"encoding/json"
	"time"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingAccepted BookingStatus = "accepted"
	BookingRejected BookingStatus = "rejected"
)

type TractorPurpose string

const (
	PurposePloughing     TractorPurpose = "Ploughing"
	PurposeLoadTransport TractorPurpose = "Load Transport"
)

func (p TractorPurpose) Valid() bool {
	return p == PurposePloughing || p == PurposeLoadTransport
}

// Booking is a request by one user (the requester) to consume a unit of
// another user's (the provider) listed item. ItemType names the registry
// ItemID resolves in; the reference is soft, so a deleted item leaves
// ItemID dangling and ItemSnapshot carries the last known item state.
type Booking struct {
	ID           int64           `json:"id"`
	ItemType     ItemType        `json:"item_type"`
	ItemID       int64           `json:"item_id"`
	ItemSnapshot json.RawMessage `json:"item_snapshot,omitempty"`
	RequesterID  int64           `json:"requester_id"`
	ProviderID   int64           `json:"provider_id"`

	// Manure / NurseryCrop bookings.
	RequestedQuantity *float64 `json:"requested_quantity,omitempty"`

	// Tractor bookings.
	Purpose    TractorPurpose    `json:"purpose,omitempty"`
	Attachment TractorAttachment `json:"attachment,omitempty"`
	Acres      *float64          `json:"acres,omitempty"`
	Date       *time.Time        `json:"date,omitempty"`
	Cost       string            `json:"cost,omitempty"`

	Status BookingStatus `json:"status"`

	// Set when an accepted booking's debit failed after the status write
	// already committed; such bookings need manual stock reconciliation.
	ReconcileRequired bool `json:"reconcile_required,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingDetails is the expanded read view returned by list endpoints.
type BookingDetails struct {
	Booking
	Item      *ItemSummary `json:"item,omitempty"`
	Requester *User        `json:"requester,omitempty"`
	Provider  *User        `json:"provider,omitempty"`
}
