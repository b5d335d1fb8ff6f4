package booking

import (
	"context"

	"farmassist/internal/domain"
)

// BookingRepository is the persistence contract for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateStatusIfPending(ctx context.Context, id int64, status domain.BookingStatus) (bool, error)
	MarkReconcileRequired(ctx context.Context, id int64) error
	DeleteIfPending(ctx context.Context, id, requesterID int64) (bool, error)
}

// ItemRegistry is one of the three inventory collections a booking can
// reference. The engine holds one registry per item type and dispatches on
// the booking's tag instead of comparing type strings inline.
type ItemRegistry interface {
	Get(ctx context.Context, id int64) (*domain.ItemSummary, error)
	Debit(ctx context.Context, id int64, qty float64) error
}

// UserDirectory resolves requester/provider records for list expansion.
type UserDirectory interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error)
}

// NotificationSender delivers booking outcome messages. Best effort: the
// lifecycle never fails because a notification did.
type NotificationSender interface {
	NotifyBookingRequested(ctx context.Context, providerID int64, b *domain.Booking, item *domain.ItemSummary) error
	NotifyBookingAccepted(ctx context.Context, requesterID int64, b *domain.Booking) error
	NotifyBookingRejected(ctx context.Context, requesterID int64, b *domain.Booking) error
}
