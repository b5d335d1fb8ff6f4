package listing

import (
	"context"

	"farmassist/internal/domain"
)

type ManureStore interface {
	Create(ctx context.Context, d *domain.Manure) error
	GetByID(ctx context.Context, id int64) (*domain.Manure, error)
	List(ctx context.Context) ([]domain.Manure, error)
	Delete(ctx context.Context, id int64) error
}

type TractorStore interface {
	Create(ctx context.Context, d *domain.Tractor) error
	GetByID(ctx context.Context, id int64) (*domain.Tractor, error)
	GetByRegistration(ctx context.Context, registration string) (*domain.Tractor, error)
	List(ctx context.Context) ([]domain.Tractor, error)
	Delete(ctx context.Context, id int64) error
}

type NurseryCropStore interface {
	Create(ctx context.Context, d *domain.NurseryCrop) error
	GetByID(ctx context.Context, id int64) (*domain.NurseryCrop, error)
	List(ctx context.Context) ([]domain.NurseryCrop, error)
	Delete(ctx context.Context, id int64) error
}

// BookingArchiver denormalizes a deleted item into the bookings that
// reference it, keeping historical bookings displayable.
type BookingArchiver interface {
	SnapshotItem(ctx context.Context, itemType domain.ItemType, itemID int64, snapshot []byte) error
}
