package repository

import (
	"context"
	"encoding/json"
	"time"

	"farmassist/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	ItemType          string     `gorm:"column:item_type;index:idx_bookings_item,priority:1"`
	ItemID            int64      `gorm:"column:item_id;index:idx_bookings_item,priority:2"`
	ItemSnapshot      []byte     `gorm:"column:item_snapshot"`
	RequesterID       int64      `gorm:"column:requester_id;index"`
	ProviderID        int64      `gorm:"column:provider_id;index"`
	RequestedQuantity *float64   `gorm:"column:requested_quantity"`
	Purpose           *string    `gorm:"column:purpose"`
	Attachment        *string    `gorm:"column:attachment"`
	Acres             *float64   `gorm:"column:acres"`
	Date              *time.Time `gorm:"column:date"`
	Cost              *string    `gorm:"column:cost"`
	Status            string     `gorm:"column:status"`
	ReconcileRequired bool       `gorm:"column:reconcile_required"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:                m.ID,
		ItemType:          domain.ItemType(m.ItemType),
		ItemID:            m.ItemID,
		RequesterID:       m.RequesterID,
		ProviderID:        m.ProviderID,
		RequestedQuantity: m.RequestedQuantity,
		Acres:             m.Acres,
		Date:              m.Date,
		Status:            domain.BookingStatus(m.Status),
		ReconcileRequired: m.ReconcileRequired,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if len(m.ItemSnapshot) > 0 {
		b.ItemSnapshot = json.RawMessage(m.ItemSnapshot)
	}
	if m.Purpose != nil {
		b.Purpose = domain.TractorPurpose(*m.Purpose)
	}
	if m.Attachment != nil {
		b.Attachment = domain.TractorAttachment(*m.Attachment)
	}
	if m.Cost != nil {
		b.Cost = *m.Cost
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:                b.ID,
		ItemType:          string(b.ItemType),
		ItemID:            b.ItemID,
		RequesterID:       b.RequesterID,
		ProviderID:        b.ProviderID,
		RequestedQuantity: b.RequestedQuantity,
		Acres:             b.Acres,
		Date:              b.Date,
		Status:            string(b.Status),
		ReconcileRequired: b.ReconcileRequired,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
	if len(b.ItemSnapshot) > 0 {
		m.ItemSnapshot = []byte(b.ItemSnapshot)
	}
	if b.Purpose != "" {
		v := string(b.Purpose)
		m.Purpose = &v
	}
	if b.Attachment != "" {
		v := string(b.Attachment)
		m.Attachment = &v
	}
	if b.Cost != "" {
		v := b.Cost
		m.Cost = &v
	}
	return m
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ListByUser returns every booking where the user is requester or provider,
// in insertion order so list output stays stable.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("requester_id = ? OR provider_id = ?", userID, userID).
		Order("created_at ASC, id ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// UpdateStatusIfPending flips the booking into a terminal status only if it
// is still pending. The conditional UPDATE is the transition guard: of two
// racing accepts exactly one sees RowsAffected == 1.
func (r *BookingRepository) UpdateStatusIfPending(ctx context.Context, id int64, status domain.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.BookingPending)).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkReconcileRequired flags an accepted booking whose inventory debit
// failed after the status write had committed.
func (r *BookingRepository) MarkReconcileRequired(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("reconcile_required", true).Error
}

// DeleteIfPending removes a booking only while it is still pending and
// owned by the given requester. Cancellation races an accept the same way
// two accepts race each other, so the guard lives in the UPDATE/DELETE.
func (r *BookingRepository) DeleteIfPending(ctx context.Context, id, requesterID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND requester_id = ? AND status = ?", id, requesterID, string(domain.BookingPending)).
		Delete(&bookingModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SnapshotItem denormalizes a deleted item into every booking that
// references it, so historical bookings remain displayable after the
// registry row is gone.
func (r *BookingRepository) SnapshotItem(ctx context.Context, itemType domain.ItemType, itemID int64, snapshot []byte) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("item_type = ? AND item_id = ?", string(itemType), itemID).
		Update("item_snapshot", snapshot).Error
}
