package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"

	"farmassist/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func pendingBooking(requesterID, providerID int64) *domain.Booking {
	qty := 4.0
	return &domain.Booking{
		ItemType:          domain.ItemManure,
		ItemID:            7,
		RequesterID:       requesterID,
		ProviderID:        providerID,
		RequestedQuantity: &qty,
		Status:            domain.BookingPending,
	}
}

func TestBookingRepository_UpdateStatusIfPending_OnlyOnce(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()

	b := pendingBooking(1, 2)
	require.NoError(t, repo.Create(ctx, b))

	ok, err := repo.UpdateStatusIfPending(ctx, b.ID, domain.BookingAccepted)
	assert.NoError(t, err)
	assert.True(t, ok)

	// second transition loses, regardless of target status
	ok, err = repo.UpdateStatusIfPending(ctx, b.ID, domain.BookingRejected)
	assert.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, got.Status)
}

func TestBookingRepository_DeleteIfPending(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()

	b := pendingBooking(1, 2)
	require.NoError(t, repo.Create(ctx, b))

	// wrong requester never deletes
	ok, err := repo.DeleteIfPending(ctx, b.ID, 2)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DeleteIfPending(ctx, b.ID, 1)
	assert.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookingRepository_DeleteIfPending_AcceptedStays(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()

	b := pendingBooking(1, 2)
	require.NoError(t, repo.Create(ctx, b))

	ok, err := repo.UpdateStatusIfPending(ctx, b.ID, domain.BookingAccepted)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.DeleteIfPending(ctx, b.ID, 1)
	assert.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, got.Status)
}

func TestBookingRepository_ListByUser_BothRoles(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()

	asRequester := pendingBooking(1, 2)
	asProvider := pendingBooking(3, 1)
	unrelated := pendingBooking(3, 2)
	require.NoError(t, repo.Create(ctx, asRequester))
	require.NoError(t, repo.Create(ctx, asProvider))
	require.NoError(t, repo.Create(ctx, unrelated))

	rows, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// insertion order is stable
	assert.Equal(t, asRequester.ID, rows[0].ID)
	assert.Equal(t, asProvider.ID, rows[1].ID)
}

func TestBookingRepository_MarkReconcileRequired(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()

	b := pendingBooking(1, 2)
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.MarkReconcileRequired(ctx, b.ID))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.ReconcileRequired)
}

func TestBookingRepository_SnapshotItem(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()

	first := pendingBooking(1, 2)
	second := pendingBooking(3, 2)
	other := pendingBooking(1, 2)
	other.ItemID = 8
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	snapshot := []byte(`{"manure_type":"Cow Dung","quantity":50}`)
	require.NoError(t, repo.SnapshotItem(ctx, domain.ItemManure, 7, snapshot))

	for _, id := range []int64{first.ID, second.ID} {
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.JSONEq(t, string(snapshot), string(got.ItemSnapshot))
	}

	got, err := repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ItemSnapshot)
}

func TestBookingRepository_TractorFieldsRoundTrip(t *testing.T) {
	repo := NewBookingRepository(newTestDB(t))
	ctx := context.Background()

	acres := 3.5
	b := &domain.Booking{
		ItemType:    domain.ItemTractor,
		ItemID:      3,
		RequesterID: 1,
		ProviderID:  2,
		Purpose:     domain.PurposePloughing,
		Attachment:  domain.AttachmentPlough,
		Acres:       &acres,
		Cost:        "500/acre",
		Status:      domain.BookingPending,
	}
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurposePloughing, got.Purpose)
	assert.Equal(t, domain.AttachmentPlough, got.Attachment)
	assert.Equal(t, 3.5, *got.Acres)
	assert.Equal(t, "500/acre", got.Cost)
	assert.Nil(t, got.RequestedQuantity)
}
