package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"farmassist/internal/domain"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	if n != nil {
		n.ID = 42
	}
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newTestService(repo NotificationRepository) *Service {
	return NewService(repo, NewHub(), zerolog.Nop())
}

func TestService_Append(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(repo)
	n, err := svc.Append(context.Background(), 5, domain.NotifSuccess, "A booking request for your Manure awaits your action")

	assert.NoError(t, err)
	assert.Equal(t, int64(42), n.ID)
	assert.Equal(t, int64(5), n.UserID)
	assert.False(t, n.IsRead)
	repo.AssertExpectations(t)
}

func TestService_NotifyBookingRequested_IncludesItemName(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 2 &&
			n.Type == domain.NotifSuccess &&
			n.Message == "A booking request for your Cow Dung (Manure) awaits your action"
	})).Return(nil)

	svc := newTestService(repo)
	b := &domain.Booking{ID: 1, ItemType: domain.ItemManure, ProviderID: 2}
	item := &domain.ItemSummary{ID: 7, Type: domain.ItemManure, Name: "Cow Dung"}

	err := svc.NotifyBookingRequested(context.Background(), 2, b, item)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_NotifyBookingRejected_UsesErrorType(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifError && n.Message == "Your Tractor booking was rejected"
	})).Return(nil)

	svc := newTestService(repo)
	b := &domain.Booking{ID: 1, ItemType: domain.ItemTractor, RequesterID: 3}

	err := svc.NotifyBookingRejected(context.Background(), 3, b)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Notify_ReturnsRepoError(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	svc := newTestService(repo)
	b := &domain.Booking{ID: 1, ItemType: domain.ItemManure, RequesterID: 3}

	err := svc.NotifyBookingAccepted(context.Background(), 3, b)

	assert.Error(t, err)
}

func TestService_Notify_SurvivesCancelledCaller(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("Create", mock.MatchedBy(func(ctx context.Context) bool {
		// the relay runs on its own deadline, detached from the caller
		return ctx.Err() == nil
	}), mock.Anything).Return(nil)

	svc := newTestService(repo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &domain.Booking{ID: 1, ItemType: domain.ItemNurseryCrop, RequesterID: 3}
	err := svc.NotifyBookingAccepted(ctx, 3, b)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestHub_SendToUser_Offline(t *testing.T) {
	hub := NewHub()

	assert.False(t, hub.IsOnline(9))
	assert.False(t, hub.SendToUser(9, map[string]string{"hello": "world"}))
}
