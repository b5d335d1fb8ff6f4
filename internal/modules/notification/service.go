package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"farmassist/internal/domain"
	"farmassist/internal/metrics"
)

const appendTimeout = 2 * time.Second

// Service is the notification relay: an append-only per-user message log
// plus an opportunistic websocket push for connected clients.
type Service struct {
	repo NotificationRepository
	hub  *Hub
	log  zerolog.Logger
}

func NewService(repo NotificationRepository, hub *Hub, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		hub:  hub,
		log:  log,
	}
}

// Append stores a notification and pushes it to the recipient if online.
func (s *Service) Append(ctx context.Context, userID int64, notifType domain.NotificationType, message string) (*domain.Notification, error) {
	n := &domain.Notification{
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	metrics.IncNotification(string(notifType))

	if s.hub != nil {
		s.hub.SendToUser(userID, n)
	}
	return n, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// notify runs an append under its own bounded deadline so a slow relay
// never stalls a booking response, and logs instead of propagating.
func (s *Service) notify(ctx context.Context, userID int64, notifType domain.NotificationType, message string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), appendTimeout)
	defer cancel()

	if _, err := s.Append(ctx, userID, notifType, message); err != nil {
		s.log.Error().
			Err(err).
			Int64("user_id", userID).
			Str("type", string(notifType)).
			Msg("notification delivery failed")
		return err
	}
	return nil
}

func (s *Service) NotifyBookingRequested(ctx context.Context, providerID int64, b *domain.Booking, item *domain.ItemSummary) error {
	name := string(b.ItemType)
	if item != nil && item.Name != "" {
		name = fmt.Sprintf("%s (%s)", item.Name, b.ItemType)
	}
	msg := fmt.Sprintf("A booking request for your %s awaits your action", name)
	return s.notify(ctx, providerID, domain.NotifSuccess, msg)
}

func (s *Service) NotifyBookingAccepted(ctx context.Context, requesterID int64, b *domain.Booking) error {
	msg := fmt.Sprintf("Your %s booking was accepted", b.ItemType)
	return s.notify(ctx, requesterID, domain.NotifSuccess, msg)
}

func (s *Service) NotifyBookingRejected(ctx context.Context, requesterID int64, b *domain.Booking) error {
	msg := fmt.Sprintf("Your %s booking was rejected", b.ItemType)
	return s.notify(ctx, requesterID, domain.NotifError, msg)
}
