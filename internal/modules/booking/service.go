package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"farmassist/internal/domain"
	"farmassist/internal/metrics"
	"farmassist/internal/repository"
)

// Service is the booking lifecycle engine: it validates creation, guards
// the pending -> accepted/rejected transition and runs the inventory debit
// and notification side effects.
type Service struct {
	bookings   BookingRepository
	registries map[domain.ItemType]ItemRegistry
	users      UserDirectory
	notifs     NotificationSender
}

func NewService(
	bookings BookingRepository,
	registries map[domain.ItemType]ItemRegistry,
	users UserDirectory,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings:   bookings,
		registries: registries,
		users:      users,
		notifs:     notifs,
	}
}

func (s *Service) registry(t domain.ItemType) (ItemRegistry, bool) {
	reg, ok := s.registries[t]
	return reg, ok
}

func validateCreate(requesterID int64, req CreateBookingRequest) (*domain.Booking, error) {
	verr := newValidationError()

	itemType := domain.ItemType(req.ItemType)
	switch {
	case req.ItemType == "":
		verr.add("item_type", "required")
	case !itemType.Valid():
		verr.add("item_type", "must be Manure, Tractor or NurseryCrop")
	}
	if req.ItemID <= 0 {
		verr.add("item_id", "required")
	}
	if req.ProviderID <= 0 {
		verr.add("provider_id", "required")
	} else if req.ProviderID == requesterID {
		verr.add("provider_id", "must differ from requester")
	}

	b := &domain.Booking{
		ItemType:    itemType,
		ItemID:      req.ItemID,
		RequesterID: requesterID,
		ProviderID:  req.ProviderID,
		Status:      domain.BookingPending,
	}

	switch itemType {
	case domain.ItemManure, domain.ItemNurseryCrop:
		if req.Quantity == nil {
			verr.add("quantity", "required")
		} else if *req.Quantity <= 0 {
			verr.add("quantity", "must be positive")
		} else {
			b.RequestedQuantity = req.Quantity
		}
		b.Cost = req.Cost

	case domain.ItemTractor:
		if req.Date == nil {
			verr.add("date", "required")
		}
		purpose := domain.TractorPurpose(req.Purpose)
		switch {
		case req.Purpose == "":
			verr.add("purpose", "required")
		case !purpose.Valid():
			verr.add("purpose", "must be Ploughing or Load Transport")
		}
		attachment := domain.TractorAttachment(req.Attachment)
		switch {
		case req.Attachment == "":
			verr.add("attachment", "required")
		case !attachment.Valid():
			verr.add("attachment", "unknown attachment")
		}
		if req.Cost == "" {
			verr.add("cost", "required")
		}
		if purpose == domain.PurposePloughing {
			if req.Acres == nil {
				verr.add("acres", "required for ploughing")
			} else if *req.Acres <= 0 {
				verr.add("acres", "must be positive")
			} else {
				b.Acres = req.Acres
			}
		}
		b.Purpose = purpose
		b.Attachment = attachment
		b.Date = req.Date
		b.Cost = req.Cost
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBooking validates the request, checks the item reference against
// its registry and persists a pending booking. The provider is notified
// best-effort; a failed notification never rolls the booking back.
func (s *Service) CreateBooking(ctx context.Context, requesterID int64, req CreateBookingRequest) (*domain.Booking, error) {
	b, err := validateCreate(requesterID, req)
	if err != nil {
		return nil, err
	}

	reg, ok := s.registry(b.ItemType)
	if !ok {
		verr := newValidationError()
		verr.add("item_type", "unknown item type")
		return nil, verr
	}

	item, err := reg.Get(ctx, b.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	metrics.IncBookingTransition("created")

	_ = s.notifs.NotifyBookingRequested(ctx, b.ProviderID, b, item)

	return b, nil
}

// Accept transitions a pending booking to accepted and debits the item's
// stock exactly once. The status write commits before the debit is
// attempted; a failed debit leaves the booking accepted but flagged for
// reconciliation and surfaces the error to the caller.
func (s *Service) Accept(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.ProviderID != actorID {
		return nil, ErrForbidden
	}

	ok, err := s.bookings.UpdateStatusIfPending(ctx, bookingID, domain.BookingAccepted)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race or the booking was already finalized.
		if _, err := s.bookings.GetByID(ctx, bookingID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInvalidStatus
	}
	b.Status = domain.BookingAccepted
	metrics.IncBookingTransition("accepted")

	if err := s.debitItem(ctx, b); err != nil {
		if flagErr := s.bookings.MarkReconcileRequired(ctx, bookingID); flagErr == nil {
			b.ReconcileRequired = true
		}
		metrics.IncBookingTransition("debit_failed")
		return nil, err
	}

	_ = s.notifs.NotifyBookingAccepted(ctx, b.RequesterID, b)

	return b, nil
}

func (s *Service) debitItem(ctx context.Context, b *domain.Booking) error {
	reg, ok := s.registry(b.ItemType)
	if !ok {
		return ErrItemNotFound
	}

	qty := 1.0
	if b.RequestedQuantity != nil {
		qty = *b.RequestedQuantity
	}

	err := reg.Debit(ctx, b.ItemID, qty)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrInsufficientStock):
		return ErrInsufficientStock
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrItemNotFound
	default:
		return err
	}
}

// Reject transitions a pending booking to rejected. No inventory effect.
func (s *Service) Reject(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.ProviderID != actorID {
		return nil, ErrForbidden
	}

	ok, err := s.bookings.UpdateStatusIfPending(ctx, bookingID, domain.BookingRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := s.bookings.GetByID(ctx, bookingID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInvalidStatus
	}
	b.Status = domain.BookingRejected
	metrics.IncBookingTransition("rejected")

	_ = s.notifs.NotifyBookingRejected(ctx, b.RequesterID, b)

	return b, nil
}

// Cancel hard-deletes a pending booking. Only the original requester may
// cancel, and only while the booking is still pending.
func (s *Service) Cancel(ctx context.Context, bookingID, actorID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if b.RequesterID != actorID {
		return ErrForbidden
	}
	if b.Status != domain.BookingPending {
		return ErrInvalidStatus
	}

	ok, err := s.bookings.DeleteIfPending(ctx, bookingID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		// The status flipped between the read and the delete.
		if _, err := s.bookings.GetByID(ctx, bookingID); errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return ErrInvalidStatus
	}
	metrics.IncBookingTransition("cancelled")
	return nil
}

// ListByUser returns every booking where the user is requester or provider,
// with item, requester and provider expanded. Bookings whose item has been
// deleted keep their stored snapshot and a nil item.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetails, error) {
	rows, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(rows)*2)
	seen := make(map[int64]bool, len(rows)*2)
	for _, b := range rows {
		for _, id := range []int64{b.RequesterID, b.ProviderID} {
			if !seen[id] {
				seen[id] = true
				userIDs = append(userIDs, id)
			}
		}
	}

	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BookingDetails, 0, len(rows))
	for _, b := range rows {
		d := domain.BookingDetails{
			Booking:   b,
			Requester: users[b.RequesterID],
			Provider:  users[b.ProviderID],
		}
		if reg, ok := s.registry(b.ItemType); ok {
			if item, err := reg.Get(ctx, b.ItemID); err == nil {
				d.Item = item
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		out = append(out, d)
	}
	return out, nil
}
