package listing

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"farmassist/internal/domain"
	"farmassist/internal/pkg/validator"
)

// Service owns the three item registries' read/write surface. The booking
// engine only sees the registries through Get/Debit; everything here is
// listing management for the owners.
type Service struct {
	manures  ManureStore
	tractors TractorStore
	crops    NurseryCropStore
	bookings BookingArchiver
}

func NewService(
	manures ManureStore,
	tractors TractorStore,
	crops NurseryCropStore,
	bookings BookingArchiver,
) *Service {
	return &Service{
		manures:  manures,
		tractors: tractors,
		crops:    crops,
		bookings: bookings,
	}
}

/* ---------- MANURE ---------- */

func (s *Service) CreateManure(ctx context.Context, ownerID int64, req CreateManureRequest) (*domain.Manure, error) {
	m := &domain.Manure{
		ManureType:  req.ManureType,
		Quantity:    req.Quantity,
		CostPerKg:   req.CostPerKg,
		Address:     req.Address,
		Description: req.Description,
		Lat:         req.Lat,
		Lng:         req.Lng,
		PostedBy:    ownerID,
	}
	if fields := validator.Validate(m); fields != nil {
		return nil, ErrValidation
	}
	if err := s.manures.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListManure(ctx context.Context) ([]domain.Manure, error) {
	return s.manures.List(ctx)
}

func (s *Service) GetManure(ctx context.Context, id int64) (*domain.Manure, error) {
	m, err := s.manures.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return m, nil
}

// DeleteManure removes a listing after denormalizing it into any bookings
// that reference it. Only the poster may delete.
func (s *Service) DeleteManure(ctx context.Context, ownerID, id int64) error {
	m, err := s.manures.GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if m.PostedBy != ownerID {
		return ErrForbidden
	}

	if err := s.snapshotInto(ctx, domain.ItemManure, id, m); err != nil {
		return err
	}
	return mapNotFound(s.manures.Delete(ctx, id))
}

/* ---------- TRACTOR ---------- */

func (s *Service) CreateTractor(ctx context.Context, ownerID int64, req CreateTractorRequest) (*domain.Tractor, error) {
	if _, err := s.tractors.GetByRegistration(ctx, req.RegistrationNumber); err == nil {
		return nil, ErrDuplicateRegistration
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	attachments := make([]domain.TractorAttachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		att := domain.TractorAttachment(a)
		if !att.Valid() || att == domain.AttachmentNone {
			return nil, ErrValidation
		}
		attachments = append(attachments, att)
	}

	t := &domain.Tractor{
		OwnerID:            ownerID,
		Brand:              req.Brand,
		ModelNumber:        req.ModelNumber,
		RegistrationNumber: req.RegistrationNumber,
		EngineCapacity:     req.EngineCapacity,
		FuelType:           domain.FuelType(req.FuelType),
		Attachments:        attachments,
		Available:          req.Available,
		Lat:                req.Lat,
		Lng:                req.Lng,
	}
	if fields := validator.Validate(t); fields != nil {
		return nil, ErrValidation
	}
	if err := s.tractors.Create(ctx, t); err != nil {
		// Racing creates slip past the pre-check; the unique index wins.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateRegistration
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTractors(ctx context.Context) ([]domain.Tractor, error) {
	return s.tractors.List(ctx)
}

func (s *Service) GetTractor(ctx context.Context, id int64) (*domain.Tractor, error) {
	t, err := s.tractors.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return t, nil
}

func (s *Service) DeleteTractor(ctx context.Context, ownerID, id int64) error {
	t, err := s.tractors.GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if t.OwnerID != ownerID {
		return ErrForbidden
	}

	if err := s.snapshotInto(ctx, domain.ItemTractor, id, t); err != nil {
		return err
	}
	return mapNotFound(s.tractors.Delete(ctx, id))
}

/* ---------- NURSERY CROP ---------- */

func (s *Service) CreateNurseryCrop(ctx context.Context, ownerID int64, req CreateNurseryCropRequest) (*domain.NurseryCrop, error) {
	c := &domain.NurseryCrop{
		Name:              req.Name,
		Category:          req.Category,
		GrowingSeason:     req.GrowingSeason,
		Description:       req.Description,
		QuantityAvailable: req.QuantityAvailable,
		CostPerCrop:       req.CostPerCrop,
		PostedBy:          ownerID,
	}
	if fields := validator.Validate(c); fields != nil {
		return nil, ErrValidation
	}
	if err := s.crops.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListNurseryCrops(ctx context.Context) ([]domain.NurseryCrop, error) {
	return s.crops.List(ctx)
}

func (s *Service) GetNurseryCrop(ctx context.Context, id int64) (*domain.NurseryCrop, error) {
	c, err := s.crops.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return c, nil
}

func (s *Service) DeleteNurseryCrop(ctx context.Context, ownerID, id int64) error {
	c, err := s.crops.GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if c.PostedBy != ownerID {
		return ErrForbidden
	}

	if err := s.snapshotInto(ctx, domain.ItemNurseryCrop, id, c); err != nil {
		return err
	}
	return mapNotFound(s.crops.Delete(ctx, id))
}

func (s *Service) snapshotInto(ctx context.Context, itemType domain.ItemType, id int64, item any) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.bookings.SnapshotItem(ctx, itemType, id, raw)
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
