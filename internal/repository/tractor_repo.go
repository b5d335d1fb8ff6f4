package repository

import (
	"context"
	"encoding/json"
	"time"

	"farmassist/internal/domain"

	"gorm.io/gorm"
)

type TractorRepository struct {
	db *gorm.DB
}

func NewTractorRepository(db *gorm.DB) *TractorRepository {
	return &TractorRepository{db: db}
}

type tractorModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	OwnerID            int64     `gorm:"column:owner_id;index"`
	Brand              string    `gorm:"column:brand"`
	ModelNumber        string    `gorm:"column:model_number"`
	RegistrationNumber string    `gorm:"column:registration_number;uniqueIndex:idx_tractors_registration"`
	EngineCapacity     float64   `gorm:"column:engine_capacity"`
	FuelType           string    `gorm:"column:fuel_type"`
	Attachments        []byte    `gorm:"column:attachments"`
	Available          bool      `gorm:"column:available"`
	Lat                float64   `gorm:"column:lat"`
	Lng                float64   `gorm:"column:lng"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (tractorModel) TableName() string { return "tractors" }

func toDomainTractor(m tractorModel) *domain.Tractor {
	t := &domain.Tractor{
		ID:                 m.ID,
		OwnerID:            m.OwnerID,
		Brand:              m.Brand,
		ModelNumber:        m.ModelNumber,
		RegistrationNumber: m.RegistrationNumber,
		EngineCapacity:     m.EngineCapacity,
		FuelType:           domain.FuelType(m.FuelType),
		Available:          m.Available,
		Lat:                m.Lat,
		Lng:                m.Lng,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if len(m.Attachments) > 0 {
		_ = json.Unmarshal(m.Attachments, &t.Attachments)
	}
	return t
}

func toTractorModel(d *domain.Tractor) tractorModel {
	m := tractorModel{
		ID:                 d.ID,
		OwnerID:            d.OwnerID,
		Brand:              d.Brand,
		ModelNumber:        d.ModelNumber,
		RegistrationNumber: d.RegistrationNumber,
		EngineCapacity:     d.EngineCapacity,
		FuelType:           string(d.FuelType),
		Available:          d.Available,
		Lat:                d.Lat,
		Lng:                d.Lng,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if len(d.Attachments) > 0 {
		raw, err := json.Marshal(d.Attachments)
		if err == nil {
			m.Attachments = raw
		}
	}
	return m
}

func (r *TractorRepository) Create(ctx context.Context, d *domain.Tractor) error {
	m := toTractorModel(d)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainTractor(m)
	return nil
}

func (r *TractorRepository) GetByID(ctx context.Context, id int64) (*domain.Tractor, error) {
	var m tractorModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTractor(m), nil
}

func (r *TractorRepository) GetByRegistration(ctx context.Context, registration string) (*domain.Tractor, error) {
	var m tractorModel
	tx := r.db.WithContext(ctx).Where("registration_number = ?", registration).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTractor(m), nil
}

func (r *TractorRepository) List(ctx context.Context) ([]domain.Tractor, error) {
	var rows []tractorModel
	tx := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Tractor, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTractor(m))
	}
	return out, nil
}

func (r *TractorRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&tractorModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TractorRepository) Get(ctx context.Context, id int64) (*domain.ItemSummary, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stock := 0.0
	if t.Available {
		stock = 1
	}
	return &domain.ItemSummary{
		ID:      t.ID,
		Type:    domain.ItemTractor,
		Name:    t.Brand + " " + t.ModelNumber,
		OwnerID: t.OwnerID,
		InStock: stock,
	}, nil
}

// Debit marks the tractor unavailable. The quantity argument is part of the
// registry contract but tractors are booked whole, so it is ignored.
func (r *TractorRepository) Debit(ctx context.Context, id int64, _ float64) error {
	res := r.db.WithContext(ctx).
		Model(&tractorModel{}).
		Where("id = ? AND available = ?", id, true).
		UpdateColumn("available", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var cnt int64
		if err := r.db.WithContext(ctx).Model(&tractorModel{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}
