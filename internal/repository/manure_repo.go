package repository

import (
	"context"
	"time"

	"farmassist/internal/domain"

	"gorm.io/gorm"
)

type ManureRepository struct {
	db *gorm.DB
}

func NewManureRepository(db *gorm.DB) *ManureRepository {
	return &ManureRepository{db: db}
}

type manureModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	ManureType  string    `gorm:"column:manure_type"`
	Quantity    float64   `gorm:"column:quantity"`
	CostPerKg   float64   `gorm:"column:cost_per_kg"`
	Address     string    `gorm:"column:address"`
	Description string    `gorm:"column:description"`
	Lat         float64   `gorm:"column:lat"`
	Lng         float64   `gorm:"column:lng"`
	PostedBy    int64     `gorm:"column:posted_by;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (manureModel) TableName() string { return "manures" }

func toDomainManure(m manureModel) *domain.Manure {
	return &domain.Manure{
		ID:          m.ID,
		ManureType:  m.ManureType,
		Quantity:    m.Quantity,
		CostPerKg:   m.CostPerKg,
		Address:     m.Address,
		Description: m.Description,
		Lat:         m.Lat,
		Lng:         m.Lng,
		PostedBy:    m.PostedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toManureModel(d *domain.Manure) manureModel {
	return manureModel{
		ID:          d.ID,
		ManureType:  d.ManureType,
		Quantity:    d.Quantity,
		CostPerKg:   d.CostPerKg,
		Address:     d.Address,
		Description: d.Description,
		Lat:         d.Lat,
		Lng:         d.Lng,
		PostedBy:    d.PostedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *ManureRepository) Create(ctx context.Context, d *domain.Manure) error {
	m := toManureModel(d)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainManure(m)
	return nil
}

func (r *ManureRepository) GetByID(ctx context.Context, id int64) (*domain.Manure, error) {
	var m manureModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainManure(m), nil
}

func (r *ManureRepository) List(ctx context.Context) ([]domain.Manure, error) {
	var rows []manureModel
	tx := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Manure, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainManure(m))
	}
	return out, nil
}

func (r *ManureRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&manureModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Get resolves the registry-neutral summary used by the booking engine.
func (r *ManureRepository) Get(ctx context.Context, id int64) (*domain.ItemSummary, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.ItemSummary{
		ID:      m.ID,
		Type:    domain.ItemManure,
		Name:    m.ManureType,
		OwnerID: m.PostedBy,
		InStock: m.Quantity,
	}, nil
}

// Debit applies a relative decrement with a zero floor. The conditional
// UPDATE serializes concurrent debits against the same row.
func (r *ManureRepository) Debit(ctx context.Context, id int64, qty float64) error {
	res := r.db.WithContext(ctx).
		Model(&manureModel{}).
		Where("id = ? AND quantity >= ?", id, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var cnt int64
		if err := r.db.WithContext(ctx).Model(&manureModel{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}
