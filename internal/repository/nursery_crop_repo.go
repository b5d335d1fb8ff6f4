package repository

import (
	"context"
	"time"

	"farmassist/internal/domain"

	"gorm.io/gorm"
)

type NurseryCropRepository struct {
	db *gorm.DB
}

func NewNurseryCropRepository(db *gorm.DB) *NurseryCropRepository {
	return &NurseryCropRepository{db: db}
}

type nurseryCropModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	Name              string    `gorm:"column:name"`
	Category          string    `gorm:"column:category"`
	GrowingSeason     string    `gorm:"column:growing_season"`
	Description       string    `gorm:"column:description"`
	QuantityAvailable float64   `gorm:"column:quantity_available"`
	CostPerCrop       float64   `gorm:"column:cost_per_crop"`
	PostedBy          int64     `gorm:"column:posted_by;index"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (nurseryCropModel) TableName() string { return "nursery_crops" }

func toDomainNurseryCrop(m nurseryCropModel) *domain.NurseryCrop {
	return &domain.NurseryCrop{
		ID:                m.ID,
		Name:              m.Name,
		Category:          m.Category,
		GrowingSeason:     m.GrowingSeason,
		Description:       m.Description,
		QuantityAvailable: m.QuantityAvailable,
		CostPerCrop:       m.CostPerCrop,
		PostedBy:          m.PostedBy,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toNurseryCropModel(d *domain.NurseryCrop) nurseryCropModel {
	return nurseryCropModel{
		ID:                d.ID,
		Name:              d.Name,
		Category:          d.Category,
		GrowingSeason:     d.GrowingSeason,
		Description:       d.Description,
		QuantityAvailable: d.QuantityAvailable,
		CostPerCrop:       d.CostPerCrop,
		PostedBy:          d.PostedBy,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (r *NurseryCropRepository) Create(ctx context.Context, d *domain.NurseryCrop) error {
	m := toNurseryCropModel(d)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainNurseryCrop(m)
	return nil
}

func (r *NurseryCropRepository) GetByID(ctx context.Context, id int64) (*domain.NurseryCrop, error) {
	var m nurseryCropModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainNurseryCrop(m), nil
}

func (r *NurseryCropRepository) List(ctx context.Context) ([]domain.NurseryCrop, error) {
	var rows []nurseryCropModel
	tx := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.NurseryCrop, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainNurseryCrop(m))
	}
	return out, nil
}

func (r *NurseryCropRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&nurseryCropModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NurseryCropRepository) Get(ctx context.Context, id int64) (*domain.ItemSummary, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.ItemSummary{
		ID:      c.ID,
		Type:    domain.ItemNurseryCrop,
		Name:    c.Name,
		OwnerID: c.PostedBy,
		InStock: c.QuantityAvailable,
	}, nil
}

func (r *NurseryCropRepository) Debit(ctx context.Context, id int64, qty float64) error {
	res := r.db.WithContext(ctx).
		Model(&nurseryCropModel{}).
		Where("id = ? AND quantity_available >= ?", id, qty).
		UpdateColumn("quantity_available", gorm.Expr("quantity_available - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var cnt int64
		if err := r.db.WithContext(ctx).Model(&nurseryCropModel{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}
