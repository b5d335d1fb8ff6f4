package domain

import "time"

type ItemType string

const (
	ItemManure      ItemType = "Manure"
	ItemTractor     ItemType = "Tractor"
	ItemNurseryCrop ItemType = "NurseryCrop"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemManure, ItemTractor, ItemNurseryCrop:
		return true
	}
	return false
}

type FuelType string

const (
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
)

type TractorAttachment string

const (
	AttachmentPlough     TractorAttachment = "Plough"
	AttachmentHarrow     TractorAttachment = "Harrow"
	AttachmentRotavator  TractorAttachment = "Rotavator"
	AttachmentCultivator TractorAttachment = "Cultivator"
	AttachmentNone       TractorAttachment = "none"
)

func (a TractorAttachment) Valid() bool {
	switch a {
	case AttachmentPlough, AttachmentHarrow, AttachmentRotavator, AttachmentCultivator, AttachmentNone:
		return true
	}
	return false
}

type Manure struct {
	ID          int64     `json:"id"`
	ManureType  string    `json:"manure_type" validate:"required"`
	Quantity    float64   `json:"quantity" validate:"required,gt=0"`
	CostPerKg   float64   `json:"cost_per_kg" validate:"required,gte=0"`
	Address     string    `json:"address" validate:"required"`
	Description string    `json:"description"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	PostedBy    int64     `json:"posted_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tractor struct {
	ID                 int64               `json:"id"`
	OwnerID            int64               `json:"owner_id"`
	Brand              string              `json:"brand" validate:"required"`
	ModelNumber        string              `json:"model_number" validate:"required"`
	RegistrationNumber string              `json:"registration_number" validate:"required"`
	EngineCapacity     float64             `json:"engine_capacity" validate:"required,gt=0"`
	FuelType           FuelType            `json:"fuel_type" validate:"required"`
	Attachments        []TractorAttachment `json:"attachments,omitempty"`
	Available          bool                `json:"available"`
	Lat                float64             `json:"lat"`
	Lng                float64             `json:"lng"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

type NurseryCrop struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name" validate:"required"`
	Category          string    `json:"category" validate:"required"`
	GrowingSeason     string    `json:"growing_season"`
	Description       string    `json:"description"`
	QuantityAvailable float64   `json:"quantity_available" validate:"gte=0"`
	CostPerCrop       float64   `json:"cost_per_crop" validate:"required,gte=0"`
	PostedBy          int64     `json:"posted_by"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ItemSummary is the registry-neutral view of a listed item. Booking code
// dispatches on Type and never touches the concrete listing structs.
type ItemSummary struct {
	ID      int64    `json:"id"`
	Type    ItemType `json:"type"`
	Name    string   `json:"name"`
	OwnerID int64    `json:"owner_id"`
	InStock float64  `json:"in_stock"`
}
