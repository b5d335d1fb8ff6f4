package listing

type CreateManureRequest struct {
	ManureType  string  `json:"manure_type" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	CostPerKg   float64 `json:"cost_per_kg" binding:"required,gte=0"`
	Address     string  `json:"address" binding:"required"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

type CreateTractorRequest struct {
	Brand              string   `json:"brand" binding:"required"`
	ModelNumber        string   `json:"model_number" binding:"required"`
	RegistrationNumber string   `json:"registration_number" binding:"required"`
	EngineCapacity     float64  `json:"engine_capacity" binding:"required,gt=0"`
	FuelType           string   `json:"fuel_type" binding:"required,oneof=Diesel Electric"`
	Attachments        []string `json:"attachments"`
	Available          bool     `json:"available"`
	Lat                float64  `json:"lat"`
	Lng                float64  `json:"lng"`
}

type CreateNurseryCropRequest struct {
	Name              string  `json:"name" binding:"required"`
	Category          string  `json:"category" binding:"required"`
	GrowingSeason     string  `json:"growing_season"`
	Description       string  `json:"description"`
	QuantityAvailable float64 `json:"quantity_available" binding:"required,gt=0"`
	CostPerCrop       float64 `json:"cost_per_crop" binding:"required,gte=0"`
}
