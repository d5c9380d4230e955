package dto

type CreateAlertRequest struct {
	Cep      string  `json:"cep" validate:"required,is-cep"`
	MaxPrice float64 `json:"maxPrice" validate:"required,gt=0"`
	MinSpeed *int    `json:"minSpeed,omitempty" validate:"omitempty,gt=0"`
	PlanID   *string `json:"planId,omitempty"`
}
