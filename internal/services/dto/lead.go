package dto

import "conectacg_backend/internal/models"

type CreateLeadRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"required,min=8,max=20"`
	Cep   string `json:"cep" validate:"required,is-cep"`
}

type UpdateLeadRequest struct {
	Status string `json:"status" validate:"required,is-lead-status"`
}

type LeadListResponse struct {
	Leads      []models.Lead `json:"leads"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}
