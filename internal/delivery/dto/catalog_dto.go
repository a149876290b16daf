package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicationRequest struct {
	GenericName string          `json:"generic_name" validate:"required,max=50"`
	BrandName   string          `json:"brand_name" validate:"omitempty,max=50"`
	Form        string          `json:"form" validate:"required,oneof=Tablet Capsule Syrup Injection Inhaler Drops Cream Other"`
	Strength    string          `json:"strength" validate:"omitempty,max=30"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

type UpdateMedicationRequest struct {
	GenericName string           `json:"generic_name" validate:"omitempty,max=50"`
	BrandName   string           `json:"brand_name" validate:"omitempty,max=50"`
	Form        string           `json:"form" validate:"omitempty,oneof=Tablet Capsule Syrup Injection Inhaler Drops Cream Other"`
	Strength    string           `json:"strength" validate:"omitempty,max=30"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"omitempty"`
}

type CreateProcedureRequest struct {
	Code            string          `json:"code" validate:"required,max=10"`
	Name            string          `json:"name" validate:"required,max=60"`
	Description     string          `json:"description" validate:"omitempty,max=200"`
	DepartmentID    *int            `json:"department_id" validate:"omitempty,min=1"`
	DurationMinutes int             `json:"duration_minutes" validate:"omitempty,min=1"`
	BasePrice       decimal.Decimal `json:"base_price" validate:"required"`
}

type UpdateProcedureRequest struct {
	Name            string           `json:"name" validate:"omitempty,max=60"`
	Description     string           `json:"description" validate:"omitempty,max=200"`
	DepartmentID    *int             `json:"department_id" validate:"omitempty,min=1"`
	DurationMinutes int              `json:"duration_minutes" validate:"omitempty,min=1"`
	BasePrice       *decimal.Decimal `json:"base_price" validate:"omitempty"`
}

// Response DTOs

type MedicationResponse struct {
	ID          int             `json:"id"`
	GenericName string          `json:"generic_name"`
	BrandName   string          `json:"brand_name,omitempty"`
	Form        string          `json:"form"`
	Strength    string          `json:"strength,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type MedicationListResponse struct {
	Medications []MedicationResponse `json:"medications"`
	Total       int                  `json:"total"`
}

type ProcedureResponse struct {
	ID              int                 `json:"id"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	Department      *DepartmentResponse `json:"department,omitempty"`
	DurationMinutes int                 `json:"duration_minutes,omitempty"`
	BasePrice       decimal.Decimal     `json:"base_price"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type ProcedureListResponse struct {
	Procedures []ProcedureResponse `json:"procedures"`
	Total      int                 `json:"total"`
}
