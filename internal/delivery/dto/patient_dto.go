package dto

import (
	"time"
)

// Request DTOs

type CreatePatientRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Sex         string `json:"sex" validate:"required,oneof=M F"`
	Phone       string `json:"phone" validate:"omitempty,max=10"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"omitempty,max=150"`
}

type UpdatePatientRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=50"`
	LastName  string `json:"last_name" validate:"omitempty,max=50"`
	Phone     string `json:"phone" validate:"omitempty,max=10"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address" validate:"omitempty,max=150"`
}

// Response DTOs

type PatientResponse struct {
	ID          int       `json:"id"`
	MRN         string    `json:"mrn"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	DateOfBirth string    `json:"date_of_birth"`
	Sex         string    `json:"sex"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
