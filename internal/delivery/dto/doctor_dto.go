package dto

import (
	"time"
)

// Request DTOs

type CreateDoctorRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=50"`
	LastName       string `json:"last_name" validate:"required,max=50"`
	Specialization string `json:"specialization" validate:"required,max=50"`
	DepartmentID   *int   `json:"department_id" validate:"omitempty,min=1"`
	Phone          string `json:"phone" validate:"omitempty,max=10"`
	Email          string `json:"email" validate:"omitempty,email"`
}

type UpdateDoctorRequest struct {
	FirstName      string `json:"first_name" validate:"omitempty,max=50"`
	LastName       string `json:"last_name" validate:"omitempty,max=50"`
	Specialization string `json:"specialization" validate:"omitempty,max=50"`
	DepartmentID   *int   `json:"department_id" validate:"omitempty,min=1"`
	Phone          string `json:"phone" validate:"omitempty,max=10"`
	Email          string `json:"email" validate:"omitempty,email"`
}

type CreateDepartmentRequest struct {
	Name     string `json:"name" validate:"required,max=30"`
	Location string `json:"location" validate:"omitempty,max=50"`
	Phone    string `json:"phone" validate:"omitempty,max=10"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// Response DTOs

type DoctorResponse struct {
	ID             int                 `json:"id"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	FullName       string              `json:"full_name"`
	Specialization string              `json:"specialization"`
	Department     *DepartmentResponse `json:"department,omitempty"`
	Phone          string              `json:"phone,omitempty"`
	Email          string              `json:"email,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type DepartmentResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int                  `json:"total"`
}
