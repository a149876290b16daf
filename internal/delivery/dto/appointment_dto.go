package dto

import (
	"time"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID        int    `json:"doctor_id" validate:"required,min=1"`
	AppointmentDate string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time" validate:"required"` // one of the fixed slot labels
	Reason          string `json:"reason" validate:"omitempty,max=100"`
}

type RescheduleAppointmentRequest struct {
	DoctorID        int    `json:"doctor_id" validate:"required,min=1"`
	AppointmentDate string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time" validate:"required"`
	Reason          string `json:"reason" validate:"omitempty,max=100"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=BOOKED CONFIRMED CHECKED_IN COMPLETED CANCELLED NO_SHOW"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              int              `json:"id"`
	PatientID       int              `json:"patient_id"`
	DoctorID        int              `json:"doctor_id"`
	Patient         *PatientResponse `json:"patient,omitempty"`
	Doctor          *DoctorResponse  `json:"doctor,omitempty"`
	AppointmentDate string           `json:"appointment_date"`
	StartTime       string           `json:"start_time"`
	EndTime         string           `json:"end_time"`
	Reason          string           `json:"reason,omitempty"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

type SlotAvailabilityResponse struct {
	DoctorID int            `json:"doctor_id"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}
