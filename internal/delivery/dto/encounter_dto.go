package dto

import (
	"time"
)

// Request DTOs

type UpdateEncounterRequest struct {
	VisitType        string `json:"visit_type" validate:"omitempty,oneof=Consultation Follow-up Emergency Procedure Review"`
	Notes            string `json:"notes" validate:"omitempty,max=255"`
	DiagnosisSummary string `json:"diagnosis_summary" validate:"omitempty,max=255"`
	TreatmentPlan    string `json:"treatment_plan" validate:"omitempty,max=255"`
}

type AddPrescriptionRequest struct {
	MedicationID    int    `json:"medication_id" validate:"required,min=1"`
	Dosage          string `json:"dosage" validate:"required,max=30"`
	FrequencyPerDay int    `json:"frequency_per_day" validate:"required,min=1"`
	DurationDays    int    `json:"duration_days" validate:"required,min=1"`
	Instructions    string `json:"instructions" validate:"omitempty,max=100"`
}

type AddEncounterProcedureRequest struct {
	ProcedureID int    `json:"procedure_id" validate:"required,min=1"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	Notes       string `json:"notes" validate:"omitempty,max=150"`
}

// Response DTOs

type EncounterResponse struct {
	ID               int              `json:"id"`
	AppointmentID    int              `json:"appointment_id"`
	PatientID        int              `json:"patient_id"`
	DoctorID         int              `json:"doctor_id"`
	Patient          *PatientResponse `json:"patient,omitempty"`
	Doctor           *DoctorResponse  `json:"doctor,omitempty"`
	EncounterDate    string           `json:"encounter_date"`
	VisitType        string           `json:"visit_type"`
	Notes            string           `json:"notes,omitempty"`
	DiagnosisSummary string           `json:"diagnosis_summary,omitempty"`
	TreatmentPlan    string           `json:"treatment_plan,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type EncounterListResponse struct {
	Encounters []EncounterResponse `json:"encounters"`
	Total      int                 `json:"total"`
}

type PrescriptionResponse struct {
	ID              int                 `json:"id"`
	EncounterID     int                 `json:"encounter_id"`
	MedicationID    int                 `json:"medication_id"`
	Medication      *MedicationResponse `json:"medication,omitempty"`
	Dosage          string              `json:"dosage"`
	FrequencyPerDay int                 `json:"frequency_per_day"`
	DurationDays    int                 `json:"duration_days"`
	Instructions    string              `json:"instructions,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}

type EncounterProcedureResponse struct {
	ID          int                `json:"id"`
	EncounterID int                `json:"encounter_id"`
	ProcedureID int                `json:"procedure_id"`
	Procedure   *ProcedureResponse `json:"procedure,omitempty"`
	Quantity    int                `json:"quantity"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type EncounterProcedureListResponse struct {
	Procedures []EncounterProcedureResponse `json:"procedures"`
	Total      int                          `json:"total"`
}
