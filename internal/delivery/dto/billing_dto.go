package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    string          `json:"method" validate:"required,oneof=CASH CARD MPESA INSURANCE"`
	Reference string          `json:"reference" validate:"omitempty,max=40"`
}

// Response DTOs

type BillLineResponse struct {
	ID           int             `json:"id"`
	LineType     string          `json:"line_type"`
	MedicationID *int            `json:"medication_id,omitempty"`
	ProcedureID  *int            `json:"procedure_id,omitempty"`
	Description  string          `json:"description,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

type PaymentResponse struct {
	ID        int             `json:"id"`
	BillID    int             `json:"bill_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

type BillResponse struct {
	ID          int                `json:"id"`
	EncounterID int                `json:"encounter_id"`
	PatientID   int                `json:"patient_id"`
	Patient     *PatientResponse   `json:"patient,omitempty"`
	BillDate    string             `json:"bill_date"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      string             `json:"status"`
	Lines       []BillLineResponse `json:"lines,omitempty"`
	Payments    []PaymentResponse  `json:"payments,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type BillListResponse struct {
	Bills []BillResponse `json:"bills"`
	Total int            `json:"total"`
}
