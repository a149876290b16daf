package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus represents the payment status of a bill
type BillStatus string

const (
	BillStatusPending   BillStatus = "PENDING"
	BillStatusPaid      BillStatus = "PAID"
	BillStatusCancelled BillStatus = "CANCELLED"
)

// BillLineType distinguishes what a bill line charges for
type BillLineType string

const (
	BillLineTypeMedication BillLineType = "MEDICATION"
	BillLineTypeProcedure  BillLineType = "PROCEDURE"
	BillLineTypeService    BillLineType = "SERVICE"
)

// Bill is the invoice for one encounter. There is exactly one bill per
// (encounter, patient) pair; it is created on the first billing sync and
// reused by every sync after that. The synchronizer never changes Status.
type Bill struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	EncounterID int             `gorm:"not null;uniqueIndex:uq_bill_encounter_patient" json:"encounter_id"`
	PatientID   int             `gorm:"not null;index;uniqueIndex:uq_bill_encounter_patient" json:"patient_id"`
	BillDate    time.Time       `gorm:"type:date;not null" json:"bill_date"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	Status      BillStatus      `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	PaymentDue  *time.Time      `gorm:"type:date" json:"payment_due,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Encounter Encounter  `gorm:"foreignKey:EncounterID" json:"encounter,omitempty"`
	Patient   Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Lines     []BillLine `gorm:"foreignKey:BillID" json:"lines,omitempty"`
	Payments  []Payment  `gorm:"foreignKey:BillID" json:"payments,omitempty"`
}

func (Bill) TableName() string {
	return "bills"
}

// IsPaid checks if the bill has been settled
func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// BillLine is one priced item within a bill. Lines are derived data,
// owned by their bill and fully replaced on every billing sync.
type BillLine struct {
	ID           int             `gorm:"primaryKey;autoIncrement" json:"id"`
	BillID       int             `gorm:"not null;index" json:"bill_id"`
	LineType     BillLineType    `gorm:"type:varchar(10);not null" json:"line_type"`
	MedicationID *int            `gorm:"index" json:"medication_id,omitempty"`
	ProcedureID  *int            `gorm:"index" json:"procedure_id,omitempty"`
	Description  string          `gorm:"type:varchar(120)" json:"description,omitempty"`
	Quantity     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:1" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"unit_price"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Bill       Bill        `gorm:"foreignKey:BillID" json:"bill,omitempty"`
	Medication *Medication `gorm:"foreignKey:MedicationID" json:"medication,omitempty"`
	Procedure  *Procedure  `gorm:"foreignKey:ProcedureID" json:"procedure,omitempty"`
}

func (BillLine) TableName() string {
	return "bill_lines"
}

// LineTotal returns quantity times unit price.
func (l *BillLine) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "CASH"
	PaymentMethodCard      PaymentMethod = "CARD"
	PaymentMethodMpesa     PaymentMethod = "MPESA"
	PaymentMethodInsurance PaymentMethod = "INSURANCE"
)

// PaymentStatus represents the outcome of a payment attempt
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment records money received against a bill
type Payment struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id"`
	BillID    int             `gorm:"not null;index" json:"bill_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method    PaymentMethod   `gorm:"type:varchar(10);not null;index" json:"method"`
	Status    PaymentStatus   `gorm:"type:varchar(10);not null;default:'SUCCESS'" json:"status"`
	Reference string          `gorm:"type:varchar(40)" json:"reference,omitempty"`
	PaidAt    time.Time       `gorm:"autoCreateTime" json:"paid_at"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Bill Bill `gorm:"foreignKey:BillID" json:"bill,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
