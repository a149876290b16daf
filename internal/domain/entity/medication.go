package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MedicationForm represents the dosage form of a medication
type MedicationForm string

const (
	MedicationFormTablet    MedicationForm = "Tablet"
	MedicationFormCapsule   MedicationForm = "Capsule"
	MedicationFormSyrup     MedicationForm = "Syrup"
	MedicationFormInjection MedicationForm = "Injection"
	MedicationFormInhaler   MedicationForm = "Inhaler"
	MedicationFormDrops     MedicationForm = "Drops"
	MedicationFormCream     MedicationForm = "Cream"
	MedicationFormOther     MedicationForm = "Other"
)

// Medication is a pharmacy catalog entry
type Medication struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	GenericName string          `gorm:"type:varchar(50);not null;index" json:"generic_name"`
	BrandName   string          `gorm:"type:varchar(50)" json:"brand_name,omitempty"`
	Form        MedicationForm  `gorm:"type:varchar(10);not null;default:'Tablet'" json:"form"`
	Strength    string          `gorm:"type:varchar(30)" json:"strength,omitempty"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"unit_price"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Medication) TableName() string {
	return "medications"
}
