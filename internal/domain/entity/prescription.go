package entity

import (
	"time"
)

// Prescription is a medication prescribed during an encounter
type Prescription struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	EncounterID     int       `gorm:"not null;index" json:"encounter_id"`
	MedicationID    int       `gorm:"not null;index" json:"medication_id"`
	Dosage          string    `gorm:"type:varchar(30);not null" json:"dosage"`
	FrequencyPerDay int       `gorm:"not null;default:1" json:"frequency_per_day"`
	DurationDays    int       `gorm:"not null;default:7" json:"duration_days"`
	Instructions    string    `gorm:"type:varchar(100)" json:"instructions,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Encounter  Encounter  `gorm:"foreignKey:EncounterID" json:"encounter,omitempty"`
	Medication Medication `gorm:"foreignKey:MedicationID" json:"medication,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// BilledQuantity is the quantity charged for this prescription:
// frequency per day times duration in days, floored to 1.
func (p *Prescription) BilledQuantity() int {
	qty := p.FrequencyPerDay * p.DurationDays
	if qty <= 0 {
		return 1
	}
	return qty
}
