package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a registered patient record
type Patient struct {
	ID        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	MRN       string     `gorm:"type:varchar(10);uniqueIndex;not null" json:"mrn"`
	FirstName string     `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName  string     `gorm:"type:varchar(50);not null" json:"last_name"`
	DOB       time.Time  `gorm:"type:date;not null" json:"dob"`
	Sex       string     `gorm:"type:char(1);not null" json:"sex"`
	Phone     string     `gorm:"type:varchar(10)" json:"phone,omitempty"`
	Email     string     `gorm:"type:varchar(50)" json:"email,omitempty"`
	Address   string     `gorm:"type:varchar(150)" json:"address,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
	Encounters   []Encounter   `gorm:"foreignKey:PatientID" json:"encounters,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Sex constants
const (
	SexMale   = "M"
	SexFemale = "F"
)

// FullName returns the patient display name
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
