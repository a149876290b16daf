package entity

import (
	"time"
)

// VisitType represents the kind of clinical visit
type VisitType string

const (
	VisitTypeConsultation VisitType = "Consultation"
	VisitTypeFollowUp     VisitType = "Follow-up"
	VisitTypeEmergency    VisitType = "Emergency"
	VisitTypeProcedure    VisitType = "Procedure"
	VisitTypeReview       VisitType = "Review"
)

// Encounter represents one clinical visit tying a patient, doctor and date
// together. It is created when a doctor opens an appointment into a visit
// and is never auto-deleted.
type Encounter struct {
	ID               int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID    int       `gorm:"not null;index" json:"appointment_id"`
	PatientID        int       `gorm:"not null;index" json:"patient_id"`
	DoctorID         int       `gorm:"not null;index" json:"doctor_id"`
	EncounterDate    time.Time `gorm:"type:date;not null;index" json:"encounter_date"`
	VisitType        VisitType `gorm:"type:varchar(20);not null;default:'Consultation'" json:"visit_type"`
	Notes            string    `gorm:"type:varchar(255)" json:"notes,omitempty"`
	DiagnosisSummary string    `gorm:"type:varchar(255)" json:"diagnosis_summary,omitempty"`
	TreatmentPlan    string    `gorm:"type:varchar(255)" json:"treatment_plan,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment   Appointment          `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Patient       Patient              `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor        Doctor               `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Prescriptions []Prescription       `gorm:"foreignKey:EncounterID" json:"prescriptions,omitempty"`
	Procedures    []EncounterProcedure `gorm:"foreignKey:EncounterID" json:"procedures,omitempty"`
}

func (Encounter) TableName() string {
	return "encounters"
}

// EncounterProcedure records a procedure performed during an encounter
type EncounterProcedure struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	EncounterID int       `gorm:"not null;index;uniqueIndex:uq_encounter_procedure" json:"encounter_id"`
	ProcedureID int       `gorm:"not null;index;uniqueIndex:uq_encounter_procedure" json:"procedure_id"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	Notes       string    `gorm:"type:varchar(150)" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Encounter Encounter `gorm:"foreignKey:EncounterID" json:"encounter,omitempty"`
	Procedure Procedure `gorm:"foreignKey:ProcedureID" json:"procedure,omitempty"`
}

func (EncounterProcedure) TableName() string {
	return "encounter_procedures"
}
