package repository

import (
	"time"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type EncounterRepository interface {
	Create(db *gorm.DB, encounter *entity.Encounter) error
	Update(db *gorm.DB, encounter *entity.Encounter) error
	FindByID(db *gorm.DB, id int) (*entity.Encounter, error)
	// FindByPatientDoctorDate is used to reuse an existing visit instead of
	// opening a duplicate for the same patient, doctor and day.
	FindByPatientDoctorDate(db *gorm.DB, patientID, doctorID int, date time.Time) (*entity.Encounter, error)
	FindByPatientID(db *gorm.DB, patientID int) ([]entity.Encounter, error)
	FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Encounter, int64, error)
}

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	Delete(db *gorm.DB, id int) (int64, error)
	FindByID(db *gorm.DB, id int) (*entity.Prescription, error)
	FindByEncounterID(db *gorm.DB, encounterID int) ([]entity.Prescription, error)
}

type EncounterProcedureRepository interface {
	Create(db *gorm.DB, procedure *entity.EncounterProcedure) error
	Delete(db *gorm.DB, id int) (int64, error)
	FindByID(db *gorm.DB, id int) (*entity.EncounterProcedure, error)
	FindByEncounterID(db *gorm.DB, encounterID int) ([]entity.EncounterProcedure, error)
}
