package repository

import (
	"errors"
	"time"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

type encounterRepository struct{}

func NewEncounterRepository() domainRepo.EncounterRepository {
	return &encounterRepository{}
}

func (r *encounterRepository) Create(db *gorm.DB, encounter *entity.Encounter) error {
	return db.Create(encounter).Error
}

func (r *encounterRepository) Update(db *gorm.DB, encounter *entity.Encounter) error {
	return db.Omit("Appointment", "Patient", "Doctor", "Prescriptions", "Procedures").Save(encounter).Error
}

func (r *encounterRepository) FindByID(db *gorm.DB, id int) (*entity.Encounter, error) {
	var encounter entity.Encounter
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&encounter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &encounter, nil
}

func (r *encounterRepository) FindByPatientDoctorDate(db *gorm.DB, patientID, doctorID int, date time.Time) (*entity.Encounter, error) {
	var encounter entity.Encounter
	err := db.Where("patient_id = ? AND doctor_id = ? AND encounter_date = ?",
		patientID, doctorID, date.Format("2006-01-02")).
		First(&encounter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &encounter, nil
}

func (r *encounterRepository) FindByPatientID(db *gorm.DB, patientID int) ([]entity.Encounter, error) {
	var encounters []entity.Encounter
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("encounter_date DESC, created_at DESC").
		Find(&encounters).Error
	if err != nil {
		return nil, err
	}
	return encounters, nil
}

func (r *encounterRepository) FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Encounter, int64, error) {
	var encounters []entity.Encounter
	var total int64

	query := db.Model(&entity.Encounter{}).
		Joins("JOIN patients ON patients.id = encounters.patient_id").
		Joins("JOIN doctors ON doctors.id = encounters.doctor_id")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"patients.first_name ILIKE ? OR patients.last_name ILIKE ? OR doctors.first_name ILIKE ? OR doctors.last_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Patient").Preload("Doctor").
		Order("encounter_date DESC").
		Limit(limit).Offset(offset).
		Find(&encounters).Error
	if err != nil {
		return nil, 0, err
	}
	return encounters, total, nil
}

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Create(prescription).Error
}

func (r *prescriptionRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Prescription{})
	return result.RowsAffected, result.Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id int) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Preload("Medication").Where("id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindByEncounterID(db *gorm.DB, encounterID int) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Medication").
		Where("encounter_id = ?", encounterID).
		Order("created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

type encounterProcedureRepository struct{}

func NewEncounterProcedureRepository() domainRepo.EncounterProcedureRepository {
	return &encounterProcedureRepository{}
}

func (r *encounterProcedureRepository) Create(db *gorm.DB, procedure *entity.EncounterProcedure) error {
	return db.Create(procedure).Error
}

func (r *encounterProcedureRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.EncounterProcedure{})
	return result.RowsAffected, result.Error
}

func (r *encounterProcedureRepository) FindByID(db *gorm.DB, id int) (*entity.EncounterProcedure, error) {
	var procedure entity.EncounterProcedure
	err := db.Preload("Procedure").Where("id = ?", id).First(&procedure).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &procedure, nil
}

func (r *encounterProcedureRepository) FindByEncounterID(db *gorm.DB, encounterID int) ([]entity.EncounterProcedure, error) {
	var procedures []entity.EncounterProcedure
	err := db.Preload("Procedure").
		Where("encounter_id = ?", encounterID).
		Order("created_at ASC").
		Find(&procedures).Error
	if err != nil {
		return nil, err
	}
	return procedures, nil
}
