package repository

import (
	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicationRepository interface {
	Create(db *gorm.DB, medication *entity.Medication) error
	Update(db *gorm.DB, medication *entity.Medication) error
	Delete(db *gorm.DB, id int) (int64, error)
	FindByID(db *gorm.DB, id int) (*entity.Medication, error)
	FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Medication, int64, error)
}

type ProcedureRepository interface {
	Create(db *gorm.DB, procedure *entity.Procedure) error
	Update(db *gorm.DB, procedure *entity.Procedure) error
	Delete(db *gorm.DB, id int) (int64, error)
	FindByID(db *gorm.DB, id int) (*entity.Procedure, error)
	FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Procedure, int64, error)
}
