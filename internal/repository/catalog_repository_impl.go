package repository

import (
	"errors"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

type medicationRepository struct{}

func NewMedicationRepository() domainRepo.MedicationRepository {
	return &medicationRepository{}
}

func (r *medicationRepository) Create(db *gorm.DB, medication *entity.Medication) error {
	return db.Create(medication).Error
}

func (r *medicationRepository) Update(db *gorm.DB, medication *entity.Medication) error {
	return db.Save(medication).Error
}

func (r *medicationRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Medication{})
	return result.RowsAffected, result.Error
}

func (r *medicationRepository) FindByID(db *gorm.DB, id int) (*entity.Medication, error) {
	var medication entity.Medication
	err := db.Where("id = ?", id).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medication, nil
}

func (r *medicationRepository) FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Medication, int64, error) {
	var medications []entity.Medication
	var total int64

	query := db.Model(&entity.Medication{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("generic_name ILIKE ? OR brand_name ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("generic_name ASC").
		Limit(limit).Offset(offset).
		Find(&medications).Error
	if err != nil {
		return nil, 0, err
	}
	return medications, total, nil
}

type procedureRepository struct{}

func NewProcedureRepository() domainRepo.ProcedureRepository {
	return &procedureRepository{}
}

func (r *procedureRepository) Create(db *gorm.DB, procedure *entity.Procedure) error {
	return db.Create(procedure).Error
}

func (r *procedureRepository) Update(db *gorm.DB, procedure *entity.Procedure) error {
	return db.Omit("Department").Save(procedure).Error
}

func (r *procedureRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Procedure{})
	return result.RowsAffected, result.Error
}

func (r *procedureRepository) FindByID(db *gorm.DB, id int) (*entity.Procedure, error) {
	var procedure entity.Procedure
	err := db.Preload("Department").Where("id = ?", id).First(&procedure).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &procedure, nil
}

func (r *procedureRepository) FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Procedure, int64, error) {
	var procedures []entity.Procedure
	var total int64

	query := db.Model(&entity.Procedure{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Department").
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&procedures).Error
	if err != nil {
		return nil, 0, err
	}
	return procedures, total, nil
}
