package repository

import (
	"hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Delete(db *gorm.DB, id int) (int64, error)
	FindByID(db *gorm.DB, id int) (*entity.Doctor, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error)
	FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Doctor, int64, error)
}

type DepartmentRepository interface {
	Create(db *gorm.DB, department *entity.Department) error
	Update(db *gorm.DB, department *entity.Department) error
	Delete(db *gorm.DB, id int) (int64, error)
	FindByID(db *gorm.DB, id int) (*entity.Department, error)
	FindAll(db *gorm.DB) ([]entity.Department, error)
}
