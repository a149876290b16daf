package repository

import (
	"time"

	"hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Update(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id int) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID int) ([]entity.Appointment, error)
	// FindActiveByDoctorAndDate returns the non-cancelled appointments for a
	// doctor on a date, optionally excluding one appointment id (0 = none).
	FindActiveByDoctorAndDate(db *gorm.DB, doctorID int, date time.Time, excludeID int) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Appointment, int64, error)
	UpdateStatus(db *gorm.DB, id int, status entity.AppointmentStatus) (int64, error)
}
