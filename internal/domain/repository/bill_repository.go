package repository

import (
	"hospital-management/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BillRepository interface {
	Create(db *gorm.DB, bill *entity.Bill) error
	Update(db *gorm.DB, bill *entity.Bill) error
	FindByID(db *gorm.DB, id int) (*entity.Bill, error)
	FindByEncounterAndPatient(db *gorm.DB, encounterID, patientID int) (*entity.Bill, error)
	FindByPatientID(db *gorm.DB, patientID int) ([]entity.Bill, error)
	FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Bill, int64, error)
	DeleteLines(db *gorm.DB, billID int) error
	CreateLines(db *gorm.DB, lines []entity.BillLine) error
	FindLines(db *gorm.DB, billID int) ([]entity.BillLine, error)
	CreatePayment(db *gorm.DB, payment *entity.Payment) error
	// SumSuccessfulPayments returns the total of SUCCESS payments for a bill.
	SumSuccessfulPayments(db *gorm.DB, billID int) (decimal.Decimal, error)
}
