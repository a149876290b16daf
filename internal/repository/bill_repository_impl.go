package repository

import (
	"errors"

	"hospital-management/internal/domain/entity"
	domainRepo "hospital-management/internal/domain/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type billRepository struct{}

func NewBillRepository() domainRepo.BillRepository {
	return &billRepository{}
}

func (r *billRepository) Create(db *gorm.DB, bill *entity.Bill) error {
	return db.Create(bill).Error
}

func (r *billRepository) Update(db *gorm.DB, bill *entity.Bill) error {
	return db.Omit("Encounter", "Patient", "Lines", "Payments").Save(bill).Error
}

func (r *billRepository) FindByID(db *gorm.DB, id int) (*entity.Bill, error) {
	var bill entity.Bill
	err := db.Preload("Patient").
		Preload("Lines").
		Preload("Payments").
		Where("id = ?", id).
		First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) FindByEncounterAndPatient(db *gorm.DB, encounterID, patientID int) (*entity.Bill, error) {
	var bill entity.Bill
	err := db.Where("encounter_id = ? AND patient_id = ?", encounterID, patientID).
		First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) FindByPatientID(db *gorm.DB, patientID int) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := db.Preload("Lines").
		Preload("Payments").
		Where("patient_id = ?", patientID).
		Order("bill_date DESC, created_at DESC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepository) FindAll(db *gorm.DB, search string, limit, offset int) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := db.Model(&entity.Bill{}).
		Joins("JOIN patients ON patients.id = bills.patient_id")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"patients.mrn ILIKE ? OR patients.first_name ILIKE ? OR patients.last_name ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Patient").
		Order("bill_date DESC, bills.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bills).Error
	if err != nil {
		return nil, 0, err
	}
	return bills, total, nil
}

func (r *billRepository) DeleteLines(db *gorm.DB, billID int) error {
	return db.Where("bill_id = ?", billID).Delete(&entity.BillLine{}).Error
}

func (r *billRepository) CreateLines(db *gorm.DB, lines []entity.BillLine) error {
	if len(lines) == 0 {
		return nil
	}
	return db.Create(&lines).Error
}

func (r *billRepository) FindLines(db *gorm.DB, billID int) ([]entity.BillLine, error) {
	var lines []entity.BillLine
	err := db.Where("bill_id = ?", billID).Order("id ASC").Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *billRepository) CreatePayment(db *gorm.DB, payment *entity.Payment) error {
	return db.Create(payment).Error
}

func (r *billRepository) SumSuccessfulPayments(db *gorm.DB, billID int) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := db.Model(&entity.Payment{}).
		Select("SUM(amount)").
		Where("bill_id = ? AND status = ?", billID, entity.PaymentStatusSuccess).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
