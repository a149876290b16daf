package usecase

import (
	"context"
	"errors"
	"strconv"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"
	"hospital-management/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBillNotFound         = errors.New("bill not found")
	ErrBillNotOwned         = errors.New("bill does not belong to you")
	ErrBillCancelled        = errors.New("bill is cancelled")
	ErrBillAlreadyPaid      = errors.New("bill is already paid")
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
)

type BillingUsecase interface {
	SyncEncounter(ctx context.Context, encounterID int) (*dto.BillResponse, error)
	GetByID(ctx context.Context, billID int) (*dto.BillResponse, error)
	GetMyBills(ctx context.Context) (*dto.BillListResponse, error)
	List(ctx context.Context, search string, limit, offset int) (*dto.BillListResponse, error)
	RecordPayment(ctx context.Context, billID int, req *dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
}

type billingUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	billRepo      repository.BillRepository
	encounterRepo repository.EncounterRepository
	patientRepo   repository.PatientRepository
	syncService   *service.BillingSyncService
	auditService  service.AuditService
}

func NewBillingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	billRepo repository.BillRepository,
	encounterRepo repository.EncounterRepository,
	patientRepo repository.PatientRepository,
	syncService *service.BillingSyncService,
	auditService service.AuditService,
) BillingUsecase {
	return &billingUsecase{
		db:            db,
		log:           log,
		billRepo:      billRepo,
		encounterRepo: encounterRepo,
		patientRepo:   patientRepo,
		syncService:   syncService,
		auditService:  auditService,
	}
}

// SyncEncounter rebuilds the bill for an encounter on demand. The same
// regeneration runs automatically after every prescription or procedure
// change; this endpoint lets billing staff force it, for example after a
// catalog price correction.
func (u *billingUsecase) SyncEncounter(ctx context.Context, encounterID int) (*dto.BillResponse, error) {
	encounter, err := u.encounterRepo.FindByID(u.db.WithContext(ctx), encounterID)
	if err != nil {
		u.log.Warnf("Failed to find encounter %d: %+v", encounterID, err)
		return nil, err
	}
	if encounter == nil {
		return nil, ErrEncounterNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	bill, err := u.syncService.Sync(tx, encounter.ID, encounter.PatientID)
	if err != nil {
		return nil, err
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionBillingSync, "bill", strconv.Itoa(bill.ID), nil, map[string]interface{}{
			"encounter_id": encounterID,
			"total_amount": bill.TotalAmount.String(),
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.respond(ctx, bill.ID, bill)
}

func (u *billingUsecase) GetByID(ctx context.Context, billID int) (*dto.BillResponse, error) {
	bill, err := u.billRepo.FindByID(u.db.WithContext(ctx), billID)
	if err != nil {
		u.log.Warnf("Failed to find bill %d: %+v", billID, err)
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}

	if roleID, ok := middleware.GetRoleIDFromContext(ctx); ok && roleID == entity.RoleIDPatient {
		patient, err := u.currentPatient(ctx)
		if err != nil {
			return nil, err
		}
		if bill.PatientID != patient.ID {
			return nil, ErrBillNotOwned
		}
	}

	return converter.BillToResponse(bill), nil
}

// GetMyBills returns all bills for the logged-in patient.
func (u *billingUsecase) GetMyBills(ctx context.Context) (*dto.BillListResponse, error) {
	patient, err := u.currentPatient(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := u.billRepo.FindByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find bills for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.BillListResponse{
		Bills: converter.BillsToResponses(bills),
		Total: len(bills),
	}, nil
}

func (u *billingUsecase) List(ctx context.Context, search string, limit, offset int) (*dto.BillListResponse, error) {
	bills, total, err := u.billRepo.FindAll(u.db.WithContext(ctx), search, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list bills: %+v", err)
		return nil, err
	}

	return &dto.BillListResponse{
		Bills: converter.BillsToResponses(bills),
		Total: int(total),
	}, nil
}

// RecordPayment stores a payment against a bill and marks the bill PAID
// once successful payments cover the total.
func (u *billingUsecase) RecordPayment(ctx context.Context, billID int, req *dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidPaymentAmount
	}

	bill, err := u.billRepo.FindByID(u.db.WithContext(ctx), billID)
	if err != nil {
		u.log.Warnf("Failed to find bill %d: %+v", billID, err)
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	if bill.Status == entity.BillStatusCancelled {
		return nil, ErrBillCancelled
	}
	if bill.IsPaid() {
		return nil, ErrBillAlreadyPaid
	}

	payment := &entity.Payment{
		BillID:    billID,
		Amount:    req.Amount,
		Method:    entity.PaymentMethod(req.Method),
		Status:    entity.PaymentStatusSuccess,
		Reference: req.Reference,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.billRepo.CreatePayment(tx, payment); err != nil {
		u.log.Warnf("Failed to create payment for bill %d: %+v", billID, err)
		return nil, err
	}

	paid, err := u.billRepo.SumSuccessfulPayments(tx, billID)
	if err != nil {
		u.log.Warnf("Failed to sum payments for bill %d: %+v", billID, err)
		return nil, err
	}

	if paid.GreaterThanOrEqual(bill.TotalAmount) {
		bill.Status = entity.BillStatusPaid
		if err := u.billRepo.Update(tx, bill); err != nil {
			u.log.Warnf("Failed to mark bill %d paid: %+v", billID, err)
			return nil, err
		}
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionPaymentRecord, "payment", strconv.Itoa(payment.ID), map[string]interface{}{
			"bill_id": billID,
			"amount":  req.Amount.String(),
			"method":  req.Method,
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PaymentToResponse(payment), nil
}

func (u *billingUsecase) currentPatient(ctx context.Context) (*entity.Patient, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient for user %s: %+v", userID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return patient, nil
}

func (u *billingUsecase) respond(ctx context.Context, billID int, fallback *entity.Bill) (*dto.BillResponse, error) {
	full, err := u.billRepo.FindByID(u.db.WithContext(ctx), billID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload bill %d: %+v", billID, err)
		return converter.BillToResponse(fallback), nil
	}
	return converter.BillToResponse(full), nil
}
