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
	ErrEncounterNotFound        = errors.New("encounter not found")
	ErrEncounterNotOwned        = errors.New("encounter does not belong to you")
	ErrNotAppointmentDoctor     = errors.New("appointment is assigned to another doctor")
	ErrAppointmentIsCancelled   = errors.New("cannot open a visit for a cancelled appointment")
	ErrPrescriptionNotFound     = errors.New("prescription not found")
	ErrProcedureUsageNotFound   = errors.New("procedure record not found")
	ErrProcedureAlreadyRecorded = errors.New("procedure already recorded for this encounter")
)

type EncounterUsecase interface {
	Open(ctx context.Context, appointmentID int) (*dto.EncounterResponse, error)
	Update(ctx context.Context, encounterID int, req *dto.UpdateEncounterRequest) (*dto.EncounterResponse, error)
	GetByID(ctx context.Context, encounterID int) (*dto.EncounterResponse, error)
	GetMyEncounters(ctx context.Context) (*dto.EncounterListResponse, error)
	List(ctx context.Context, search string, limit, offset int) (*dto.EncounterListResponse, error)

	AddPrescription(ctx context.Context, encounterID int, req *dto.AddPrescriptionRequest) (*dto.PrescriptionResponse, error)
	DeletePrescription(ctx context.Context, encounterID, prescriptionID int) error
	GetPrescriptions(ctx context.Context, encounterID int) (*dto.PrescriptionListResponse, error)

	AddProcedure(ctx context.Context, encounterID int, req *dto.AddEncounterProcedureRequest) (*dto.EncounterProcedureResponse, error)
	DeleteProcedure(ctx context.Context, encounterID, procedureUsageID int) error
	GetProcedures(ctx context.Context, encounterID int) (*dto.EncounterProcedureListResponse, error)
}

type encounterUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	encounterRepo    repository.EncounterRepository
	prescriptionRepo repository.PrescriptionRepository
	encProcRepo      repository.EncounterProcedureRepository
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	doctorRepo       repository.DoctorRepository
	medicationRepo   repository.MedicationRepository
	procedureRepo    repository.ProcedureRepository
	syncService      *service.BillingSyncService
	auditService     service.AuditService
}

func NewEncounterUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	encounterRepo repository.EncounterRepository,
	prescriptionRepo repository.PrescriptionRepository,
	encProcRepo repository.EncounterProcedureRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	medicationRepo repository.MedicationRepository,
	procedureRepo repository.ProcedureRepository,
	syncService *service.BillingSyncService,
	auditService service.AuditService,
) EncounterUsecase {
	return &encounterUsecase{
		db:               db,
		log:              log,
		encounterRepo:    encounterRepo,
		prescriptionRepo: prescriptionRepo,
		encProcRepo:      encProcRepo,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		doctorRepo:       doctorRepo,
		medicationRepo:   medicationRepo,
		procedureRepo:    procedureRepo,
		syncService:      syncService,
		auditService:     auditService,
	}
}

// Open turns an appointment into a clinical visit. If a visit already exists
// for the same patient, doctor and date it is returned instead of opening a
// duplicate, so a doctor can safely hit this twice.
func (u *encounterUsecase) Open(ctx context.Context, appointmentID int) (*dto.EncounterResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.IsCancelled() {
		return nil, ErrAppointmentIsCancelled
	}

	// A doctor may only open visits for their own appointments. Nurses and
	// admins can open on any doctor's behalf.
	if roleID, ok := middleware.GetRoleIDFromContext(ctx); ok && roleID == entity.RoleIDDoctor {
		if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
			doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), userID)
			if err != nil {
				u.log.Warnf("Failed to find doctor for user %s: %+v", userID, err)
				return nil, err
			}
			if doctor == nil || doctor.ID != appointment.DoctorID {
				return nil, ErrNotAppointmentDoctor
			}
		}
	}

	existing, err := u.encounterRepo.FindByPatientDoctorDate(u.db.WithContext(ctx), appointment.PatientID, appointment.DoctorID, appointment.AppointmentDate)
	if err != nil {
		u.log.Warnf("Failed to check existing encounter: %+v", err)
		return nil, err
	}
	if existing != nil {
		return u.respond(ctx, existing.ID, existing)
	}

	encounter := &entity.Encounter{
		AppointmentID: appointmentID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		EncounterDate: appointment.AppointmentDate,
		VisitType:     entity.VisitTypeConsultation,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.encounterRepo.Create(tx, encounter); err != nil {
		u.log.Warnf("Failed to create encounter: %+v", err)
		return nil, err
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionEncounterOpen, "encounter", strconv.Itoa(encounter.ID), map[string]interface{}{
			"appointment_id": appointmentID,
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.respond(ctx, encounter.ID, encounter)
}

// Update changes the clinical notes of a visit. Empty fields keep their
// current values.
func (u *encounterUsecase) Update(ctx context.Context, encounterID int, req *dto.UpdateEncounterRequest) (*dto.EncounterResponse, error) {
	encounter, err := u.find(ctx, encounterID)
	if err != nil {
		return nil, err
	}

	if req.VisitType != "" {
		encounter.VisitType = entity.VisitType(req.VisitType)
	}
	if req.Notes != "" {
		encounter.Notes = req.Notes
	}
	if req.DiagnosisSummary != "" {
		encounter.DiagnosisSummary = req.DiagnosisSummary
	}
	if req.TreatmentPlan != "" {
		encounter.TreatmentPlan = req.TreatmentPlan
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.encounterRepo.Update(tx, encounter); err != nil {
		u.log.Warnf("Failed to update encounter %d: %+v", encounterID, err)
		return nil, err
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionEncounterUpdate, "encounter", strconv.Itoa(encounterID), nil, map[string]interface{}{
			"visit_type": string(encounter.VisitType),
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.respond(ctx, encounterID, encounter)
}

func (u *encounterUsecase) GetByID(ctx context.Context, encounterID int) (*dto.EncounterResponse, error) {
	encounter, err := u.encounterRepo.FindByID(u.db.WithContext(ctx), encounterID)
	if err != nil {
		u.log.Warnf("Failed to find encounter %d: %+v", encounterID, err)
		return nil, err
	}
	if encounter == nil {
		return nil, ErrEncounterNotFound
	}

	if roleID, ok := middleware.GetRoleIDFromContext(ctx); ok && roleID == entity.RoleIDPatient {
		patient, err := u.currentPatient(ctx)
		if err != nil {
			return nil, err
		}
		if encounter.PatientID != patient.ID {
			return nil, ErrEncounterNotOwned
		}
	}

	return converter.EncounterToResponse(encounter), nil
}

// GetMyEncounters returns the visit history of the logged-in patient.
func (u *encounterUsecase) GetMyEncounters(ctx context.Context) (*dto.EncounterListResponse, error) {
	patient, err := u.currentPatient(ctx)
	if err != nil {
		return nil, err
	}

	encounters, err := u.encounterRepo.FindByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find encounters for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.EncounterListResponse{
		Encounters: converter.EncountersToResponses(encounters),
		Total:      len(encounters),
	}, nil
}

func (u *encounterUsecase) List(ctx context.Context, search string, limit, offset int) (*dto.EncounterListResponse, error) {
	encounters, total, err := u.encounterRepo.FindAll(u.db.WithContext(ctx), search, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list encounters: %+v", err)
		return nil, err
	}

	return &dto.EncounterListResponse{
		Encounters: converter.EncountersToResponses(encounters),
		Total:      int(total),
	}, nil
}

// AddPrescription records a prescription and regenerates the bill in the
// same transaction, so the bill can never drift from the clinical record.
func (u *encounterUsecase) AddPrescription(ctx context.Context, encounterID int, req *dto.AddPrescriptionRequest) (*dto.PrescriptionResponse, error) {
	encounter, err := u.find(ctx, encounterID)
	if err != nil {
		return nil, err
	}

	medication, err := u.medicationRepo.FindByID(u.db.WithContext(ctx), req.MedicationID)
	if err != nil {
		u.log.Warnf("Failed to find medication %d: %+v", req.MedicationID, err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}

	prescription := &entity.Prescription{
		EncounterID:     encounterID,
		MedicationID:    req.MedicationID,
		Dosage:          req.Dosage,
		FrequencyPerDay: req.FrequencyPerDay,
		DurationDays:    req.DurationDays,
		Instructions:    req.Instructions,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	if _, err := u.syncService.Sync(tx, encounter.ID, encounter.PatientID); err != nil {
		return nil, err
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionPrescriptionCreate, "prescription", strconv.Itoa(prescription.ID), map[string]interface{}{
			"encounter_id":  encounterID,
			"medication_id": req.MedicationID,
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), prescription.ID)
	if err != nil || full == nil {
		return converter.PrescriptionToResponse(prescription), nil
	}
	return converter.PrescriptionToResponse(full), nil
}

// DeletePrescription removes a prescription and regenerates the bill in the
// same transaction.
func (u *encounterUsecase) DeletePrescription(ctx context.Context, encounterID, prescriptionID int) error {
	encounter, err := u.find(ctx, encounterID)
	if err != nil {
		return err
	}

	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription %d: %+v", prescriptionID, err)
		return err
	}
	if prescription == nil || prescription.EncounterID != encounterID {
		return ErrPrescriptionNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.prescriptionRepo.Delete(tx, prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to delete prescription %d: %+v", prescriptionID, err)
		return err
	}
	if rows == 0 {
		return ErrPrescriptionNotFound
	}

	if _, err := u.syncService.Sync(tx, encounter.ID, encounter.PatientID); err != nil {
		return err
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionPrescriptionDelete, "prescription", strconv.Itoa(prescriptionID), map[string]interface{}{
			"encounter_id":  encounterID,
			"medication_id": prescription.MedicationID,
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *encounterUsecase) GetPrescriptions(ctx context.Context, encounterID int) (*dto.PrescriptionListResponse, error) {
	if _, err := u.find(ctx, encounterID); err != nil {
		return nil, err
	}

	prescriptions, err := u.prescriptionRepo.FindByEncounterID(u.db.WithContext(ctx), encounterID)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions for encounter %d: %+v", encounterID, err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

// AddProcedure records a performed procedure and regenerates the bill in the
// same transaction. Each procedure can be recorded once per encounter; the
// quantity covers repeats.
func (u *encounterUsecase) AddProcedure(ctx context.Context, encounterID int, req *dto.AddEncounterProcedureRequest) (*dto.EncounterProcedureResponse, error) {
	encounter, err := u.find(ctx, encounterID)
	if err != nil {
		return nil, err
	}

	procedure, err := u.procedureRepo.FindByID(u.db.WithContext(ctx), req.ProcedureID)
	if err != nil {
		u.log.Warnf("Failed to find procedure %d: %+v", req.ProcedureID, err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}

	usage := &entity.EncounterProcedure{
		EncounterID: encounterID,
		ProcedureID: req.ProcedureID,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.encProcRepo.Create(tx, usage); err != nil {
		if isDuplicateKeyError(err, "uq_encounter_procedure") {
			return nil, ErrProcedureAlreadyRecorded
		}
		u.log.Warnf("Failed to create procedure record: %+v", err)
		return nil, err
	}

	if _, err := u.syncService.Sync(tx, encounter.ID, encounter.PatientID); err != nil {
		return nil, err
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionProcedureRecord, "encounter_procedure", strconv.Itoa(usage.ID), map[string]interface{}{
			"encounter_id": encounterID,
			"procedure_id": req.ProcedureID,
			"quantity":     req.Quantity,
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.encProcRepo.FindByID(u.db.WithContext(ctx), usage.ID)
	if err != nil || full == nil {
		return converter.EncounterProcedureToResponse(usage), nil
	}
	return converter.EncounterProcedureToResponse(full), nil
}

// DeleteProcedure removes a procedure record and regenerates the bill in
// the same transaction.
func (u *encounterUsecase) DeleteProcedure(ctx context.Context, encounterID, procedureUsageID int) error {
	encounter, err := u.find(ctx, encounterID)
	if err != nil {
		return err
	}

	usage, err := u.encProcRepo.FindByID(u.db.WithContext(ctx), procedureUsageID)
	if err != nil {
		u.log.Warnf("Failed to find procedure record %d: %+v", procedureUsageID, err)
		return err
	}
	if usage == nil || usage.EncounterID != encounterID {
		return ErrProcedureUsageNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.encProcRepo.Delete(tx, procedureUsageID)
	if err != nil {
		u.log.Warnf("Failed to delete procedure record %d: %+v", procedureUsageID, err)
		return err
	}
	if rows == 0 {
		return ErrProcedureUsageNotFound
	}

	if _, err := u.syncService.Sync(tx, encounter.ID, encounter.PatientID); err != nil {
		return err
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionProcedureRemove, "encounter_procedure", strconv.Itoa(procedureUsageID), map[string]interface{}{
			"encounter_id": encounterID,
			"procedure_id": usage.ProcedureID,
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *encounterUsecase) GetProcedures(ctx context.Context, encounterID int) (*dto.EncounterProcedureListResponse, error) {
	if _, err := u.find(ctx, encounterID); err != nil {
		return nil, err
	}

	procedures, err := u.encProcRepo.FindByEncounterID(u.db.WithContext(ctx), encounterID)
	if err != nil {
		u.log.Warnf("Failed to find procedures for encounter %d: %+v", encounterID, err)
		return nil, err
	}

	return &dto.EncounterProcedureListResponse{
		Procedures: converter.EncounterProceduresToResponses(procedures),
		Total:      len(procedures),
	}, nil
}

func (u *encounterUsecase) find(ctx context.Context, encounterID int) (*entity.Encounter, error) {
	encounter, err := u.encounterRepo.FindByID(u.db.WithContext(ctx), encounterID)
	if err != nil {
		u.log.Warnf("Failed to find encounter %d: %+v", encounterID, err)
		return nil, err
	}
	if encounter == nil {
		return nil, ErrEncounterNotFound
	}
	return encounter, nil
}

func (u *encounterUsecase) currentPatient(ctx context.Context) (*entity.Patient, error) {
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

func (u *encounterUsecase) respond(ctx context.Context, encounterID int, fallback *entity.Encounter) (*dto.EncounterResponse, error) {
	full, err := u.encounterRepo.FindByID(u.db.WithContext(ctx), encounterID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload encounter %d: %+v", encounterID, err)
		return converter.EncounterToResponse(fallback), nil
	}
	return converter.EncounterToResponse(full), nil
}
