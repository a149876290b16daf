package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

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
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentNotOwned         = errors.New("appointment does not belong to you")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrAppointmentFinalized        = errors.New("appointment can no longer be changed")
	ErrDoctorNotFound              = errors.New("doctor not found")
	ErrPatientNotFound             = errors.New("patient record not found")
	ErrInvalidSlot                 = errors.New("start time is not a bookable slot")
	ErrPastDate                    = errors.New("cannot book an appointment in the past")
	ErrPastTime                    = errors.New("cannot book a slot that has already started today")
	ErrSlotTaken                   = errors.New("slot is already booked for this doctor")
	ErrInvalidStatus               = errors.New("invalid appointment status")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, appointmentID int, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, appointmentID int) error
	UpdateStatus(ctx context.Context, appointmentID int, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, appointmentID int) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	List(ctx context.Context, search string, limit, offset int) (*dto.AppointmentListResponse, error)
	GetAvailability(ctx context.Context, doctorID int, date string) (*dto.SlotAvailabilityResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
	slotCache       *service.SlotCacheService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
		slotCache:       slotCache,
	}
}

// validateSlot checks a requested slot against the clock and the doctor's
// existing active appointments. It returns the computed end time on success.
//
// Rules, in order:
//   - the start time must be one of the fixed bookable slots
//   - the date must not be before today
//   - on today's date the slot must not have started yet
//   - the [start, end) interval must not overlap any active appointment
func validateSlot(now time.Time, date time.Time, start string, existing []entity.Appointment) (string, error) {
	if !entity.IsValidSlot(start) {
		return "", ErrInvalidSlot
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return "", ErrPastDate
	}
	if date.Equal(today) && start <= now.Format("15:04") {
		return "", ErrPastTime
	}

	end := entity.SlotEnd(start)
	for i := range existing {
		if existing[i].Overlaps(start, end) {
			return "", ErrSlotTaken
		}
	}

	return end, nil
}

// applyReschedule moves an appointment to a new doctor, date and slot.
// Status is left untouched: only a fresh booking forces BOOKED, a moved
// CONFIRMED appointment stays CONFIRMED.
func applyReschedule(a *entity.Appointment, doctorID int, date time.Time, start, end, reason string) {
	a.DoctorID = doctorID
	a.AppointmentDate = date
	a.StartTime = start
	a.EndTime = end
	if reason != "" {
		a.Reason = reason
	}
}

// Book creates a 30-minute appointment for the logged-in patient. The slot
// is validated against the doctor's active appointments for that day and
// the status is always set to BOOKED regardless of the request.
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, err := u.currentPatient(ctx)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	existing, err := u.appointmentRepo.FindActiveByDoctorAndDate(u.db.WithContext(ctx), req.DoctorID, date, 0)
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %d on %s: %+v", req.DoctorID, req.AppointmentDate, err)
		return nil, err
	}

	endTime, err := validateSlot(time.Now().UTC(), date, req.StartTime, existing)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:       patient.ID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		Reason:          req.Reason,
		Status:          entity.AppointmentStatusBooked,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		// Two requests can pass validation concurrently; the partial unique
		// index on (doctor, date, start_time) decides the winner.
		if isDuplicateKeyError(err, "uq_appointment_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentBook, "appointment", strconv.Itoa(appointment.ID), map[string]interface{}{
			"doctor_id":  req.DoctorID,
			"date":       req.AppointmentDate,
			"start_time": req.StartTime,
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.Invalidate(ctx, req.DoctorID, date)

	return u.respond(ctx, appointment.ID, appointment)
}

// Reschedule moves an appointment to a new doctor, date or slot. The new
// slot goes through the same validation as a fresh booking, excluding the
// appointment itself from the overlap check.
func (u *appointmentUsecase) Reschedule(ctx context.Context, appointmentID int, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findOwned(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if appointment.IsCancelled() {
		return nil, ErrAppointmentAlreadyCancelled
	}
	if appointment.Status == entity.AppointmentStatusCompleted {
		return nil, ErrAppointmentFinalized
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	existing, err := u.appointmentRepo.FindActiveByDoctorAndDate(u.db.WithContext(ctx), req.DoctorID, date, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %d on %s: %+v", req.DoctorID, req.AppointmentDate, err)
		return nil, err
	}

	endTime, err := validateSlot(time.Now().UTC(), date, req.StartTime, existing)
	if err != nil {
		return nil, err
	}

	oldDoctorID := appointment.DoctorID
	oldDate := appointment.AppointmentDate
	oldValue := map[string]interface{}{
		"doctor_id":  appointment.DoctorID,
		"date":       appointment.AppointmentDate.Format("2006-01-02"),
		"start_time": appointment.StartTime,
	}

	applyReschedule(appointment, req.DoctorID, date, req.StartTime, endTime, req.Reason)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "uq_appointment_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to update appointment %d: %+v", appointmentID, err)
		return nil, err
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentMove, "appointment", strconv.Itoa(appointment.ID), oldValue, map[string]interface{}{
			"doctor_id":  req.DoctorID,
			"date":       req.AppointmentDate,
			"start_time": req.StartTime,
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.Invalidate(ctx, oldDoctorID, oldDate)
	u.slotCache.Invalidate(ctx, req.DoctorID, date)

	return u.respond(ctx, appointment.ID, appointment)
}

// Cancel marks an appointment CANCELLED, freeing its slot for rebooking.
func (u *appointmentUsecase) Cancel(ctx context.Context, appointmentID int) error {
	appointment, err := u.findOwned(ctx, appointmentID)
	if err != nil {
		return err
	}

	if appointment.IsCancelled() {
		return ErrAppointmentAlreadyCancelled
	}
	if appointment.Status == entity.AppointmentStatusCompleted {
		return ErrAppointmentFinalized
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.UpdateStatus(tx, appointmentID, entity.AppointmentStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %d: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentCancel, "appointment", strconv.Itoa(appointmentID), string(appointment.Status), string(entity.AppointmentStatusCancelled))
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.slotCache.Invalidate(ctx, appointment.DoctorID, appointment.AppointmentDate)
	return nil
}

// UpdateStatus moves an appointment through the front-desk workflow. Only
// staff routes reach this. CANCELLED and COMPLETED are terminal.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID int, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	status := entity.AppointmentStatus(req.Status)
	if !entity.ValidAppointmentStatus(status) {
		return nil, ErrInvalidStatus
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.Status == entity.AppointmentStatusCancelled || appointment.Status == entity.AppointmentStatusCompleted {
		return nil, ErrAppointmentFinalized
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.UpdateStatus(tx, appointmentID, status)
	if err != nil {
		u.log.Warnf("Failed to update appointment %d status: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAppointmentNotFound
	}

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentStatus, "appointment", strconv.Itoa(appointmentID), string(appointment.Status), req.Status)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if status == entity.AppointmentStatusCancelled {
		u.slotCache.Invalidate(ctx, appointment.DoctorID, appointment.AppointmentDate)
	}

	appointment.Status = status
	return u.respond(ctx, appointmentID, appointment)
}

func (u *appointmentUsecase) GetByID(ctx context.Context, appointmentID int) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if roleID, ok := middleware.GetRoleIDFromContext(ctx); ok && roleID == entity.RoleIDPatient {
		patient, err := u.currentPatient(ctx)
		if err != nil {
			return nil, err
		}
		if appointment.PatientID != patient.ID {
			return nil, ErrAppointmentNotOwned
		}
	}

	return converter.AppointmentToResponse(appointment), nil
}

// GetMyAppointments returns all appointments for the logged-in patient.
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patient, err := u.currentPatient(ctx)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) List(ctx context.Context, search string, limit, offset int) (*dto.AppointmentListResponse, error) {
	appointments, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), search, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        int(total),
	}, nil
}

// GetAvailability returns every fixed slot for a doctor and date with its
// availability. Booked start times come from the Redis cache when warm and
// fall back to PostgreSQL on a miss.
func (u *appointmentUsecase) GetAvailability(ctx context.Context, doctorID int, dateStr string) (*dto.SlotAvailabilityResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	booked, cached, err := u.slotCache.GetBookedSlots(ctx, doctorID, date)
	if err != nil || !cached {
		appointments, dbErr := u.appointmentRepo.FindActiveByDoctorAndDate(u.db.WithContext(ctx), doctorID, date, 0)
		if dbErr != nil {
			u.log.Warnf("Failed to load appointments for doctor %d on %s: %+v", doctorID, dateStr, dbErr)
			return nil, dbErr
		}

		booked = make([]string, 0, len(appointments))
		for i := range appointments {
			booked = append(booked, entity.SlotLabel(appointments[i].StartTime))
		}

		u.slotCache.SetBookedSlots(ctx, doctorID, date, booked)
	}

	bookedSet := make(map[string]struct{}, len(booked))
	for _, slot := range booked {
		bookedSet[entity.SlotLabel(slot)] = struct{}{}
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	nowLabel := now.Format("15:04")

	slots := make([]dto.SlotResponse, 0, len(entity.TimeSlots))
	for _, start := range entity.TimeSlots {
		_, taken := bookedSet[start]
		past := date.Before(today) || (date.Equal(today) && start <= nowLabel)
		slots = append(slots, dto.SlotResponse{
			StartTime: start,
			EndTime:   entity.SlotEnd(start),
			Available: !taken && !past,
		})
	}

	return &dto.SlotAvailabilityResponse{
		DoctorID: doctorID,
		Date:     dateStr,
		Slots:    slots,
	}, nil
}

// currentPatient resolves the logged-in user to their patient record.
func (u *appointmentUsecase) currentPatient(ctx context.Context) (*entity.Patient, error) {
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

// findOwned loads an appointment and enforces ownership for patient callers.
// Staff callers can act on any appointment.
func (u *appointmentUsecase) findOwned(ctx context.Context, appointmentID int) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if roleID, ok := middleware.GetRoleIDFromContext(ctx); ok && roleID == entity.RoleIDPatient {
		patient, err := u.currentPatient(ctx)
		if err != nil {
			return nil, err
		}
		if appointment.PatientID != patient.ID {
			return nil, ErrAppointmentNotOwned
		}
	}

	return appointment, nil
}

// respond reloads the appointment with its relations for the response,
// falling back to the in-memory copy if the reload fails.
func (u *appointmentUsecase) respond(ctx context.Context, appointmentID int, fallback *entity.Appointment) (*dto.AppointmentResponse, error) {
	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", appointmentID, err)
		return converter.AppointmentToResponse(fallback), nil
	}
	return converter.AppointmentToResponse(full), nil
}
