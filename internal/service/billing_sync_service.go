package service

import (
	"errors"
	"time"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrCatalogEntryMissing is returned when a prescription or procedure usage
// references a catalog row that no longer exists. The sync aborts and the
// caller's transaction rolls back, leaving the previous bill intact.
var ErrCatalogEntryMissing = errors.New("referenced catalog entry no longer exists")

// BillingSyncService regenerates the bill for an encounter from its clinical
// records. For each (encounter, patient) pair there is exactly one bill:
// the first sync creates it, every later sync reuses it. A sync replaces all
// bill lines and recomputes the total. It never touches the bill status, so
// syncing is idempotent and safe to run after every clinical mutation.
type BillingSyncService struct {
	log              *logrus.Logger
	billRepo         repository.BillRepository
	prescriptionRepo repository.PrescriptionRepository
	procedureRepo    repository.EncounterProcedureRepository
}

func NewBillingSyncService(
	log *logrus.Logger,
	billRepo repository.BillRepository,
	prescriptionRepo repository.PrescriptionRepository,
	procedureRepo repository.EncounterProcedureRepository,
) *BillingSyncService {
	return &BillingSyncService{
		log:              log,
		billRepo:         billRepo,
		prescriptionRepo: prescriptionRepo,
		procedureRepo:    procedureRepo,
	}
}

// Sync rebuilds the bill for an encounter inside the caller's transaction.
//
// Steps:
//  1. find or create the bill for (encounter, patient)
//  2. delete every existing bill line
//  3. rebuild lines from prescriptions and procedure usages
//  4. store the recomputed total
func (s *BillingSyncService) Sync(tx *gorm.DB, encounterID, patientID int) (*entity.Bill, error) {
	bill, err := s.billRepo.FindByEncounterAndPatient(tx, encounterID, patientID)
	if err != nil {
		s.log.Warnf("Failed to find bill for encounter %d: %+v", encounterID, err)
		return nil, err
	}

	if bill == nil {
		bill = &entity.Bill{
			EncounterID: encounterID,
			PatientID:   patientID,
			BillDate:    time.Now().UTC(),
			TotalAmount: decimal.Zero,
			Status:      entity.BillStatusPending,
		}
		if err := s.billRepo.Create(tx, bill); err != nil {
			// A concurrent sync may have created it between find and create.
			if isUniqueViolation(err, "uq_bill_encounter_patient") {
				bill, err = s.billRepo.FindByEncounterAndPatient(tx, encounterID, patientID)
				if err != nil || bill == nil {
					return nil, err
				}
			} else {
				s.log.Warnf("Failed to create bill for encounter %d: %+v", encounterID, err)
				return nil, err
			}
		}
	}

	prescriptions, err := s.prescriptionRepo.FindByEncounterID(tx, encounterID)
	if err != nil {
		s.log.Warnf("Failed to load prescriptions for encounter %d: %+v", encounterID, err)
		return nil, err
	}

	procedures, err := s.procedureRepo.FindByEncounterID(tx, encounterID)
	if err != nil {
		s.log.Warnf("Failed to load procedures for encounter %d: %+v", encounterID, err)
		return nil, err
	}

	lines, total, err := buildBillLines(bill.ID, prescriptions, procedures)
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.DeleteLines(tx, bill.ID); err != nil {
		s.log.Warnf("Failed to delete bill lines for bill %d: %+v", bill.ID, err)
		return nil, err
	}

	if err := s.billRepo.CreateLines(tx, lines); err != nil {
		s.log.Warnf("Failed to create bill lines for bill %d: %+v", bill.ID, err)
		return nil, err
	}

	bill.TotalAmount = total
	if err := s.billRepo.Update(tx, bill); err != nil {
		s.log.Warnf("Failed to update bill %d total: %+v", bill.ID, err)
		return nil, err
	}

	return bill, nil
}

// buildBillLines derives bill lines from the encounter's clinical records.
//
// Medication lines charge frequency per day times duration in days, floored
// to 1, at the medication unit price. Procedure lines charge the recorded
// quantity, floored to 1, at the procedure base price. The associated
// catalog rows must be preloaded; a missing one fails the whole build.
func buildBillLines(billID int, prescriptions []entity.Prescription, procedures []entity.EncounterProcedure) ([]entity.BillLine, decimal.Decimal, error) {
	lines := make([]entity.BillLine, 0, len(prescriptions)+len(procedures))
	total := decimal.Zero

	for i := range prescriptions {
		p := &prescriptions[i]
		if p.Medication.ID == 0 {
			return nil, decimal.Zero, ErrCatalogEntryMissing
		}

		medicationID := p.MedicationID
		line := entity.BillLine{
			BillID:       billID,
			LineType:     entity.BillLineTypeMedication,
			MedicationID: &medicationID,
			Description:  p.Medication.GenericName,
			Quantity:     decimal.NewFromInt(int64(p.BilledQuantity())),
			UnitPrice:    p.Medication.UnitPrice,
		}
		total = total.Add(line.LineTotal())
		lines = append(lines, line)
	}

	for i := range procedures {
		ep := &procedures[i]
		if ep.Procedure.ID == 0 {
			return nil, decimal.Zero, ErrCatalogEntryMissing
		}

		qty := ep.Quantity
		if qty < 1 {
			qty = 1
		}

		procedureID := ep.ProcedureID
		line := entity.BillLine{
			BillID:      billID,
			LineType:    entity.BillLineTypeProcedure,
			ProcedureID: &procedureID,
			Description: ep.Procedure.Name,
			Quantity:    decimal.NewFromInt(int64(qty)),
			UnitPrice:   ep.Procedure.BasePrice,
		}
		total = total.Add(line.LineTotal())
		lines = append(lines, line)
	}

	return lines, total, nil
}

// isUniqueViolation checks for a PostgreSQL unique violation on the named
// constraint.
func isUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
	}
	return false
}
