package service

import (
	"testing"

	"hospital-management/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuildBillLinesPrescriptions(t *testing.T) {
	prescriptions := []entity.Prescription{
		{
			MedicationID:    7,
			FrequencyPerDay: 2,
			DurationDays:    5,
			Medication: entity.Medication{
				ID:          7,
				GenericName: "Amoxicillin",
				Strength:    "500mg",
				UnitPrice:   price("10.00"),
			},
		},
	}

	lines, total, err := buildBillLines(42, prescriptions, nil)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.Equal(t, 42, line.BillID)
	assert.Equal(t, entity.BillLineTypeMedication, line.LineType)
	require.NotNil(t, line.MedicationID)
	assert.Equal(t, 7, *line.MedicationID)
	assert.Equal(t, "Amoxicillin", line.Description, "description is the generic name")
	assert.True(t, line.Quantity.Equal(price("10")), "quantity = frequency x duration")
	assert.True(t, line.UnitPrice.Equal(price("10.00")))
	assert.True(t, total.Equal(price("100.00")), "total = %s", total)
}

func TestBuildBillLinesQuantityFloor(t *testing.T) {
	prescriptions := []entity.Prescription{
		{
			MedicationID:    3,
			FrequencyPerDay: 0,
			DurationDays:    0,
			Medication:      entity.Medication{ID: 3, GenericName: "Paracetamol", UnitPrice: price("2.50")},
		},
	}
	procedures := []entity.EncounterProcedure{
		{
			ProcedureID: 9,
			Quantity:    0,
			Procedure:   entity.Procedure{ID: 9, Name: "X-Ray", BasePrice: price("80.00")},
		},
	}

	lines, total, err := buildBillLines(1, prescriptions, procedures)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.True(t, lines[0].Quantity.Equal(price("1")), "zero prescription quantity floors to 1")
	assert.True(t, lines[1].Quantity.Equal(price("1")), "zero procedure quantity floors to 1")
	assert.True(t, total.Equal(price("82.50")))
}

func TestBuildBillLinesMixed(t *testing.T) {
	prescriptions := []entity.Prescription{
		{
			MedicationID:    1,
			FrequencyPerDay: 3,
			DurationDays:    7,
			Medication:      entity.Medication{ID: 1, GenericName: "Ibuprofen", UnitPrice: price("1.25")},
		},
	}
	procedures := []entity.EncounterProcedure{
		{
			ProcedureID: 2,
			Quantity:    2,
			Procedure:   entity.Procedure{ID: 2, Name: "Dressing Change", BasePrice: price("15.00")},
		},
	}

	lines, total, err := buildBillLines(5, prescriptions, procedures)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// 3 x 7 x 1.25 + 2 x 15.00
	assert.True(t, total.Equal(price("56.25")), "total = %s", total)
	assert.Equal(t, entity.BillLineTypeProcedure, lines[1].LineType)
	assert.Equal(t, "Dressing Change", lines[1].Description)
}

func TestBuildBillLinesMissingCatalogEntry(t *testing.T) {
	prescriptions := []entity.Prescription{
		{MedicationID: 99, FrequencyPerDay: 1, DurationDays: 1},
	}

	_, _, err := buildBillLines(1, prescriptions, nil)
	assert.ErrorIs(t, err, ErrCatalogEntryMissing)

	procedures := []entity.EncounterProcedure{
		{ProcedureID: 99, Quantity: 1},
	}

	_, _, err = buildBillLines(1, nil, procedures)
	assert.ErrorIs(t, err, ErrCatalogEntryMissing)
}

func TestBuildBillLinesEmpty(t *testing.T) {
	lines, total, err := buildBillLines(1, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.True(t, total.IsZero())
}

// In-memory repository stubs for exercising Sync without a database. The
// repositories take the transaction per call, so the stubs simply ignore it.

type billRepoStub struct {
	bill  *entity.Bill
	lines []entity.BillLine
}

func (s *billRepoStub) Create(_ *gorm.DB, bill *entity.Bill) error {
	bill.ID = 1
	stored := *bill
	s.bill = &stored
	return nil
}

func (s *billRepoStub) Update(_ *gorm.DB, bill *entity.Bill) error {
	stored := *bill
	s.bill = &stored
	return nil
}

func (s *billRepoStub) FindByEncounterAndPatient(_ *gorm.DB, encounterID, patientID int) (*entity.Bill, error) {
	if s.bill == nil || s.bill.EncounterID != encounterID || s.bill.PatientID != patientID {
		return nil, nil
	}
	found := *s.bill
	return &found, nil
}

func (s *billRepoStub) DeleteLines(_ *gorm.DB, billID int) error {
	s.lines = nil
	return nil
}

func (s *billRepoStub) CreateLines(_ *gorm.DB, lines []entity.BillLine) error {
	s.lines = append([]entity.BillLine{}, lines...)
	return nil
}

func (s *billRepoStub) FindByID(_ *gorm.DB, id int) (*entity.Bill, error) { return nil, nil }
func (s *billRepoStub) FindByPatientID(_ *gorm.DB, patientID int) ([]entity.Bill, error) {
	return nil, nil
}
func (s *billRepoStub) FindAll(_ *gorm.DB, search string, limit, offset int) ([]entity.Bill, int64, error) {
	return nil, 0, nil
}
func (s *billRepoStub) FindLines(_ *gorm.DB, billID int) ([]entity.BillLine, error) {
	return s.lines, nil
}
func (s *billRepoStub) CreatePayment(_ *gorm.DB, payment *entity.Payment) error { return nil }
func (s *billRepoStub) SumSuccessfulPayments(_ *gorm.DB, billID int) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type prescriptionRepoStub struct {
	prescriptions []entity.Prescription
}

func (s *prescriptionRepoStub) Create(_ *gorm.DB, p *entity.Prescription) error { return nil }
func (s *prescriptionRepoStub) Delete(_ *gorm.DB, id int) (int64, error)        { return 0, nil }
func (s *prescriptionRepoStub) FindByID(_ *gorm.DB, id int) (*entity.Prescription, error) {
	return nil, nil
}
func (s *prescriptionRepoStub) FindByEncounterID(_ *gorm.DB, encounterID int) ([]entity.Prescription, error) {
	return s.prescriptions, nil
}

type procedureRepoStub struct {
	procedures []entity.EncounterProcedure
}

func (s *procedureRepoStub) Create(_ *gorm.DB, p *entity.EncounterProcedure) error { return nil }
func (s *procedureRepoStub) Delete(_ *gorm.DB, id int) (int64, error)              { return 0, nil }
func (s *procedureRepoStub) FindByID(_ *gorm.DB, id int) (*entity.EncounterProcedure, error) {
	return nil, nil
}
func (s *procedureRepoStub) FindByEncounterID(_ *gorm.DB, encounterID int) ([]entity.EncounterProcedure, error) {
	return s.procedures, nil
}

func syncFixture() (*BillingSyncService, *billRepoStub, *prescriptionRepoStub, *procedureRepoStub) {
	billRepo := &billRepoStub{}
	prescriptionRepo := &prescriptionRepoStub{
		prescriptions: []entity.Prescription{
			{
				MedicationID:    7,
				FrequencyPerDay: 2,
				DurationDays:    5,
				Medication:      entity.Medication{ID: 7, GenericName: "Amoxicillin", UnitPrice: price("10.00")},
			},
		},
	}
	procedureRepo := &procedureRepoStub{
		procedures: []entity.EncounterProcedure{
			{
				ProcedureID: 9,
				Quantity:    1,
				Procedure:   entity.Procedure{ID: 9, Name: "X-Ray", BasePrice: price("80.00")},
			},
		},
	}

	svc := NewBillingSyncService(logrus.New(), billRepo, prescriptionRepo, procedureRepo)
	return svc, billRepo, prescriptionRepo, procedureRepo
}

func TestSyncCreatesBillOnFirstRun(t *testing.T) {
	svc, billRepo, _, _ := syncFixture()

	bill, err := svc.Sync(nil, 10, 20)
	require.NoError(t, err)

	assert.Equal(t, 1, bill.ID)
	assert.Equal(t, 10, bill.EncounterID)
	assert.Equal(t, 20, bill.PatientID)
	assert.Equal(t, entity.BillStatusPending, bill.Status)
	assert.True(t, bill.TotalAmount.Equal(price("180.00")), "total = %s", bill.TotalAmount)
	require.Len(t, billRepo.lines, 2)
	assert.Equal(t, "Amoxicillin", billRepo.lines[0].Description)
	assert.Equal(t, "X-Ray", billRepo.lines[1].Description)
}

func TestSyncIsIdempotent(t *testing.T) {
	svc, billRepo, _, _ := syncFixture()

	first, err := svc.Sync(nil, 10, 20)
	require.NoError(t, err)
	firstLines := append([]entity.BillLine{}, billRepo.lines...)

	second, err := svc.Sync(nil, 10, 20)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "second sync reuses the bill")
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	require.Len(t, billRepo.lines, len(firstLines))
	for i := range firstLines {
		assert.Equal(t, firstLines[i].LineType, billRepo.lines[i].LineType)
		assert.Equal(t, firstLines[i].Description, billRepo.lines[i].Description)
		assert.True(t, firstLines[i].Quantity.Equal(billRepo.lines[i].Quantity))
		assert.True(t, firstLines[i].UnitPrice.Equal(billRepo.lines[i].UnitPrice))
	}
}

func TestSyncPreservesBillStatus(t *testing.T) {
	svc, billRepo, _, _ := syncFixture()

	_, err := svc.Sync(nil, 10, 20)
	require.NoError(t, err)

	// Settle the bill between syncs; a later clinical mutation must not
	// reopen it.
	billRepo.bill.Status = entity.BillStatusPaid

	bill, err := svc.Sync(nil, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusPaid, bill.Status)
	assert.Equal(t, entity.BillStatusPaid, billRepo.bill.Status)
}

func TestSyncDropsRemovedPrescription(t *testing.T) {
	svc, billRepo, prescriptionRepo, _ := syncFixture()

	first, err := svc.Sync(nil, 10, 20)
	require.NoError(t, err)
	assert.True(t, first.TotalAmount.Equal(price("180.00")))

	prescriptionRepo.prescriptions = nil

	second, err := svc.Sync(nil, 10, 20)
	require.NoError(t, err)
	assert.True(t, second.TotalAmount.Equal(price("80.00")), "total = %s", second.TotalAmount)
	require.Len(t, billRepo.lines, 1)
	assert.Equal(t, entity.BillLineTypeProcedure, billRepo.lines[0].LineType)
}

func TestSyncAbortsOnMissingCatalogEntry(t *testing.T) {
	svc, billRepo, prescriptionRepo, _ := syncFixture()

	_, err := svc.Sync(nil, 10, 20)
	require.NoError(t, err)
	linesBefore := len(billRepo.lines)

	// Catalog row no longer preloadable: the sync must fail before touching
	// the existing lines.
	prescriptionRepo.prescriptions = []entity.Prescription{{MedicationID: 99}}

	_, err = svc.Sync(nil, 10, 20)
	assert.ErrorIs(t, err, ErrCatalogEntryMissing)
	assert.Len(t, billRepo.lines, linesBefore, "existing lines untouched on abort")
}
