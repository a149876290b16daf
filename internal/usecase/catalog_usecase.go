package usecase

import (
	"context"
	"errors"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMedicationNotFound  = errors.New("medication not found")
	ErrProcedureNotFound   = errors.New("procedure not found")
	ErrProcedureCodeExists = errors.New("procedure code already exists")
)

type CatalogUsecase interface {
	CreateMedication(ctx context.Context, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error)
	UpdateMedication(ctx context.Context, id int, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error)
	DeleteMedication(ctx context.Context, id int) error
	GetMedication(ctx context.Context, id int) (*dto.MedicationResponse, error)
	ListMedications(ctx context.Context, search string, limit, offset int) (*dto.MedicationListResponse, error)

	CreateProcedure(ctx context.Context, req *dto.CreateProcedureRequest) (*dto.ProcedureResponse, error)
	UpdateProcedure(ctx context.Context, id int, req *dto.UpdateProcedureRequest) (*dto.ProcedureResponse, error)
	DeleteProcedure(ctx context.Context, id int) error
	GetProcedure(ctx context.Context, id int) (*dto.ProcedureResponse, error)
	ListProcedures(ctx context.Context, search string, limit, offset int) (*dto.ProcedureListResponse, error)
}

type catalogUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	medicationRepo repository.MedicationRepository
	procedureRepo  repository.ProcedureRepository
}

func NewCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicationRepo repository.MedicationRepository,
	procedureRepo repository.ProcedureRepository,
) CatalogUsecase {
	return &catalogUsecase{
		db:             db,
		log:            log,
		medicationRepo: medicationRepo,
		procedureRepo:  procedureRepo,
	}
}

func (u *catalogUsecase) CreateMedication(ctx context.Context, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error) {
	medication := &entity.Medication{
		GenericName: req.GenericName,
		BrandName:   req.BrandName,
		Form:        entity.MedicationForm(req.Form),
		Strength:    req.Strength,
		UnitPrice:   req.UnitPrice,
	}

	if err := u.medicationRepo.Create(u.db.WithContext(ctx), medication); err != nil {
		u.log.Warnf("Failed to create medication: %+v", err)
		return nil, err
	}

	return converter.MedicationToResponse(medication), nil
}

func (u *catalogUsecase) UpdateMedication(ctx context.Context, id int, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error) {
	medication, err := u.medicationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medication %d: %+v", id, err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}

	if req.GenericName != "" {
		medication.GenericName = req.GenericName
	}
	if req.BrandName != "" {
		medication.BrandName = req.BrandName
	}
	if req.Form != "" {
		medication.Form = entity.MedicationForm(req.Form)
	}
	if req.Strength != "" {
		medication.Strength = req.Strength
	}
	if req.UnitPrice != nil {
		medication.UnitPrice = *req.UnitPrice
	}

	if err := u.medicationRepo.Update(u.db.WithContext(ctx), medication); err != nil {
		u.log.Warnf("Failed to update medication %d: %+v", id, err)
		return nil, err
	}

	return converter.MedicationToResponse(medication), nil
}

func (u *catalogUsecase) DeleteMedication(ctx context.Context, id int) error {
	rows, err := u.medicationRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete medication %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrMedicationNotFound
	}
	return nil
}

func (u *catalogUsecase) GetMedication(ctx context.Context, id int) (*dto.MedicationResponse, error) {
	medication, err := u.medicationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medication %d: %+v", id, err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}
	return converter.MedicationToResponse(medication), nil
}

func (u *catalogUsecase) ListMedications(ctx context.Context, search string, limit, offset int) (*dto.MedicationListResponse, error) {
	medications, total, err := u.medicationRepo.FindAll(u.db.WithContext(ctx), search, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list medications: %+v", err)
		return nil, err
	}

	return &dto.MedicationListResponse{
		Medications: converter.MedicationsToResponses(medications),
		Total:       int(total),
	}, nil
}

func (u *catalogUsecase) CreateProcedure(ctx context.Context, req *dto.CreateProcedureRequest) (*dto.ProcedureResponse, error) {
	procedure := &entity.Procedure{
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
		BasePrice:    req.BasePrice,
	}
	if req.DurationMinutes > 0 {
		procedure.DurationMinutes = req.DurationMinutes
	}

	if err := u.procedureRepo.Create(u.db.WithContext(ctx), procedure); err != nil {
		if isDuplicateKeyError(err, "code") {
			return nil, ErrProcedureCodeExists
		}
		u.log.Warnf("Failed to create procedure: %+v", err)
		return nil, err
	}

	return converter.ProcedureToResponse(procedure), nil
}

func (u *catalogUsecase) UpdateProcedure(ctx context.Context, id int, req *dto.UpdateProcedureRequest) (*dto.ProcedureResponse, error) {
	procedure, err := u.procedureRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find procedure %d: %+v", id, err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}

	if req.Name != "" {
		procedure.Name = req.Name
	}
	if req.Description != "" {
		procedure.Description = req.Description
	}
	if req.DepartmentID != nil {
		procedure.DepartmentID = req.DepartmentID
	}
	if req.DurationMinutes > 0 {
		procedure.DurationMinutes = req.DurationMinutes
	}
	if req.BasePrice != nil {
		procedure.BasePrice = *req.BasePrice
	}

	if err := u.procedureRepo.Update(u.db.WithContext(ctx), procedure); err != nil {
		u.log.Warnf("Failed to update procedure %d: %+v", id, err)
		return nil, err
	}

	return converter.ProcedureToResponse(procedure), nil
}

func (u *catalogUsecase) DeleteProcedure(ctx context.Context, id int) error {
	rows, err := u.procedureRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete procedure %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrProcedureNotFound
	}
	return nil
}

func (u *catalogUsecase) GetProcedure(ctx context.Context, id int) (*dto.ProcedureResponse, error) {
	procedure, err := u.procedureRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find procedure %d: %+v", id, err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}
	return converter.ProcedureToResponse(procedure), nil
}

func (u *catalogUsecase) ListProcedures(ctx context.Context, search string, limit, offset int) (*dto.ProcedureListResponse, error) {
	procedures, total, err := u.procedureRepo.FindAll(u.db.WithContext(ctx), search, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list procedures: %+v", err)
		return nil, err
	}

	return &dto.ProcedureListResponse{
		Procedures: converter.ProceduresToResponses(procedures),
		Total:      int(total),
	}, nil
}
