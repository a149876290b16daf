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
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDoctorEmailExists  = errors.New("doctor email already exists")
)

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*dto.DoctorResponse, error)
	List(ctx context.Context, search string, limit, offset int) (*dto.DoctorListResponse, error)

	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
}

type doctorUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	doctorRepo     repository.DoctorRepository
	departmentRepo repository.DepartmentRepository
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	departmentRepo repository.DepartmentRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:             db,
		log:            log,
		doctorRepo:     doctorRepo,
		departmentRepo: departmentRepo,
	}
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.DepartmentID != nil {
		department, err := u.departmentRepo.FindByID(u.db.WithContext(ctx), *req.DepartmentID)
		if err != nil {
			u.log.Warnf("Failed to find department %d: %+v", *req.DepartmentID, err)
			return nil, err
		}
		if department == nil {
			return nil, ErrDepartmentNotFound
		}
	}

	doctor := &entity.Doctor{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
		DepartmentID:   req.DepartmentID,
		Phone:          req.Phone,
		Email:          req.Email,
	}

	if err := u.doctorRepo.Create(u.db.WithContext(ctx), doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, id int, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.FirstName != "" {
		doctor.FirstName = req.FirstName
	}
	if req.LastName != "" {
		doctor.LastName = req.LastName
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.Email != "" {
		doctor.Email = req.Email
	}
	if req.DepartmentID != nil {
		department, err := u.departmentRepo.FindByID(u.db.WithContext(ctx), *req.DepartmentID)
		if err != nil {
			return nil, err
		}
		if department == nil {
			return nil, ErrDepartmentNotFound
		}
		doctor.DepartmentID = req.DepartmentID
	}

	if err := u.doctorRepo.Update(u.db.WithContext(ctx), doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to update doctor %d: %+v", id, err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Delete(ctx context.Context, id int) error {
	rows, err := u.doctorRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete doctor %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) List(ctx context.Context, search string, limit, offset int) (*dto.DoctorListResponse, error) {
	doctors, total, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), search, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   int(total),
	}, nil
}

func (u *doctorUsecase) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &entity.Department{
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
		Email:    req.Email,
	}

	if err := u.departmentRepo.Create(u.db.WithContext(ctx), department); err != nil {
		u.log.Warnf("Failed to create department: %+v", err)
		return nil, err
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *doctorUsecase) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	departments, err := u.departmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list departments: %+v", err)
		return nil, err
	}

	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(departments),
		Total:       len(departments),
	}, nil
}
