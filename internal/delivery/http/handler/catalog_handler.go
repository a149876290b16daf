package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"

	"github.com/gorilla/mux"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *CatalogHandler) CreateMedication(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medication, err := h.catalogUsecase.CreateMedication(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create medication")
		return
	}

	response.Success(w, http.StatusCreated, "Medication created successfully", medication)
}

func (h *CatalogHandler) UpdateMedication(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medication ID", nil)
		return
	}

	var req dto.UpdateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medication, err := h.catalogUsecase.UpdateMedication(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, "Medication not found")
		default:
			response.InternalServerError(w, "Failed to update medication")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication updated successfully", medication)
}

func (h *CatalogHandler) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medication ID", nil)
		return
	}

	if err := h.catalogUsecase.DeleteMedication(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, "Medication not found")
		default:
			response.InternalServerError(w, "Failed to delete medication")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication deleted successfully", nil)
}

func (h *CatalogHandler) GetMedication(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid medication ID", nil)
		return
	}

	medication, err := h.catalogUsecase.GetMedication(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, "Medication not found")
		default:
			response.InternalServerError(w, "Failed to get medication")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication retrieved successfully", medication)
}

func (h *CatalogHandler) ListMedications(w http.ResponseWriter, r *http.Request) {
	search, limit, offset := listParams(r)

	medications, err := h.catalogUsecase.ListMedications(r.Context(), search, limit, offset)
	if err != nil {
		response.InternalServerError(w, "Failed to list medications")
		return
	}

	response.Success(w, http.StatusOK, "Medications retrieved successfully", medications)
}

func (h *CatalogHandler) CreateProcedure(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	procedure, err := h.catalogUsecase.CreateProcedure(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrProcedureCodeExists:
			response.Conflict(w, "Procedure code already exists")
		default:
			response.InternalServerError(w, "Failed to create procedure")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Procedure created successfully", procedure)
}

func (h *CatalogHandler) UpdateProcedure(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure ID", nil)
		return
	}

	var req dto.UpdateProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	procedure, err := h.catalogUsecase.UpdateProcedure(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrProcedureNotFound:
			response.NotFound(w, "Procedure not found")
		default:
			response.InternalServerError(w, "Failed to update procedure")
		}
		return
	}

	response.Success(w, http.StatusOK, "Procedure updated successfully", procedure)
}

func (h *CatalogHandler) DeleteProcedure(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure ID", nil)
		return
	}

	if err := h.catalogUsecase.DeleteProcedure(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrProcedureNotFound:
			response.NotFound(w, "Procedure not found")
		default:
			response.InternalServerError(w, "Failed to delete procedure")
		}
		return
	}

	response.Success(w, http.StatusOK, "Procedure deleted successfully", nil)
}

func (h *CatalogHandler) GetProcedure(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure ID", nil)
		return
	}

	procedure, err := h.catalogUsecase.GetProcedure(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrProcedureNotFound:
			response.NotFound(w, "Procedure not found")
		default:
			response.InternalServerError(w, "Failed to get procedure")
		}
		return
	}

	response.Success(w, http.StatusOK, "Procedure retrieved successfully", procedure)
}

func (h *CatalogHandler) ListProcedures(w http.ResponseWriter, r *http.Request) {
	search, limit, offset := listParams(r)

	procedures, err := h.catalogUsecase.ListProcedures(r.Context(), search, limit, offset)
	if err != nil {
		response.InternalServerError(w, "Failed to list procedures")
		return
	}

	response.Success(w, http.StatusOK, "Procedures retrieved successfully", procedures)
}
