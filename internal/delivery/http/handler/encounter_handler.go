package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/service"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/response"
	"hospital-management/pkg/validator"

	"github.com/gorilla/mux"
)

type EncounterHandler struct {
	encounterUsecase usecase.EncounterUsecase
	validator        *validator.CustomValidator
}

func NewEncounterHandler(encounterUsecase usecase.EncounterUsecase, validator *validator.CustomValidator) *EncounterHandler {
	return &EncounterHandler{
		encounterUsecase: encounterUsecase,
		validator:        validator,
	}
}

func (h *EncounterHandler) Open(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.Atoi(mux.Vars(r)["appointment_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	encounter, err := h.encounterUsecase.Open(r.Context(), appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentIsCancelled:
			response.Conflict(w, "Cannot open a visit for a cancelled appointment")
		case usecase.ErrNotAppointmentDoctor:
			response.Forbidden(w, "Appointment is assigned to another doctor")
		default:
			response.InternalServerError(w, "Failed to open encounter")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Encounter opened successfully", encounter)
}

func (h *EncounterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}

	var req dto.UpdateEncounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	encounter, err := h.encounterUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		default:
			response.InternalServerError(w, "Failed to update encounter")
		}
		return
	}

	response.Success(w, http.StatusOK, "Encounter updated successfully", encounter)
}

func (h *EncounterHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}

	encounter, err := h.encounterUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		case usecase.ErrEncounterNotOwned:
			response.Forbidden(w, "Encounter does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get encounter")
		}
		return
	}

	response.Success(w, http.StatusOK, "Encounter retrieved successfully", encounter)
}

func (h *EncounterHandler) GetMyEncounters(w http.ResponseWriter, r *http.Request) {
	encounters, err := h.encounterUsecase.GetMyEncounters(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient record not found")
		default:
			response.InternalServerError(w, "Failed to get encounters")
		}
		return
	}

	response.Success(w, http.StatusOK, "Encounters retrieved successfully", encounters)
}

func (h *EncounterHandler) List(w http.ResponseWriter, r *http.Request) {
	search, limit, offset := listParams(r)

	encounters, err := h.encounterUsecase.List(r.Context(), search, limit, offset)
	if err != nil {
		response.InternalServerError(w, "Failed to list encounters")
		return
	}

	response.Success(w, http.StatusOK, "Encounters retrieved successfully", encounters)
}

func (h *EncounterHandler) AddPrescription(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}

	var req dto.AddPrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.encounterUsecase.AddPrescription(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, "Medication not found")
		case service.ErrCatalogEntryMissing:
			response.Conflict(w, "Referenced catalog entry no longer exists")
		default:
			response.InternalServerError(w, "Failed to add prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription added successfully", prescription)
}

func (h *EncounterHandler) DeletePrescription(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}
	prescriptionID, err := strconv.Atoi(vars["prescription_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	if err := h.encounterUsecase.DeletePrescription(r.Context(), id, prescriptionID); err != nil {
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		case service.ErrCatalogEntryMissing:
			response.Conflict(w, "Referenced catalog entry no longer exists")
		default:
			response.InternalServerError(w, "Failed to delete prescription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription deleted successfully", nil)
}

func (h *EncounterHandler) GetPrescriptions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}

	prescriptions, err := h.encounterUsecase.GetPrescriptions(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		default:
			response.InternalServerError(w, "Failed to get prescriptions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *EncounterHandler) AddProcedure(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}

	var req dto.AddEncounterProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	procedure, err := h.encounterUsecase.AddProcedure(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		case usecase.ErrProcedureNotFound:
			response.NotFound(w, "Procedure not found")
		case usecase.ErrProcedureAlreadyRecorded:
			response.Conflict(w, "Procedure already recorded for this encounter")
		case service.ErrCatalogEntryMissing:
			response.Conflict(w, "Referenced catalog entry no longer exists")
		default:
			response.InternalServerError(w, "Failed to add procedure")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Procedure recorded successfully", procedure)
}

func (h *EncounterHandler) DeleteProcedure(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}
	procedureID, err := strconv.Atoi(vars["procedure_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid procedure record ID", nil)
		return
	}

	if err := h.encounterUsecase.DeleteProcedure(r.Context(), id, procedureID); err != nil {
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		case usecase.ErrProcedureUsageNotFound:
			response.NotFound(w, "Procedure record not found")
		case service.ErrCatalogEntryMissing:
			response.Conflict(w, "Referenced catalog entry no longer exists")
		default:
			response.InternalServerError(w, "Failed to delete procedure record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Procedure record deleted successfully", nil)
}

func (h *EncounterHandler) GetProcedures(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}

	procedures, err := h.encounterUsecase.GetProcedures(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		default:
			response.InternalServerError(w, "Failed to get procedures")
		}
		return
	}

	response.Success(w, http.StatusOK, "Procedures retrieved successfully", procedures)
}
