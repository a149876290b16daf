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

type BillingHandler struct {
	billingUsecase usecase.BillingUsecase
	validator      *validator.CustomValidator
}

func NewBillingHandler(billingUsecase usecase.BillingUsecase, validator *validator.CustomValidator) *BillingHandler {
	return &BillingHandler{
		billingUsecase: billingUsecase,
		validator:      validator,
	}
}

func (h *BillingHandler) SyncEncounter(w http.ResponseWriter, r *http.Request) {
	encounterID, err := strconv.Atoi(mux.Vars(r)["encounter_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter ID", nil)
		return
	}

	bill, err := h.billingUsecase.SyncEncounter(r.Context(), encounterID)
	if err != nil {
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		case service.ErrCatalogEntryMissing:
			response.Conflict(w, "Referenced catalog entry no longer exists")
		default:
			response.InternalServerError(w, "Failed to sync bill")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bill synchronized successfully", bill)
}

func (h *BillingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid bill ID", nil)
		return
	}

	bill, err := h.billingUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrBillNotFound:
			response.NotFound(w, "Bill not found")
		case usecase.ErrBillNotOwned:
			response.Forbidden(w, "Bill does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get bill")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bill retrieved successfully", bill)
}

func (h *BillingHandler) GetMyBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.billingUsecase.GetMyBills(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient record not found")
		default:
			response.InternalServerError(w, "Failed to get bills")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bills retrieved successfully", bills)
}

func (h *BillingHandler) List(w http.ResponseWriter, r *http.Request) {
	search, limit, offset := listParams(r)

	bills, err := h.billingUsecase.List(r.Context(), search, limit, offset)
	if err != nil {
		response.InternalServerError(w, "Failed to list bills")
		return
	}

	response.Success(w, http.StatusOK, "Bills retrieved successfully", bills)
}

func (h *BillingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid bill ID", nil)
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payment, err := h.billingUsecase.RecordPayment(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrBillNotFound:
			response.NotFound(w, "Bill not found")
		case usecase.ErrBillCancelled:
			response.Conflict(w, "Bill is cancelled")
		case usecase.ErrBillAlreadyPaid:
			response.Conflict(w, "Bill is already paid")
		case usecase.ErrInvalidPaymentAmount:
			response.Error(w, http.StatusBadRequest, "Payment amount must be positive", nil)
		default:
			response.InternalServerError(w, "Failed to record payment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Payment recorded successfully", payment)
}
