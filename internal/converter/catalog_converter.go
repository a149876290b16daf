package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

// MedicationToResponse converts a Medication entity to MedicationResponse DTO
func MedicationToResponse(medication *entity.Medication) *dto.MedicationResponse {
	if medication == nil {
		return nil
	}

	return &dto.MedicationResponse{
		ID:          medication.ID,
		GenericName: medication.GenericName,
		BrandName:   medication.BrandName,
		Form:        string(medication.Form),
		Strength:    medication.Strength,
		UnitPrice:   medication.UnitPrice,
		CreatedAt:   medication.CreatedAt,
		UpdatedAt:   medication.UpdatedAt,
	}
}

// MedicationsToResponses converts a slice of Medication entities to slice of MedicationResponse DTOs
func MedicationsToResponses(medications []entity.Medication) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, len(medications))
	for i, medication := range medications {
		resp := MedicationToResponse(&medication)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// ProcedureToResponse converts a Procedure entity to ProcedureResponse DTO
func ProcedureToResponse(procedure *entity.Procedure) *dto.ProcedureResponse {
	if procedure == nil {
		return nil
	}

	response := &dto.ProcedureResponse{
		ID:              procedure.ID,
		Code:            procedure.Code,
		Name:            procedure.Name,
		Description:     procedure.Description,
		DurationMinutes: procedure.DurationMinutes,
		BasePrice:       procedure.BasePrice,
		CreatedAt:       procedure.CreatedAt,
		UpdatedAt:       procedure.UpdatedAt,
	}

	if procedure.Department != nil {
		response.Department = DepartmentToResponse(procedure.Department)
	}

	return response
}

// ProceduresToResponses converts a slice of Procedure entities to slice of ProcedureResponse DTOs
func ProceduresToResponses(procedures []entity.Procedure) []dto.ProcedureResponse {
	responses := make([]dto.ProcedureResponse, len(procedures))
	for i, procedure := range procedures {
		resp := ProcedureToResponse(&procedure)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
