package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

// EncounterToResponse converts an Encounter entity to EncounterResponse DTO
func EncounterToResponse(encounter *entity.Encounter) *dto.EncounterResponse {
	if encounter == nil {
		return nil
	}

	response := &dto.EncounterResponse{
		ID:               encounter.ID,
		AppointmentID:    encounter.AppointmentID,
		PatientID:        encounter.PatientID,
		DoctorID:         encounter.DoctorID,
		EncounterDate:    encounter.EncounterDate.Format("2006-01-02"),
		VisitType:        string(encounter.VisitType),
		Notes:            encounter.Notes,
		DiagnosisSummary: encounter.DiagnosisSummary,
		TreatmentPlan:    encounter.TreatmentPlan,
		CreatedAt:        encounter.CreatedAt,
		UpdatedAt:        encounter.UpdatedAt,
	}

	if encounter.Patient.ID != 0 {
		response.Patient = PatientToResponse(&encounter.Patient)
	}
	if encounter.Doctor.ID != 0 {
		response.Doctor = DoctorToResponse(&encounter.Doctor)
	}

	return response
}

// EncountersToResponses converts a slice of Encounter entities to slice of EncounterResponse DTOs
func EncountersToResponses(encounters []entity.Encounter) []dto.EncounterResponse {
	responses := make([]dto.EncounterResponse, len(encounters))
	for i, encounter := range encounters {
		resp := EncounterToResponse(&encounter)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// PrescriptionToResponse converts a Prescription entity to PrescriptionResponse DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:              prescription.ID,
		EncounterID:     prescription.EncounterID,
		MedicationID:    prescription.MedicationID,
		Dosage:          prescription.Dosage,
		FrequencyPerDay: prescription.FrequencyPerDay,
		DurationDays:    prescription.DurationDays,
		Instructions:    prescription.Instructions,
		CreatedAt:       prescription.CreatedAt,
	}

	if prescription.Medication.ID != 0 {
		response.Medication = MedicationToResponse(&prescription.Medication)
	}

	return response
}

// PrescriptionsToResponses converts a slice of Prescription entities to slice of PrescriptionResponse DTOs
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		resp := PrescriptionToResponse(&prescription)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// EncounterProcedureToResponse converts an EncounterProcedure entity to its response DTO
func EncounterProcedureToResponse(procedure *entity.EncounterProcedure) *dto.EncounterProcedureResponse {
	if procedure == nil {
		return nil
	}

	response := &dto.EncounterProcedureResponse{
		ID:          procedure.ID,
		EncounterID: procedure.EncounterID,
		ProcedureID: procedure.ProcedureID,
		Quantity:    procedure.Quantity,
		Notes:       procedure.Notes,
		CreatedAt:   procedure.CreatedAt,
	}

	if procedure.Procedure.ID != 0 {
		response.Procedure = ProcedureToResponse(&procedure.Procedure)
	}

	return response
}

// EncounterProceduresToResponses converts a slice of EncounterProcedure entities to response DTOs
func EncounterProceduresToResponses(procedures []entity.EncounterProcedure) []dto.EncounterProcedureResponse {
	responses := make([]dto.EncounterProcedureResponse, len(procedures))
	for i, procedure := range procedures {
		resp := EncounterProcedureToResponse(&procedure)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
