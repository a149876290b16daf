package converter

import (
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
)

// BillToResponse converts a Bill entity to BillResponse DTO
func BillToResponse(bill *entity.Bill) *dto.BillResponse {
	if bill == nil {
		return nil
	}

	response := &dto.BillResponse{
		ID:          bill.ID,
		EncounterID: bill.EncounterID,
		PatientID:   bill.PatientID,
		BillDate:    bill.BillDate.Format("2006-01-02"),
		TotalAmount: bill.TotalAmount,
		Status:      string(bill.Status),
		CreatedAt:   bill.CreatedAt,
		UpdatedAt:   bill.UpdatedAt,
	}

	if bill.Patient.ID != 0 {
		response.Patient = PatientToResponse(&bill.Patient)
	}
	if len(bill.Lines) > 0 {
		response.Lines = BillLinesToResponses(bill.Lines)
	}
	if len(bill.Payments) > 0 {
		response.Payments = PaymentsToResponses(bill.Payments)
	}

	return response
}

// BillsToResponses converts a slice of Bill entities to slice of BillResponse DTOs
func BillsToResponses(bills []entity.Bill) []dto.BillResponse {
	responses := make([]dto.BillResponse, len(bills))
	for i, bill := range bills {
		resp := BillToResponse(&bill)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// BillLineToResponse converts a BillLine entity to BillLineResponse DTO
func BillLineToResponse(line *entity.BillLine) *dto.BillLineResponse {
	if line == nil {
		return nil
	}

	return &dto.BillLineResponse{
		ID:           line.ID,
		LineType:     string(line.LineType),
		MedicationID: line.MedicationID,
		ProcedureID:  line.ProcedureID,
		Description:  line.Description,
		Quantity:     line.Quantity,
		UnitPrice:    line.UnitPrice,
		LineTotal:    line.LineTotal(),
	}
}

// BillLinesToResponses converts a slice of BillLine entities to slice of BillLineResponse DTOs
func BillLinesToResponses(lines []entity.BillLine) []dto.BillLineResponse {
	responses := make([]dto.BillLineResponse, len(lines))
	for i, line := range lines {
		resp := BillLineToResponse(&line)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// PaymentToResponse converts a Payment entity to PaymentResponse DTO
func PaymentToResponse(payment *entity.Payment) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	return &dto.PaymentResponse{
		ID:        payment.ID,
		BillID:    payment.BillID,
		Amount:    payment.Amount,
		Method:    string(payment.Method),
		Status:    string(payment.Status),
		Reference: payment.Reference,
		PaidAt:    payment.PaidAt,
	}
}

// PaymentsToResponses converts a slice of Payment entities to slice of PaymentResponse DTOs
func PaymentsToResponses(payments []entity.Payment) []dto.PaymentResponse {
	responses := make([]dto.PaymentResponse, len(payments))
	for i, payment := range payments {
		resp := PaymentToResponse(&payment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
