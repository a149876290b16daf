package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Email     string `validate:"required,email"`
	StartTime string `validate:"required"`
	Status    string `validate:"omitempty,oneof=BOOKED CANCELLED"`
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&bookingForm{Email: "patient@example.com", StartTime: "08:00", Status: "BOOKED"})
	assert.NoError(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&bookingForm{Email: "not-an-email", Status: "PENDING"})
	require.Error(t, err)

	fields := cv.FormatValidationErrors(err)
	assert.Equal(t, "Email must be a valid email address", fields["Email"])
	assert.Equal(t, "StartTime is required", fields["StartTime"])
	assert.Equal(t, "Status must be one of: BOOKED CANCELLED", fields["Status"])
}
