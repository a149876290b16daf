package usecase

import (
	"testing"
	"time"

	"hospital-management/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateAt(now time.Time, daysFromNow int) time.Time {
	d := now.AddDate(0, 0, daysFromNow)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

func TestValidateSlot(t *testing.T) {
	// Fixed clock: mid-morning, between the 09:00 and 09:30 slots.
	now := time.Date(2026, time.March, 10, 9, 15, 0, 0, time.UTC)

	booked := func(start, end string, status entity.AppointmentStatus) entity.Appointment {
		return entity.Appointment{StartTime: start, EndTime: end, Status: status}
	}

	tests := []struct {
		name     string
		date     time.Time
		start    string
		existing []entity.Appointment
		wantEnd  string
		wantErr  error
	}{
		{
			name:    "valid slot tomorrow",
			date:    dateAt(now, 1),
			start:   "08:00",
			wantEnd: "08:30",
		},
		{
			name:    "valid afternoon slot",
			date:    dateAt(now, 7),
			start:   "14:30",
			wantEnd: "15:00",
		},
		{
			name:    "unknown start time",
			date:    dateAt(now, 1),
			start:   "10:00",
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "lunch gap is not bookable",
			date:    dateAt(now, 1),
			start:   "11:00",
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "date in the past",
			date:    dateAt(now, -1),
			start:   "08:00",
			wantErr: ErrPastDate,
		},
		{
			name:    "slot already started today",
			date:    dateAt(now, 0),
			start:   "09:00",
			wantErr: ErrPastTime,
		},
		{
			name:    "later slot today is fine",
			date:    dateAt(now, 0),
			start:   "12:00",
			wantEnd: "12:30",
		},
		{
			name:  "exact overlap with existing booking",
			date:  dateAt(now, 1),
			start: "08:30",
			existing: []entity.Appointment{
				booked("08:30", "09:00", entity.AppointmentStatusBooked),
			},
			wantErr: ErrSlotTaken,
		},
		{
			name:  "adjacent bookings do not collide",
			date:  dateAt(now, 1),
			start: "08:30",
			existing: []entity.Appointment{
				booked("08:00", "08:30", entity.AppointmentStatusBooked),
				booked("09:00", "09:30", entity.AppointmentStatusConfirmed),
			},
			wantEnd: "09:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := validateSlot(now, tt.date, tt.start, tt.existing)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestValidateSlotWithStoredTimeFormat(t *testing.T) {
	// TIME columns scan back as "HH:MM:SS.ffffff"; the overlap check must
	// still treat them as their slot labels.
	now := time.Date(2026, time.March, 10, 9, 15, 0, 0, time.UTC)
	existing := []entity.Appointment{
		{StartTime: "08:00:00.000000", EndTime: "08:30:00.000000", Status: entity.AppointmentStatusBooked},
	}

	end, err := validateSlot(now, dateAt(now, 1), "08:30", existing)
	require.NoError(t, err, "adjacent slot after a stored booking must be free")
	assert.Equal(t, "09:00", end)

	_, err = validateSlot(now, dateAt(now, 1), "08:00", existing)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestApplyRescheduleKeepsStatus(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 15, 0, 0, time.UTC)
	appointment := &entity.Appointment{
		ID:              5,
		DoctorID:        1,
		AppointmentDate: dateAt(now, 1),
		StartTime:       "08:00",
		EndTime:         "08:30",
		Reason:          "checkup",
		Status:          entity.AppointmentStatusConfirmed,
	}

	applyReschedule(appointment, 2, dateAt(now, 2), "12:00", "12:30", "")

	assert.Equal(t, entity.AppointmentStatusConfirmed, appointment.Status, "moving an appointment keeps its status")
	assert.Equal(t, 2, appointment.DoctorID)
	assert.Equal(t, "12:00", appointment.StartTime)
	assert.Equal(t, "12:30", appointment.EndTime)
	assert.Equal(t, "checkup", appointment.Reason, "empty reason keeps the old one")
}

func TestValidateSlotMidnightBoundary(t *testing.T) {
	// Just before midnight every slot today has passed, but tomorrow's
	// earliest slot must still be bookable.
	now := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)

	_, err := validateSlot(now, dateAt(now, 0), "14:30", nil)
	assert.ErrorIs(t, err, ErrPastTime)

	end, err := validateSlot(now, dateAt(now, 1), "08:00", nil)
	assert.NoError(t, err)
	assert.Equal(t, "08:30", end)
}
