package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSlot(t *testing.T) {
	for _, s := range TimeSlots {
		assert.True(t, IsValidSlot(s), "slot %s", s)
	}

	assert.False(t, IsValidSlot("10:00"), "morning gap")
	assert.False(t, IsValidSlot("11:30"), "lunch gap")
	assert.False(t, IsValidSlot("15:00"), "after hours")
	assert.False(t, IsValidSlot("08:15"), "off-grid start")
	assert.False(t, IsValidSlot(""), "empty")
}

func TestSlotEnd(t *testing.T) {
	assert.Equal(t, "08:30", SlotEnd("08:00"))
	assert.Equal(t, "10:00", SlotEnd("09:30"))
	assert.Equal(t, "15:00", SlotEnd("14:30"))
}

func TestAppointmentOverlaps(t *testing.T) {
	appt := Appointment{StartTime: "08:30", EndTime: "09:00"}

	assert.True(t, appt.Overlaps("08:30", "09:00"), "same interval")
	assert.False(t, appt.Overlaps("08:00", "08:30"), "slot ending at start")
	assert.False(t, appt.Overlaps("09:00", "09:30"), "slot starting at end")
}

func TestSlotLabel(t *testing.T) {
	assert.Equal(t, "08:00", SlotLabel("08:00"))
	assert.Equal(t, "08:00", SlotLabel("08:00:00"))
	assert.Equal(t, "08:00", SlotLabel("08:00:00.000000"))
	assert.Equal(t, "", SlotLabel(""))
}

func TestAppointmentOverlapsStoredTimeFormat(t *testing.T) {
	// Times loaded from TIME columns carry seconds and fraction digits.
	appt := Appointment{StartTime: "08:00:00.000000", EndTime: "08:30:00.000000"}

	assert.False(t, appt.Overlaps("08:30", "09:00"), "adjacent slot stays free")
	assert.True(t, appt.Overlaps("08:00", "08:30"), "same slot still collides")
}

func TestValidAppointmentStatus(t *testing.T) {
	assert.True(t, ValidAppointmentStatus(AppointmentStatusBooked))
	assert.True(t, ValidAppointmentStatus(AppointmentStatusNoShow))
	assert.False(t, ValidAppointmentStatus("PENDING"))
	assert.False(t, ValidAppointmentStatus(""))
}

func TestTimeSlotsOrderedAndUnique(t *testing.T) {
	for i := 1; i < len(TimeSlots); i++ {
		assert.Less(t, TimeSlots[i-1], TimeSlots[i])
	}
}
