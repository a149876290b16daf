package entity

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "BOOKED"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCheckedIn AppointmentStatus = "CHECKED_IN"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

// ValidAppointmentStatus reports whether s is a known status value.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusBooked, AppointmentStatusConfirmed, AppointmentStatusCheckedIn,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// SlotDuration is the fixed length of every appointment.
const SlotDuration = 30 * time.Minute

// TimeSlots are the bookable start times: 08:00-10:00 and 12:00-15:00
// in 30-minute steps.
var TimeSlots = []string{
	"08:00", "08:30", "09:00", "09:30",
	"12:00", "12:30", "13:00", "13:30",
	"14:00", "14:30",
}

// IsValidSlot reports whether label is one of the fixed bookable start times.
func IsValidSlot(label string) bool {
	for _, s := range TimeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// SlotEnd returns the end time label for a slot start ("08:00" -> "08:30").
// The label must be a valid "HH:MM" string.
func SlotEnd(start string) string {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return start
	}
	return t.Add(SlotDuration).Format("15:04")
}

// Appointment represents a booked 30-minute slot with a doctor
type Appointment struct {
	ID              int               `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID       int               `gorm:"not null;index:idx_appt_patient_time" json:"patient_id"`
	DoctorID        int               `gorm:"not null;index:idx_appt_doctor_time" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index:idx_appt_doctor_time;index:idx_appt_patient_time" json:"appointment_date"`
	StartTime       string            `gorm:"type:varchar(5);not null;index:idx_appt_doctor_time" json:"start_time"`
	EndTime         string            `gorm:"type:varchar(5);not null" json:"end_time"`
	Reason          string            `gorm:"type:varchar(100)" json:"reason,omitempty"`
	Status          AppointmentStatus `gorm:"type:varchar(12);not null;default:'BOOKED';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// SlotLabel normalizes a time string to its "HH:MM" label. TIME columns
// scan into Go strings as "08:00:00.000000"; only the first five
// characters identify the slot.
func SlotLabel(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// Overlaps reports whether the [start,end) intervals of two appointments
// intersect. Slot labels are fixed-width "HH:MM" so string comparison
// orders correctly.
func (a *Appointment) Overlaps(start, end string) bool {
	return SlotLabel(a.StartTime) < end && SlotLabel(a.EndTime) > start
}
