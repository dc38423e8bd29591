package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. BOOKED and CONFIRMED occupy a slot; the partial
// unique index on (doctor_id, appointment_date, slot_start) only covers
// those two.
const (
	StatusBooked    = "BOOKED"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Appointment maps to the appointment table. Doctor and patient fields are
// denormalized by the list queries; only the IDs are stored.
type Appointment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	ConsultationID  *uuid.UUID `db:"consultation_id" json:"consultation_id,omitempty"`
	AppointmentDate string     `db:"appointment_date" json:"appointment_date"`
	SlotStart       string     `db:"slot_start" json:"slot_start"`
	SlotEnd         string     `db:"slot_end" json:"slot_end"`
	Status          string     `db:"status" json:"status"`
	TokenNo         int        `db:"token_no" json:"token_no"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`

	DoctorName           string `json:"doctor_name,omitempty"`
	DoctorSpecialization string `json:"doctor_specialization,omitempty"`
	DoctorPhone          string `json:"doctor_phone,omitempty"`
	PatientName          string `json:"patient_name,omitempty"`
	PatientPhone         string `json:"patient_phone,omitempty"`
	PatientAge           int    `json:"patient_age,omitempty"`
}

// BookRequest is the booking payload.
type BookRequest struct {
	PatientID       uuid.UUID  `json:"patient_id"`
	DoctorID        uuid.UUID  `json:"doctor_id"`
	ConsultationID  *uuid.UUID `json:"consultation_id,omitempty"`
	AppointmentDate string     `json:"appointment_date"`
	SlotStart       string     `json:"slot_start"`
	SlotEnd         string     `json:"slot_end"`
}
