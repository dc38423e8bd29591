package doctor

import (
	"time"

	"github.com/google/uuid"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/scheduling"
)

// Doctor maps to the doctor table.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	Phone          string    `db:"phone" json:"phone"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// AvailabilityWindow maps to the doctor_availability table. A doctor may
// declare several windows for the same date. Dates are YYYY-MM-DD, times
// HH:MM:SS, duration in minutes.
type AvailabilityWindow struct {
	ID            uuid.UUID `db:"id" json:"id"`
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	AvailableDate string    `db:"available_date" json:"available_date"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
	SlotDuration  int       `db:"slot_duration" json:"slot_duration"`
}

// AvailableDoctor is a doctor together with the open slots remaining on the
// requested date.
type AvailableDoctor struct {
	ID             uuid.UUID         `json:"doctor_id"`
	Name           string            `json:"doctor_name"`
	Specialization string            `json:"specialization"`
	Phone          string            `json:"phone"`
	Slots          []scheduling.Slot `json:"available_slots"`
}

// LoginResponse is returned by the doctor login endpoint. Clients keep the
// doctor record locally; there is no server-side session.
type LoginResponse struct {
	Doctor *Doctor `json:"doctor"`
	Token  string  `json:"token"`
}
