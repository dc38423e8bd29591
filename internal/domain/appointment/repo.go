package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/domain/doctor"
	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/scheduling"
)

var (
	// ErrSlotConflict is returned when the requested slot is already
	// taken by a BOOKED or CONFIRMED appointment.
	ErrSlotConflict = errors.New("this slot is no longer available")
	// ErrNotFound is returned when no appointment matches the lookup.
	ErrNotFound = errors.New("appointment not found")
)

type Repository interface {
	// Insert writes the appointment. The store's uniqueness guard on
	// (doctor, date, slot_start) surfaces as ErrSlotConflict.
	Insert(ctx context.Context, a *Appointment) error
	// GetByID returns the appointment with doctor fields joined.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// CountActiveAt counts BOOKED/CONFIRMED appointments holding the slot.
	CountActiveAt(ctx context.Context, doctorID uuid.UUID, date, slotStart string) (int, error)
	// CountForDay counts the doctor's appointments on the date across
	// every status. Token numbers derive from it.
	CountForDay(ctx context.Context, doctorID uuid.UUID, date string) (int, error)
	BookedStarts(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
	BookedSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]scheduling.Slot, error)
	// ListByPatient returns the patient's appointments, date ascending,
	// with doctor fields joined.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error)
	// ListByDoctorDate returns the doctor's roster for the date, token
	// ascending, with patient fields joined.
	ListByDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*Appointment, error)
}

// WindowSource reports a doctor's declared availability windows.
// Satisfied by the doctor store.
type WindowSource interface {
	WindowsByDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*doctor.AvailabilityWindow, error)
}
