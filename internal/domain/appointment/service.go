package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/domain/doctor"
	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/scheduling"
)

var (
	ErrMissingFields = errors.New("patient_id, doctor_id, appointment_date, slot_start and slot_end are required")
	ErrInvalidDate   = errors.New("appointment_date must be YYYY-MM-DD")
	ErrInvalidSlot   = errors.New("slot times are invalid")
)

type Service struct {
	repo          Repository
	windows       WindowSource
	initialStatus string
}

// NewService wires the booking flow. initialStatus is the status given to a
// fresh booking, BOOKED unless configured otherwise.
func NewService(repo Repository, windows WindowSource, initialStatus string) *Service {
	if initialStatus == "" {
		initialStatus = StatusBooked
	}
	return &Service{repo: repo, windows: windows, initialStatus: initialStatus}
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// Book places an appointment. The slot is re-checked before insert; the
// store's uniqueness guard catches the race between the check and the
// insert. The token number is the doctor's appointment count for the day,
// across every status, plus one.
func (s *Service) Book(ctx context.Context, req *BookRequest) (*Appointment, error) {
	if req.PatientID == uuid.Nil || req.DoctorID == uuid.Nil ||
		req.AppointmentDate == "" || req.SlotStart == "" || req.SlotEnd == "" {
		return nil, ErrMissingFields
	}
	if !validDate(req.AppointmentDate) {
		return nil, ErrInvalidDate
	}
	start, err := scheduling.ParseMinutes(req.SlotStart)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	end, err := scheduling.ParseMinutes(req.SlotEnd)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	if start >= end {
		return nil, ErrInvalidSlot
	}

	taken, err := s.repo.CountActiveAt(ctx, req.DoctorID, req.AppointmentDate, req.SlotStart)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrSlotConflict
	}

	count, err := s.repo.CountForDay(ctx, req.DoctorID, req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	appt := &Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		ConsultationID:  req.ConsultationID,
		AppointmentDate: req.AppointmentDate,
		SlotStart:       scheduling.FormatMinutes(start),
		SlotEnd:         scheduling.FormatMinutes(end),
		Status:          s.initialStatus,
		TokenNo:         count + 1,
	}
	if err := s.repo.Insert(ctx, appt); err != nil {
		return nil, err
	}

	full, err := s.repo.GetByID(ctx, appt.ID)
	if err != nil {
		// The booking itself succeeded; return what we have.
		return appt, nil
	}
	return full, nil
}

// AvailabilityResponse carries the doctor's raw windows and booked slots so
// the client can build the slot grid itself.
type AvailabilityResponse struct {
	Availability []*doctor.AvailabilityWindow `json:"availability"`
	BookedSlots  []scheduling.Slot            `json:"bookedSlots"`
}

// Availability returns the raw windows and booked slots for a doctor/date.
func (s *Service) Availability(ctx context.Context, doctorID uuid.UUID, date string) (*AvailabilityResponse, error) {
	if !validDate(date) {
		return nil, ErrInvalidDate
	}
	windows, err := s.windows.WindowsByDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	booked, err := s.repo.BookedSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if windows == nil {
		windows = []*doctor.AvailabilityWindow{}
	}
	if booked == nil {
		booked = []scheduling.Slot{}
	}
	return &AvailabilityResponse{Availability: windows, BookedSlots: booked}, nil
}

// PatientHistory returns the patient's appointments, date ascending.
func (s *Service) PatientHistory(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// DoctorRoster returns the doctor's appointments for a date, token
// ascending. Defaults to today when the date is empty.
func (s *Service) DoctorRoster(ctx context.Context, doctorID uuid.UUID, date string) ([]*Appointment, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if !validDate(date) {
		return nil, ErrInvalidDate
	}
	return s.repo.ListByDoctorDate(ctx, doctorID, date)
}
