package appointment

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/domain/doctor"
	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/scheduling"
)

type doctorInfo struct {
	name, specialization, phone string
}

type mockRepo struct {
	appointments []*Appointment
	doctors      map[uuid.UUID]doctorInfo
	err          error
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[uuid.UUID]doctorInfo)}
}

func (m *mockRepo) activeAt(doctorID uuid.UUID, date, slotStart string) bool {
	want, err := scheduling.ParseMinutes(slotStart)
	if err != nil {
		return false
	}
	for _, a := range m.appointments {
		if a.DoctorID != doctorID || a.AppointmentDate != date {
			continue
		}
		if a.Status != StatusBooked && a.Status != StatusConfirmed {
			continue
		}
		if got, err := scheduling.ParseMinutes(a.SlotStart); err == nil && got == want {
			return true
		}
	}
	return false
}

func (m *mockRepo) Insert(ctx context.Context, a *Appointment) error {
	if m.err != nil {
		return m.err
	}
	// Mirrors the store's partial uniqueness guard.
	if (a.Status == StatusBooked || a.Status == StatusConfirmed) &&
		m.activeAt(a.DoctorID, a.AppointmentDate, a.SlotStart) {
		return ErrSlotConflict
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	m.appointments = append(m.appointments, &cp)
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.appointments {
		if a.ID == id {
			cp := *a
			if d, ok := m.doctors[a.DoctorID]; ok {
				cp.DoctorName = d.name
				cp.DoctorSpecialization = d.specialization
				cp.DoctorPhone = d.phone
			}
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) CountActiveAt(ctx context.Context, doctorID uuid.UUID, date, slotStart string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.activeAt(doctorID, date, slotStart) {
		return 1, nil
	}
	return 0, nil
}

func (m *mockRepo) CountForDay(ctx context.Context, doctorID uuid.UUID, date string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := 0
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate == date {
			n++
		}
	}
	return n, nil
}

func (m *mockRepo) BookedStarts(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var starts []string
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate == date &&
			(a.Status == StatusBooked || a.Status == StatusConfirmed) {
			starts = append(starts, a.SlotStart)
		}
	}
	return starts, nil
}

func (m *mockRepo) BookedSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]scheduling.Slot, error) {
	if m.err != nil {
		return nil, m.err
	}
	var slots []scheduling.Slot
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate == date &&
			(a.Status == StatusBooked || a.Status == StatusConfirmed) {
			slots = append(slots, scheduling.Slot{Start: a.SlotStart, End: a.SlotEnd})
		}
	}
	return slots, nil
}

func (m *mockRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	var items []*Appointment
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			items = append(items, a)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AppointmentDate != items[j].AppointmentDate {
			return items[i].AppointmentDate < items[j].AppointmentDate
		}
		return items[i].SlotStart < items[j].SlotStart
	})
	return items, nil
}

func (m *mockRepo) ListByDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	var items []*Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate == date {
			items = append(items, a)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].TokenNo < items[j].TokenNo })
	return items, nil
}

type mockWindows struct {
	windows map[uuid.UUID][]*doctor.AvailabilityWindow
}

func (m *mockWindows) WindowsByDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*doctor.AvailabilityWindow, error) {
	var items []*doctor.AvailabilityWindow
	for _, w := range m.windows[doctorID] {
		if w.AvailableDate == date {
			items = append(items, w)
		}
	}
	return items, nil
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, &mockWindows{windows: make(map[uuid.UUID][]*doctor.AvailabilityWindow)}, StatusBooked)
}

func bookReq(patientID, doctorID uuid.UUID, date, start, end string) *BookRequest {
	return &BookRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		SlotStart:       start,
		SlotEnd:         end,
	}
}

func TestBook_SequentialTokens(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	docID := uuid.New()

	starts := [][2]string{{"09:00", "09:30"}, {"09:30", "10:00"}, {"10:00", "10:30"}}
	for i, s := range starts {
		appt, err := svc.Book(ctx, bookReq(uuid.New(), docID, "2026-09-10", s[0], s[1]))
		if err != nil {
			t.Fatalf("booking %d failed: %v", i, err)
		}
		if appt.TokenNo != i+1 {
			t.Errorf("booking %d: expected token %d, got %d", i, i+1, appt.TokenNo)
		}
	}
}

func TestBook_SlotConflict(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	docID := uuid.New()

	if _, err := svc.Book(ctx, bookReq(uuid.New(), docID, "2026-09-10", "09:00", "09:30")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	_, err := svc.Book(ctx, bookReq(uuid.New(), docID, "2026-09-10", "09:00", "09:30"))
	if !errors.Is(err, ErrSlotConflict) {
		t.Errorf("expected ErrSlotConflict, got %v", err)
	}
}

func TestBook_SameSlotOtherDoctorOrDate(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	docID := uuid.New()

	if _, err := svc.Book(ctx, bookReq(uuid.New(), docID, "2026-09-10", "09:00", "09:30")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Book(ctx, bookReq(uuid.New(), uuid.New(), "2026-09-10", "09:00", "09:30")); err != nil {
		t.Errorf("other doctor, same slot should succeed: %v", err)
	}
	if _, err := svc.Book(ctx, bookReq(uuid.New(), docID, "2026-09-11", "09:00", "09:30")); err != nil {
		t.Errorf("same doctor, other date should succeed: %v", err)
	}
}

func TestBook_ConflictIgnoresCancelled(t *testing.T) {
	repo := newMockRepo()
	docID := uuid.New()
	repo.appointments = append(repo.appointments, &Appointment{
		ID: uuid.New(), PatientID: uuid.New(), DoctorID: docID,
		AppointmentDate: "2026-09-10", SlotStart: "09:00:00", SlotEnd: "09:30:00",
		Status: StatusCancelled, TokenNo: 1,
	})
	svc := newTestService(repo)

	appt, err := svc.Book(context.Background(), bookReq(uuid.New(), docID, "2026-09-10", "09:00", "09:30"))
	if err != nil {
		t.Fatalf("booking over a cancelled slot should succeed: %v", err)
	}
	// Cancelled rows still count toward the day's token sequence.
	if appt.TokenNo != 2 {
		t.Errorf("expected token 2, got %d", appt.TokenNo)
	}
}

func TestBook_Validation(t *testing.T) {
	svc := newTestService(newMockRepo())
	ctx := context.Background()
	pid, did := uuid.New(), uuid.New()

	cases := []struct {
		name string
		req  *BookRequest
		want error
	}{
		{"missing patient", bookReq(uuid.Nil, did, "2026-09-10", "09:00", "09:30"), ErrMissingFields},
		{"missing doctor", bookReq(pid, uuid.Nil, "2026-09-10", "09:00", "09:30"), ErrMissingFields},
		{"missing date", bookReq(pid, did, "", "09:00", "09:30"), ErrMissingFields},
		{"missing start", bookReq(pid, did, "2026-09-10", "", "09:30"), ErrMissingFields},
		{"missing end", bookReq(pid, did, "2026-09-10", "09:00", ""), ErrMissingFields},
		{"bad date", bookReq(pid, did, "10/09/2026", "09:00", "09:30"), ErrInvalidDate},
		{"bad start", bookReq(pid, did, "2026-09-10", "nine", "09:30"), ErrInvalidSlot},
		{"inverted slot", bookReq(pid, did, "2026-09-10", "09:30", "09:00"), ErrInvalidSlot},
	}
	for _, tc := range cases {
		if _, err := svc.Book(ctx, tc.req); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestBook_NormalizesSlotTimes(t *testing.T) {
	svc := newTestService(newMockRepo())

	appt, err := svc.Book(context.Background(), bookReq(uuid.New(), uuid.New(), "2026-09-10", "09:00", "09:30"))
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if appt.SlotStart != "09:00:00" || appt.SlotEnd != "09:30:00" {
		t.Errorf("expected HH:MM:SS times, got %s-%s", appt.SlotStart, appt.SlotEnd)
	}
}

func TestBook_DenormalizesDoctorFields(t *testing.T) {
	repo := newMockRepo()
	docID := uuid.New()
	repo.doctors[docID] = doctorInfo{name: "Dr. Mehta", specialization: "General", phone: "9876500001"}
	svc := newTestService(repo)

	appt, err := svc.Book(context.Background(), bookReq(uuid.New(), docID, "2026-09-10", "09:00", "09:30"))
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if appt.DoctorName != "Dr. Mehta" || appt.DoctorSpecialization != "General" {
		t.Errorf("expected denormalized doctor fields, got %q / %q", appt.DoctorName, appt.DoctorSpecialization)
	}
}

func TestBook_ConfigurableInitialStatus(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockWindows{windows: map[uuid.UUID][]*doctor.AvailabilityWindow{}}, StatusConfirmed)

	appt, err := svc.Book(context.Background(), bookReq(uuid.New(), uuid.New(), "2026-09-10", "09:00", "09:30"))
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if appt.Status != StatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", appt.Status)
	}
}

func TestAvailability_Shape(t *testing.T) {
	repo := newMockRepo()
	docID := uuid.New()
	windows := &mockWindows{windows: map[uuid.UUID][]*doctor.AvailabilityWindow{
		docID: {{DoctorID: docID, AvailableDate: "2026-09-10", StartTime: "09:00:00", EndTime: "12:00:00", SlotDuration: 30}},
	}}
	repo.appointments = append(repo.appointments, &Appointment{
		ID: uuid.New(), PatientID: uuid.New(), DoctorID: docID,
		AppointmentDate: "2026-09-10", SlotStart: "09:00:00", SlotEnd: "09:30:00",
		Status: StatusBooked, TokenNo: 1,
	})
	svc := NewService(repo, windows, StatusBooked)

	resp, err := svc.Availability(context.Background(), docID, "2026-09-10")
	if err != nil {
		t.Fatalf("Availability failed: %v", err)
	}
	if len(resp.Availability) != 1 {
		t.Errorf("expected 1 window, got %d", len(resp.Availability))
	}
	if len(resp.BookedSlots) != 1 || resp.BookedSlots[0].Start != "09:00:00" {
		t.Errorf("expected booked slot 09:00:00, got %v", resp.BookedSlots)
	}
}

func TestAvailability_EmptyIsNotNil(t *testing.T) {
	svc := newTestService(newMockRepo())

	resp, err := svc.Availability(context.Background(), uuid.New(), "2026-09-10")
	if err != nil {
		t.Fatalf("Availability failed: %v", err)
	}
	if resp.Availability == nil || resp.BookedSlots == nil {
		t.Error("expected empty slices, not nil")
	}
}

func TestPatientHistory_DateAscending(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	pid := uuid.New()
	docID := uuid.New()

	for _, date := range []string{"2026-09-12", "2026-09-10", "2026-09-11"} {
		if _, err := svc.Book(ctx, bookReq(pid, docID, date, "09:00", "09:30")); err != nil {
			t.Fatalf("booking on %s failed: %v", date, err)
		}
	}
	items, err := svc.PatientHistory(ctx, pid)
	if err != nil {
		t.Fatalf("PatientHistory failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].AppointmentDate > items[i].AppointmentDate {
			t.Errorf("history not date ascending: %s before %s",
				items[i-1].AppointmentDate, items[i].AppointmentDate)
		}
	}
}

func TestDoctorRoster_TokenAscending(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	docID := uuid.New()

	for _, s := range [][2]string{{"10:00", "10:30"}, {"09:00", "09:30"}, {"09:30", "10:00"}} {
		if _, err := svc.Book(ctx, bookReq(uuid.New(), docID, "2026-09-10", s[0], s[1])); err != nil {
			t.Fatalf("booking failed: %v", err)
		}
	}
	items, err := svc.DoctorRoster(ctx, docID, "2026-09-10")
	if err != nil {
		t.Fatalf("DoctorRoster failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].TokenNo > items[i].TokenNo {
			t.Errorf("roster not token ascending: %d before %d", items[i-1].TokenNo, items[i].TokenNo)
		}
	}
}

func TestDoctorRoster_InvalidDate(t *testing.T) {
	svc := newTestService(newMockRepo())
	if _, err := svc.DoctorRoster(context.Background(), uuid.New(), "tomorrow"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}
