package doctor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/scheduling"
	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/token"
)

var (
	ErrPhoneRequired    = errors.New("phone is required")
	ErrNameRequired     = errors.New("name is required")
	ErrInactive         = errors.New("doctor account is inactive")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidWindow    = errors.New("availability window is invalid")
	ErrDoctorIDRequired = errors.New("doctor_id is required")
)

type Service struct {
	repo   Repository
	booked BookedLookup
	tokens *token.Issuer
}

func NewService(repo Repository, booked BookedLookup, tokens *token.Issuer) *Service {
	return &Service{repo: repo, booked: booked, tokens: tokens}
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// Register creates a doctor profile. New doctors start active.
func (s *Service) Register(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return ErrNameRequired
	}
	if d.Phone == "" {
		return ErrPhoneRequired
	}
	d.Active = true
	return s.repo.Create(ctx, d)
}

// Login looks a doctor up by phone. Inactive doctors are rejected.
func (s *Service) Login(ctx context.Context, phone string) (*LoginResponse, error) {
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	d, err := s.repo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if !d.Active {
		return nil, ErrInactive
	}
	signed, err := s.tokens.Issue(d.ID.String(), token.KindDoctor, d.Name)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Doctor: d, Token: signed}, nil
}

// ListActive returns every active doctor, for the booking page dropdown.
func (s *Service) ListActive(ctx context.Context) ([]*Doctor, error) {
	return s.repo.ListActive(ctx)
}

// List returns a page of all doctors, active or not, plus the total count.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*Doctor{}
	}
	return items, total, nil
}

// AddAvailability declares a working window for a doctor on a date.
func (s *Service) AddAvailability(ctx context.Context, w *AvailabilityWindow) error {
	if w.DoctorID == uuid.Nil {
		return ErrDoctorIDRequired
	}
	if !validDate(w.AvailableDate) {
		return ErrInvalidDate
	}
	start, err := scheduling.ParseMinutes(w.StartTime)
	if err != nil {
		return ErrInvalidWindow
	}
	end, err := scheduling.ParseMinutes(w.EndTime)
	if err != nil {
		return ErrInvalidWindow
	}
	if w.SlotDuration <= 0 || start >= end {
		return ErrInvalidWindow
	}
	if _, err := s.repo.GetByID(ctx, w.DoctorID); err != nil {
		return err
	}
	return s.repo.AddAvailability(ctx, w)
}

// AvailableOn returns the active doctors who still have at least one open
// slot on the date. Slots come from each doctor's declared windows minus
// the starts already booked.
func (s *Service) AvailableOn(ctx context.Context, date string) ([]*AvailableDoctor, error) {
	if !validDate(date) {
		return nil, ErrInvalidDate
	}
	doctors, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*AvailableDoctor, 0, len(doctors))
	for _, d := range doctors {
		windows, err := s.repo.WindowsByDate(ctx, d.ID, date)
		if err != nil {
			return nil, err
		}
		if len(windows) == 0 {
			continue
		}
		var candidates []scheduling.Slot
		for _, w := range windows {
			candidates = append(candidates, scheduling.GenerateSlots(w.StartTime, w.EndTime, w.SlotDuration)...)
		}
		bookedStarts, err := s.booked.BookedStarts(ctx, d.ID, date)
		if err != nil {
			return nil, err
		}
		open := scheduling.FilterAvailable(candidates, bookedStarts)
		if len(open) == 0 {
			continue
		}
		result = append(result, &AvailableDoctor{
			ID:             d.ID,
			Name:           d.Name,
			Specialization: d.Specialization,
			Phone:          d.Phone,
			Slots:          open,
		})
	}
	return result, nil
}
