package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByPhone(ctx context.Context, phone string) (*Doctor, error)
	ListActive(ctx context.Context) ([]*Doctor, error)
	List(ctx context.Context, limit, offset int) ([]*Doctor, error)
	Count(ctx context.Context) (int, error)
	AddAvailability(ctx context.Context, w *AvailabilityWindow) error
	WindowsByDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*AvailabilityWindow, error)
}

// BookedLookup reports the booked slot start times for a doctor on a date.
// Implemented by the appointment store; injected to keep this package free
// of a dependency on it.
type BookedLookup interface {
	BookedStarts(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
}
