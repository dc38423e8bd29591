package consultation

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Consultation) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Consultation, error)
}

// HealthUpdater records health metrics reported during a consultation.
// Implemented by the patient store; injected to keep this package free of
// a dependency on it.
type HealthUpdater interface {
	UpdateHealthMetrics(ctx context.Context, patientID uuid.UUID, weight, height, pressure *string) error
}
