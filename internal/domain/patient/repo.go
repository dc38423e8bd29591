package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the patient and its empty health-info row together.
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByPhone(ctx context.Context, phone string) (*Patient, error)
	FindByPhone(ctx context.Context, phone string) ([]*PatientWithHealth, error)
	GetHealthInfo(ctx context.Context, patientID uuid.UUID) (*HealthInfo, error)
	// UpdateHealthMetrics overwrites only the metrics that are non-nil.
	UpdateHealthMetrics(ctx context.Context, patientID uuid.UUID, weight, height, pressure *string) error
}
