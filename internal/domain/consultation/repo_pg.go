package consultation

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) Create(ctx context.Context, c *Consultation) error {
	if r.pool == nil {
		return db.ErrUnavailable
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO consultation (id, patient_id, symptoms, predicted_disease, risk_factor, medicines, doctor_consultation)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.PatientID, c.Symptoms, c.PredictedDisease, c.RiskFactor, c.Medicines, c.DoctorConsultation)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Consultation, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, symptoms, predicted_disease, risk_factor, medicines, doctor_consultation, created_at
		FROM consultation
		WHERE patient_id = $1
		ORDER BY created_at DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Consultation
	for rows.Next() {
		var c Consultation
		if err := rows.Scan(&c.ID, &c.PatientID, &c.Symptoms, &c.PredictedDisease,
			&c.RiskFactor, &c.Medicines, &c.DoctorConsultation, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &c)
	}
	return items, rows.Err()
}
