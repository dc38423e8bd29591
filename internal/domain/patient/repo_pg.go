package patient

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/db"
)

var (
	// ErrNotFound is returned when no patient matches the lookup.
	ErrNotFound = errors.New("patient not found")
	// ErrPhoneTaken is returned when registering a phone number that
	// already belongs to a patient.
	ErrPhoneTaken = errors.New("phone number already registered")
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const patientCols = `id, username, phone, age, address, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Username, &p.Phone, &p.Age, &p.Address, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	if r.pool == nil {
		return db.ErrUnavailable
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO patient (id, username, phone, age, address)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Username, p.Phone, p.Age, p.Address)
	if isUniqueViolation(err) {
		return ErrPhoneTaken
	}
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO patient_health_info (id, patient_id)
		VALUES ($1,$2)`,
		uuid.New(), p.ID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByPhone(ctx context.Context, phone string) (*Patient, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE phone = $1`, phone))
}

func (r *repoPG) FindByPhone(ctx context.Context, phone string) ([]*PatientWithHealth, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.username, p.phone, p.age, p.address, p.created_at,
			h.id, h.patient_id, h.weight, h.height, h.pressure, h.updated_at
		FROM patient p
		LEFT JOIN patient_health_info h ON h.patient_id = p.id
		WHERE p.phone = $1
		ORDER BY p.created_at`,
		phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PatientWithHealth
	for rows.Next() {
		var (
			pw        PatientWithHealth
			hID       *uuid.UUID
			hPt       *uuid.UUID
			w, ht, pr *string
			updatedAt *time.Time
		)
		if err := rows.Scan(&pw.ID, &pw.Username, &pw.Phone, &pw.Age, &pw.Address, &pw.CreatedAt,
			&hID, &hPt, &w, &ht, &pr, &updatedAt); err != nil {
			return nil, err
		}
		if hID != nil {
			pw.HealthInfo = &HealthInfo{ID: *hID, PatientID: *hPt, Weight: w, Height: ht, Pressure: pr}
			if updatedAt != nil {
				pw.HealthInfo.UpdatedAt = *updatedAt
			}
		}
		items = append(items, &pw)
	}
	return items, rows.Err()
}

func (r *repoPG) GetHealthInfo(ctx context.Context, patientID uuid.UUID) (*HealthInfo, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	var h HealthInfo
	err := r.pool.QueryRow(ctx, `
		SELECT id, patient_id, weight, height, pressure, updated_at
		FROM patient_health_info WHERE patient_id = $1`,
		patientID).Scan(&h.ID, &h.PatientID, &h.Weight, &h.Height, &h.Pressure, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repoPG) UpdateHealthMetrics(ctx context.Context, patientID uuid.UUID, weight, height, pressure *string) error {
	if r.pool == nil {
		return db.ErrUnavailable
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient_health_info SET
			weight = COALESCE($2, weight),
			height = COALESCE($3, height),
			pressure = COALESCE($4, pressure),
			updated_at = NOW()
		WHERE patient_id = $1`,
		patientID, weight, height, pressure)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
