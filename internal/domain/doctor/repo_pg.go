package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/db"
)

// ErrNotFound is returned when no doctor matches the lookup.
var ErrNotFound = errors.New("doctor not found")

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const doctorCols = `id, name, specialization, phone, active, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialization, &d.Phone, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	if r.pool == nil {
		return db.ErrUnavailable
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor (id, name, specialization, phone, active)
		VALUES ($1,$2,$3,$4,$5)`,
		d.ID, d.Name, d.Specialization, d.Phone, d.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	return scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *repoPG) GetByPhone(ctx context.Context, phone string) (*Doctor, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	return scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE phone = $1`, phone))
}

func (r *repoPG) ListActive(ctx context.Context) ([]*Doctor, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `SELECT `+doctorCols+` FROM doctor WHERE active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+doctorCols+` FROM doctor ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, db.ErrUnavailable
	}
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM doctor`).Scan(&n)
	return n, err
}

func (r *repoPG) AddAvailability(ctx context.Context, w *AvailabilityWindow) error {
	if r.pool == nil {
		return db.ErrUnavailable
	}
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor_availability (id, doctor_id, available_date, start_time, end_time, slot_duration)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		w.ID, w.DoctorID, w.AvailableDate, w.StartTime, w.EndTime, w.SlotDuration)
	return err
}

func (r *repoPG) WindowsByDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*AvailabilityWindow, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, doctor_id, to_char(available_date, 'YYYY-MM-DD'),
			to_char(start_time, 'HH24:MI:SS'), to_char(end_time, 'HH24:MI:SS'), slot_duration
		FROM doctor_availability
		WHERE doctor_id = $1 AND available_date = $2
		ORDER BY start_time`,
		doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AvailabilityWindow
	for rows.Next() {
		var w AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.DoctorID, &w.AvailableDate, &w.StartTime, &w.EndTime, &w.SlotDuration); err != nil {
			return nil, err
		}
		items = append(items, &w)
	}
	return items, rows.Err()
}
