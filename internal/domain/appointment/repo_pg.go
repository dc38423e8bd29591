package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/db"
	"github.com/gaavsvaasthy/gaavsvaasthy/internal/platform/scheduling"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *repoPG) Insert(ctx context.Context, a *Appointment) error {
	if r.pool == nil {
		return db.ErrUnavailable
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, patient_id, doctor_id, consultation_id,
			appointment_date, slot_start, slot_end, status, token_no)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.PatientID, a.DoctorID, a.ConsultationID,
		a.AppointmentDate, a.SlotStart, a.SlotEnd, a.Status, a.TokenNo)
	if isUniqueViolation(err) {
		return ErrSlotConflict
	}
	return err
}

const apptDoctorCols = `a.id, a.patient_id, a.doctor_id, a.consultation_id,
	to_char(a.appointment_date, 'YYYY-MM-DD'),
	to_char(a.slot_start, 'HH24:MI:SS'), to_char(a.slot_end, 'HH24:MI:SS'),
	a.status, a.token_no, a.created_at,
	d.name, d.specialization, d.phone`

func scanWithDoctor(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.ConsultationID,
		&a.AppointmentDate, &a.SlotStart, &a.SlotEnd,
		&a.Status, &a.TokenNo, &a.CreatedAt,
		&a.DoctorName, &a.DoctorSpecialization, &a.DoctorPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	return scanWithDoctor(r.pool.QueryRow(ctx, `
		SELECT `+apptDoctorCols+`
		FROM appointment a
		JOIN doctor d ON d.id = a.doctor_id
		WHERE a.id = $1`, id))
}

func (r *repoPG) CountActiveAt(ctx context.Context, doctorID uuid.UUID, date, slotStart string) (int, error) {
	if r.pool == nil {
		return 0, db.ErrUnavailable
	}
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointment
		WHERE doctor_id = $1 AND appointment_date = $2 AND slot_start = $3::time
			AND status IN ('BOOKED','CONFIRMED')`,
		doctorID, date, slotStart).Scan(&n)
	return n, err
}

func (r *repoPG) CountForDay(ctx context.Context, doctorID uuid.UUID, date string) (int, error) {
	if r.pool == nil {
		return 0, db.ErrUnavailable
	}
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointment
		WHERE doctor_id = $1 AND appointment_date = $2`,
		doctorID, date).Scan(&n)
	return n, err
}

func (r *repoPG) BookedStarts(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(slot_start, 'HH24:MI:SS')
		FROM appointment
		WHERE doctor_id = $1 AND appointment_date = $2
			AND status IN ('BOOKED','CONFIRMED')
		ORDER BY slot_start`,
		doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var starts []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		starts = append(starts, s)
	}
	return starts, rows.Err()
}

func (r *repoPG) BookedSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]scheduling.Slot, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(slot_start, 'HH24:MI:SS'), to_char(slot_end, 'HH24:MI:SS')
		FROM appointment
		WHERE doctor_id = $1 AND appointment_date = $2
			AND status IN ('BOOKED','CONFIRMED')
		ORDER BY slot_start`,
		doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var slots []scheduling.Slot
	for rows.Next() {
		var s scheduling.Slot
		if err := rows.Scan(&s.Start, &s.End); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Appointment, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptDoctorCols+`
		FROM appointment a
		JOIN doctor d ON d.id = a.doctor_id
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date, a.slot_start`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanWithDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) ListByDoctorDate(ctx context.Context, doctorID uuid.UUID, date string) ([]*Appointment, error) {
	if r.pool == nil {
		return nil, db.ErrUnavailable
	}
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.patient_id, a.doctor_id, a.consultation_id,
			to_char(a.appointment_date, 'YYYY-MM-DD'),
			to_char(a.slot_start, 'HH24:MI:SS'), to_char(a.slot_end, 'HH24:MI:SS'),
			a.status, a.token_no, a.created_at,
			p.username, p.phone, p.age
		FROM appointment a
		JOIN patient p ON p.id = a.patient_id
		WHERE a.doctor_id = $1 AND a.appointment_date = $2
		ORDER BY a.token_no`,
		doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.ConsultationID,
			&a.AppointmentDate, &a.SlotStart, &a.SlotEnd,
			&a.Status, &a.TokenNo, &a.CreatedAt,
			&a.PatientName, &a.PatientPhone, &a.PatientAge); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}
