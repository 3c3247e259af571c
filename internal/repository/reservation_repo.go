package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"lumenstudio/internal/db"
	apperrors "lumenstudio/internal/errors"
)

// Postgres error code raised when an insert or update trips an EXCLUDE
// constraint (exclusion_violation).
const pgExclusionViolation = "23P01"

// The overlap exclusion over tstzrange is what makes check-then-insert safe:
// two writers proposing overlapping active intervals cannot both commit, no
// application-level locking involved. Half-open ranges ('[)') keep
// back-to-back reservations legal.
const schemaSQL = `
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS reservations (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	backdrop BOOLEAN NOT NULL DEFAULT FALSE,
	lights BOOLEAN NOT NULL DEFAULT FALSE,
	assistant BOOLEAN NOT NULL DEFAULT FALSE,
	total_price INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','CONFIRMED','CANCELLED')),
	start_at TIMESTAMPTZ NOT NULL,
	end_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (start_at < end_at),
	CONSTRAINT reservations_no_overlap EXCLUDE USING gist
		(tstzrange(start_at, end_at, '[)') WITH &&) WHERE (status <> 'CANCELLED')
);

CREATE INDEX IF NOT EXISTS idx_reservations_start_at ON reservations (start_at);
CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations (status);
`

const reservationColumns = `id, name, email, phone, notes, backdrop, lights, assistant, total_price, status, start_at, end_at, created_at, updated_at`

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

// EnsureSchema creates the reservations table and its constraints if they do
// not exist yet.
func (r *ReservationRepository) EnsureSchema() error {
	if _, err := r.DB.Exec(schemaSQL); err != nil {
		return fmt.Errorf("error ensuring reservations schema: %w", err)
	}
	return nil
}

// ListActiveBetween returns all non-cancelled reservations whose interval
// intersects the half-open window [windowStart, windowEnd), ordered by start.
func (r *ReservationRepository) ListActiveBetween(windowStart, windowEnd time.Time) ([]db.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status <> 'CANCELLED'
			AND start_at < $2
			AND end_at > $1
		ORDER BY start_at`

	rows, err := r.DB.Query(query, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("error querying active reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

// CreateReservation inserts a new reservation row. A trip of the overlap
// exclusion constraint comes back as ErrConflict.
func (r *ReservationRepository) CreateReservation(res *db.Reservation) error {
	query := `
		INSERT INTO reservations
		(id, name, email, phone, notes, backdrop, lights, assistant, total_price, status, start_at, end_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.DB.Exec(query,
		res.ID,
		res.Name,
		res.Email,
		res.Phone,
		res.Notes,
		res.Backdrop,
		res.Lights,
		res.Assistant,
		res.TotalPrice,
		res.Status,
		res.StartAt,
		res.EndAt,
		res.CreatedAt,
		res.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error inserting reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetReservationByID(id string) (*db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying reservation %s: %w", id, err)
	}
	return res, nil
}

// UpdateReservationStatus moves a reservation from one status to another. The
// update is conditional on the current status so a concurrent transition
// cannot be silently overwritten; losing that race reports ErrConflict.
func (r *ReservationRepository) UpdateReservationStatus(id, from, to string) error {
	query := `UPDATE reservations SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	result, err := r.DB.Exec(query, id, from, to)
	if err != nil {
		return fmt.Errorf("error updating reservation %s status: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking reservation %s: %w", id, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}
	return nil
}

// ListReservations returns reservations filtered by an optional day window
// and an optional status. Zero-value arguments mean no filter.
func (r *ReservationRepository) ListReservations(windowStart, windowEnd time.Time, status string) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	var args []interface{}
	if !windowStart.IsZero() && !windowEnd.IsZero() {
		args = append(args, windowStart, windowEnd)
		query += fmt.Sprintf(" AND start_at < $%d AND end_at > $%d", len(args), len(args)-1)
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY start_at"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer rows.Close()

	return collectReservations(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*db.Reservation, error) {
	var res db.Reservation
	err := row.Scan(
		&res.ID, &res.Name, &res.Email, &res.Phone, &res.Notes,
		&res.Backdrop, &res.Lights, &res.Assistant,
		&res.TotalPrice, &res.Status,
		&res.StartAt, &res.EndAt, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func collectReservations(rows *sql.Rows) ([]db.Reservation, error) {
	var reservations []db.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return reservations, nil
}
