package repository

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetPendingReservationIDsPastStart finds holds that were never confirmed and
// whose start time has already passed.
func (r *JobRepository) GetPendingReservationIDsPastStart() ([]string, error) {
	query := `SELECT id FROM reservations WHERE status = 'PENDING' AND start_at < NOW()`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying stale pending reservations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// CancelReservations marks the given reservations CANCELLED in one statement.
func (r *JobRepository) CancelReservations(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE reservations SET status = 'CANCELLED', updated_at = NOW() WHERE id = ANY($1) AND status = 'PENDING'`
	result, err := r.DB.Exec(query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error cancelling stale reservations: %w", err)
	}

	logAffected(result)
	return nil
}

func logAffected(result sql.Result) {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
		return
	}
	log.Printf("Cancelled %d stale pending reservations", rowsAffected)
}
