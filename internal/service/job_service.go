package service

import (
	"fmt"
	"log"
)

// JobStore captures the persistence interactions the maintenance job needs.
type JobStore interface {
	GetPendingReservationIDsPastStart() ([]string, error)
	CancelReservations(ids []string) error
}

type JobService struct {
	Repo JobStore
}

func NewJobService(repo JobStore) *JobService {
	return &JobService{Repo: repo}
}

// ExpireStaleHolds cancels PENDING reservations whose start time has passed
// without ever being confirmed. PENDING -> CANCELLED is a legal transition,
// so expiry preserves the status lifecycle and the booking history.
func (s *JobService) ExpireStaleHolds() error {
	log.Println("Cron Job: Checking for stale pending holds...")

	reservationIDs, err := s.Repo.GetPendingReservationIDsPastStart()
	if err != nil {
		return fmt.Errorf("cron job: failed to get stale pending reservations: %w", err)
	}

	if len(reservationIDs) == 0 {
		log.Println("Cron Job: No stale pending holds found.")
		return nil
	}

	log.Printf("Cron Job: Found %d stale pending holds. IDs: %v", len(reservationIDs), reservationIDs)

	if err := s.Repo.CancelReservations(reservationIDs); err != nil {
		return fmt.Errorf("cron job: failed to cancel stale reservations: %w", err)
	}
	return nil
}
