package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"lumenstudio/internal/db"
	"lumenstudio/internal/entities"
	apperrors "lumenstudio/internal/errors"
	"lumenstudio/internal/utils"
)

// ReservationStore captures the persistence interactions the service needs.
type ReservationStore interface {
	ListActiveBetween(windowStart, windowEnd time.Time) ([]db.Reservation, error)
	CreateReservation(res *db.Reservation) error
	GetReservationByID(id string) (*db.Reservation, error)
	UpdateReservationStatus(id, from, to string) error
	ListReservations(windowStart, windowEnd time.Time, status string) ([]db.Reservation, error)
}

type ReservationService struct {
	Repo  ReservationStore
	Cfg   entities.DayConfig
	now   func() time.Time
	newID func() string
}

func NewReservationService(repo ReservationStore, cfg entities.DayConfig) *ReservationService {
	return &ReservationService{
		Repo:  repo,
		Cfg:   cfg,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// ResolveAvailability computes the bookable slots for one calendar day from a
// snapshot of storage. A slot is available unless it overlaps any active
// reservation. Reads are lock-free; the write path re-validates, so a write
// landing after this snapshot is caught at commit time.
func (s *ReservationService) ResolveAvailability(date time.Time) (*entities.DayAvailability, error) {
	slots, err := GenerateSlots(date, s.Cfg)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		// Valid configurations always yield at least one slot; zero means
		// misconfiguration, never "closed".
		return nil, apperrors.NewConfigError("open-hours configuration produced no slots")
	}

	dayStart := slots[0].StartAt
	dayEnd := slots[len(slots)-1].EndAt
	reservations, err := s.Repo.ListActiveBetween(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("error loading reservations for %s: %w", dayStart.Format("2006-01-02"), err)
	}

	for i := range slots {
		slots[i].Available = true
		for _, res := range reservations {
			if Overlaps(slots[i].StartAt, slots[i].EndAt, res.StartAt, res.EndAt) {
				slots[i].Available = false
				break
			}
		}
	}

	return &entities.DayAvailability{
		Date:  dayStart.Format("2006-01-02"),
		Slots: slots,
	}, nil
}

// CreateReservation validates the request, re-checks the proposed interval
// against current storage state and persists a new PENDING reservation. The
// overlap pre-check gives a precise conflict answer; the database exclusion
// constraint makes the check-then-insert atomic against concurrent writers.
func (s *ReservationService) CreateReservation(req *entities.ReservationRequest) (*entities.ReservationResponse, error) {
	if err := validateReservationRequest(req); err != nil {
		return nil, err
	}

	active, err := s.Repo.ListActiveBetween(req.StartAt, req.EndAt)
	if err != nil {
		return nil, fmt.Errorf("error checking for conflicts: %w", err)
	}
	for _, res := range active {
		if Overlaps(req.StartAt, req.EndAt, res.StartAt, res.EndAt) {
			return nil, apperrors.ErrConflict
		}
	}

	durationMinutes := int(req.EndAt.Sub(req.StartAt) / time.Minute)
	now := s.now().UTC()
	reservation := &db.Reservation{
		ID:         s.newID(),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Notes:      req.Notes,
		Backdrop:   req.Addons.Backdrop,
		Lights:     req.Addons.Lights,
		Assistant:  req.Addons.Assistant,
		TotalPrice: Price(durationMinutes, req.Addons),
		Status:     db.StatusPending,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.Repo.CreateReservation(reservation); err != nil {
		return nil, err
	}
	log.Printf("Created reservation %s for %s (%s - %s)",
		reservation.ID, reservation.Email,
		reservation.StartAt.Format(time.RFC3339), reservation.EndAt.Format(time.RFC3339))

	return toReservationResponse(reservation), nil
}

func (s *ReservationService) GetReservation(id string) (*entities.ReservationResponse, error) {
	reservation, err := s.Repo.GetReservationByID(id)
	if err != nil {
		return nil, err
	}
	return toReservationResponse(reservation), nil
}

// UpdateStatus applies one status transition. Allowed moves are
// PENDING -> CONFIRMED, PENDING -> CANCELLED and CONFIRMED -> CANCELLED;
// CANCELLED is terminal.
func (s *ReservationService) UpdateStatus(id, status string) (*entities.ReservationResponse, error) {
	if !validStatus(status) {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unrecognized value %q", status))
	}

	reservation, err := s.Repo.GetReservationByID(id)
	if err != nil {
		return nil, err
	}
	if reservation.Status == status {
		return toReservationResponse(reservation), nil
	}
	if !canTransition(reservation.Status, status) {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.Repo.UpdateReservationStatus(id, reservation.Status, status); err != nil {
		return nil, err
	}

	return s.GetReservation(id)
}

// CancelReservation is shorthand for a transition to CANCELLED.
func (s *ReservationService) CancelReservation(id string) (*entities.ReservationResponse, error) {
	return s.UpdateStatus(id, db.StatusCancelled)
}

// ListReservations returns reservations filtered by an optional calendar day
// and an optional status.
func (s *ReservationService) ListReservations(date *time.Time, status string) (*entities.ReservationsList, error) {
	if status != "" && !validStatus(status) {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unrecognized value %q", status))
	}

	var windowStart, windowEnd time.Time
	if date != nil {
		year, month, day := date.In(s.Cfg.Location).Date()
		windowStart = time.Date(year, month, day, 0, 0, 0, 0, s.Cfg.Location)
		windowEnd = windowStart.AddDate(0, 0, 1)
	}

	reservations, err := s.Repo.ListReservations(windowStart, windowEnd, status)
	if err != nil {
		return nil, err
	}

	list := &entities.ReservationsList{
		Total:        len(reservations),
		Reservations: make([]entities.ReservationResponse, 0, len(reservations)),
	}
	for i := range reservations {
		list.Reservations = append(list.Reservations, *toReservationResponse(&reservations[i]))
	}
	return list, nil
}

func validateReservationRequest(req *entities.ReservationRequest) error {
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return apperrors.NewValidationError("range", "start and end are required")
	}
	if !req.StartAt.Before(req.EndAt) {
		return apperrors.NewValidationError("range", "start must be before end")
	}
	if len(strings.TrimSpace(req.Name)) < 2 {
		return apperrors.NewValidationError("name", "must be at least 2 characters")
	}
	if !utils.ValidEmail(req.Email) {
		return apperrors.NewValidationError("email", "must look like local@domain.tld")
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" && utils.DigitCount(phone) < 10 {
		return apperrors.NewValidationError("phone", "must contain at least 10 digits")
	}
	return nil
}

func validStatus(status string) bool {
	switch status {
	case db.StatusPending, db.StatusConfirmed, db.StatusCancelled:
		return true
	}
	return false
}

func canTransition(from, to string) bool {
	switch from {
	case db.StatusPending:
		return to == db.StatusConfirmed || to == db.StatusCancelled
	case db.StatusConfirmed:
		return to == db.StatusCancelled
	}
	return false
}

func toReservationResponse(res *db.Reservation) *entities.ReservationResponse {
	return &entities.ReservationResponse{
		ID:    res.ID,
		Name:  res.Name,
		Email: res.Email,
		Phone: res.Phone,
		Notes: res.Notes,
		Addons: entities.AddonSelection{
			Backdrop:  res.Backdrop,
			Lights:    res.Lights,
			Assistant: res.Assistant,
		},
		TotalPrice: res.TotalPrice,
		Status:     res.Status,
		StartAt:    res.StartAt,
		EndAt:      res.EndAt,
		CreatedAt:  res.CreatedAt,
		UpdatedAt:  res.UpdatedAt,
	}
}
