package service

import (
	"fmt"
	"time"

	"lumenstudio/internal/entities"
	apperrors "lumenstudio/internal/errors"
)

// GenerateSlots produces the ordered, contiguous, fixed-width slots for one
// calendar day. The date is interpreted in the configured location's civil
// time; the time-of-day part of date is ignored. Slots come back with
// Available unset, tagging is the resolver's job.
//
// A slot width that does not evenly divide the open window is rejected rather
// than silently truncating the last slot.
func GenerateSlots(date time.Time, cfg entities.DayConfig) ([]entities.Slot, error) {
	if err := validateDayConfig(cfg); err != nil {
		return nil, err
	}

	year, month, day := date.In(cfg.Location).Date()
	dayOpen := time.Date(year, month, day, cfg.OpenHour, 0, 0, 0, cfg.Location)
	dayClose := time.Date(year, month, day, cfg.CloseHour, 0, 0, 0, cfg.Location)

	width := time.Duration(cfg.SlotMinutes) * time.Minute
	slots := make([]entities.Slot, 0, (cfg.CloseHour-cfg.OpenHour)*60/cfg.SlotMinutes)
	for start := dayOpen; start.Before(dayClose); start = start.Add(width) {
		slots = append(slots, entities.Slot{StartAt: start, EndAt: start.Add(width)})
	}
	return slots, nil
}

func validateDayConfig(cfg entities.DayConfig) error {
	if cfg.Location == nil {
		return apperrors.NewConfigError("location not set")
	}
	if cfg.OpenHour >= cfg.CloseHour {
		return apperrors.NewConfigError(fmt.Sprintf("open hour %d is not before close hour %d", cfg.OpenHour, cfg.CloseHour))
	}
	if cfg.SlotMinutes <= 0 {
		return apperrors.NewConfigError(fmt.Sprintf("slot width must be positive, got %d", cfg.SlotMinutes))
	}
	if windowMinutes := (cfg.CloseHour - cfg.OpenHour) * 60; windowMinutes%cfg.SlotMinutes != 0 {
		return apperrors.NewConfigError(fmt.Sprintf("slot width %dm does not evenly divide the %dm open window", cfg.SlotMinutes, windowMinutes))
	}
	return nil
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) share at least one instant. Touching endpoints do not
// overlap, which is what allows back-to-back bookings.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
