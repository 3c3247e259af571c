package service

import "lumenstudio/internal/entities"

// Session rate card. Bases are inclusive upper bounds on duration; past four
// hours every started hour is billed at the extra-hour rate.
const (
	baseUpToHour      = 60
	baseUpToTwoHours  = 110
	baseUpToFourHours = 200
	extraHourRate     = 50

	addonBackdrop  = 15
	addonLights    = 20
	addonAssistant = 35
)

// Price computes the total for a booked duration plus selected add-ons.
// Non-positive durations are a caller error, validated upstream.
func Price(durationMinutes int, addons entities.AddonSelection) int {
	total := basePrice(durationMinutes)
	if addons.Backdrop {
		total += addonBackdrop
	}
	if addons.Lights {
		total += addonLights
	}
	if addons.Assistant {
		total += addonAssistant
	}
	return total
}

func basePrice(durationMinutes int) int {
	switch {
	case durationMinutes <= 60:
		return baseUpToHour
	case durationMinutes <= 120:
		return baseUpToTwoHours
	case durationMinutes <= 240:
		return baseUpToFourHours
	default:
		extraHours := (durationMinutes - 240 + 59) / 60
		return baseUpToFourHours + extraHours*extraHourRate
	}
}

// Prices returns the published rate card.
func Prices() entities.PriceBook {
	return entities.PriceBook{
		BaseUpToHour:      baseUpToHour,
		BaseUpToTwoHours:  baseUpToTwoHours,
		BaseUpToFourHours: baseUpToFourHours,
		ExtraHourRate:     extraHourRate,
		Addons: []entities.AddonPrice{
			{Name: "backdrop", Price: addonBackdrop},
			{Name: "lights", Price: addonLights},
			{Name: "assistant", Price: addonAssistant},
		},
	}
}
