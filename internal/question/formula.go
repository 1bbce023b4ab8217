package question

import (
	"fmt"
	"math"
	"strconv"
)

// The formulas below are the single source of truth for expected
// answers. Generators call them when building a spec, and tests feed
// their output back through the judge to confirm the two sides agree.

const gravity = 9.81

// EnduranceHours returns flight endurance for a fuel quantity and a
// constant consumption rate, both in the same units.
func EnduranceHours(quantity, ratePerHour float64) float64 {
	return quantity / ratePerHour
}

// DriftMeters returns the downwind displacement of a parcel released
// at the given altitude into a constant wind, rounded to whole metres.
// Fall time ignores drag: t = sqrt(2h/g).
func DriftMeters(windSpeed, altitude float64) float64 {
	return math.Round(windSpeed * math.Sqrt(2*altitude/gravity))
}

// ArrivalHHMM returns the 24-hour HHMM arrival time for a departure
// time, constant ground speed, and a sequence of leg distances. Each
// leg's travel time is rounded half-up to whole minutes before summing,
// matching the candidate-guide arithmetic.
func ArrivalHHMM(departure string, speed int, legs []int) (string, error) {
	minutes, err := hhmmToMinutes(departure)
	if err != nil {
		return "", err
	}
	if speed <= 0 {
		return "", fmt.Errorf("arrival time: speed must be positive, got %d", speed)
	}
	for _, distance := range legs {
		minutes += roundHalfUp(float64(distance) / float64(speed) * 60.0)
	}
	return minutesToHHMM(minutes), nil
}

// hhmmToMinutes converts a 4-digit 24-hour time to minutes past midnight.
func hhmmToMinutes(hhmm string) (int, error) {
	if len(hhmm) != 4 {
		return 0, fmt.Errorf("time %q: expected 4 digits HHMM", hhmm)
	}
	hh, errHH := strconv.Atoi(hhmm[:2])
	mm, errMM := strconv.Atoi(hhmm[2:])
	if errHH != nil || errMM != nil || hh < 0 || mm < 0 {
		return 0, fmt.Errorf("time %q: expected 4 digits HHMM", hhmm)
	}
	if hh > 23 || mm > 59 {
		return 0, fmt.Errorf("time %q: out of range", hhmm)
	}
	return hh*60 + mm, nil
}

// minutesToHHMM converts minutes past midnight to HHMM, wrapping at 24h.
func minutesToHHMM(total int) string {
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d%02d", total/60, total%60)
}

// roundHalfUp rounds to the nearest integer with ties going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// lerpInt interpolates between two integers, clamping t to [0, 1].
func lerpInt(a, b int, t float64) int {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return roundHalfUp(float64(a) + float64(b-a)*t)
}
