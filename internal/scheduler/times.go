package scheduler

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidClockTime indica un "HH:MM" malformado o fuera de rango.
var ErrInvalidClockTime = errors.New("invalid clock time")

// ParseClockTime convierte "HH:MM" a horas en punto flotante (9:30 -> 9.5).
func ParseClockTime(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return float64(hours) + float64(minutes)/60, nil
}

// WrapClock normaliza horas derivadas fuera de [0,24) al dia anterior o
// siguiente: bedtime 01:00 menos dos horas queda en 23:00.
func WrapClock(tf float64) float64 {
	wrapped := math.Mod(tf, 24)
	if wrapped < 0 {
		wrapped += 24
	}
	return wrapped
}

// FormatClockTime convierte horas en punto flotante a "HH:MM", envolviendo
// primero con WrapClock.
func FormatClockTime(tf float64) string {
	tf = WrapClock(tf)
	hours := int(tf)
	minutes := int(math.Round((tf - float64(hours)) * 60))
	if minutes == 60 {
		hours = (hours + 1) % 24
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
