// Package scheduling holds the pure slot arithmetic shared by the doctor
// availability and appointment booking flows. Nothing here touches the store.
package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is a half-open candidate interval [Start, End) within a single day.
// Times are formatted HH:MM:SS. Slots are values; equality is field equality.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseMinutes converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
// Seconds are ignored.
func ParseMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", t)
	}
	return h*60 + m, nil
}

// FormatMinutes converts minutes since midnight to "HH:MM:SS".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d:00", m/60, m%60)
}

// GenerateSlots cuts the window [start, end) into consecutive slots of
// durationMin minutes. A trailing partial slot is dropped. Malformed input,
// a non-positive duration or start >= end all yield an empty result.
func GenerateSlots(start, end string, durationMin int) []Slot {
	if durationMin <= 0 {
		return nil
	}
	s, err := ParseMinutes(start)
	if err != nil {
		return nil
	}
	e, err := ParseMinutes(end)
	if err != nil {
		return nil
	}
	var slots []Slot
	for cur := s; cur+durationMin <= e; cur += durationMin {
		slots = append(slots, Slot{
			Start: FormatMinutes(cur),
			End:   FormatMinutes(cur + durationMin),
		})
	}
	return slots
}

// FilterAvailable removes candidates whose start time matches a booked slot
// start. Only start boundaries are compared; candidate order is preserved.
func FilterAvailable(candidates []Slot, bookedStarts []string) []Slot {
	if len(bookedStarts) == 0 {
		return candidates
	}
	booked := make(map[int]bool, len(bookedStarts))
	for _, b := range bookedStarts {
		m, err := ParseMinutes(b)
		if err != nil {
			continue
		}
		booked[m] = true
	}
	var free []Slot
	for _, c := range candidates {
		m, err := ParseMinutes(c.Start)
		if err != nil {
			continue
		}
		if !booked[m] {
			free = append(free, c)
		}
	}
	return free
}
