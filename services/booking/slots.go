package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// slotBaseOffset counts half-hours after midnight; 18 is 09:00.
	slotBaseOffset = 18
	// slotCount covers 09:00 through 17:00 inclusive.
	slotCount = 17

	dateLayout    = "2006-01-02"
	slotKeyLayout = "2006-01-02T1504"
)

var (
	slotLabels   = GenerateSlots(slotBaseOffset, slotCount)
	slotLabelSet = func() map[string]struct{} {
		set := make(map[string]struct{}, len(slotLabels))
		for _, l := range slotLabels {
			set[l] = struct{}{}
		}
		return set
	}()
)

// GenerateSlots returns count half-hour labels ("HH:MM") starting offset
// half-hours after midnight.
func GenerateSlots(offset, count int) []string {
	slots := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := offset + i
		slots = append(slots, fmt.Sprintf("%02d:%02d", n/2, (n%2)*30))
	}
	return slots
}

// TimeSlots returns the bookable labels of a day, 09:00 to 17:00.
func TimeSlots() []string {
	out := make([]string, len(slotLabels))
	copy(out, slotLabels)
	return out
}

// IsSlotLabel reports whether label is one of the bookable labels.
func IsSlotLabel(label string) bool {
	_, ok := slotLabelSet[label]
	return ok
}

// ParseSlotLabel splits a "HH:MM" label into hour and minute.
func ParseSlotLabel(label string) (int, int, error) {
	parts := strings.Split(label, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid time label %q", label)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in time label %q", label)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in time label %q", label)
	}
	return hour, minute, nil
}

// DayBounds returns 00:00:00.000 and 23:59:59.999 of date's calendar day in loc.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

// CombineDateAndSlot places the label's time of day on date's calendar day in loc.
func CombineDateAndSlot(date time.Time, label string, loc *time.Location) (time.Time, error) {
	hour, minute, err := ParseSlotLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc), nil
}

// SlotKey identifies one bookable (day, time) pair, e.g. "2024-06-01T0930".
func SlotKey(at time.Time) string {
	return at.Format(slotKeyLayout)
}

// ParseDate parses a "YYYY-MM-DD" calendar date in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, loc)
}

// FormatDate renders a calendar date as "YYYY-MM-DD".
func FormatDate(date time.Time) string {
	return date.Format(dateLayout)
}
