package booking

import (
	"testing"
	"time"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()

	if len(slots) != 17 {
		t.Fatalf("len(TimeSlots()) = %d, want 17", len(slots))
	}
	if slots[0] != "09:00" {
		t.Errorf("first slot = %q, want 09:00", slots[0])
	}
	if slots[len(slots)-1] != "17:00" {
		t.Errorf("last slot = %q, want 17:00", slots[len(slots)-1])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Errorf("slots not strictly increasing at %d: %q <= %q", i, slots[i], slots[i-1])
		}
	}

	// Callers must not be able to mutate the shared labels.
	slots[0] = "00:00"
	if TimeSlots()[0] != "09:00" {
		t.Errorf("TimeSlots() returned shared backing array")
	}
}

func TestGenerateSlots(t *testing.T) {
	for offset := 0; offset+slotCount <= 48; offset++ {
		slots := GenerateSlots(offset, slotCount)
		if len(slots) != slotCount {
			t.Fatalf("offset %d: len = %d, want %d", offset, len(slots), slotCount)
		}
		for i := 1; i < len(slots); i++ {
			if slots[i] <= slots[i-1] {
				t.Errorf("offset %d: not strictly increasing at %d", offset, i)
			}
		}
		for _, s := range slots {
			if _, _, err := ParseSlotLabel(s); err != nil {
				t.Errorf("offset %d: label %q does not parse: %v", offset, s, err)
			}
		}
	}
}

func TestParseSlotLabel(t *testing.T) {
	tests := []struct {
		label      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{label: "09:00", wantHour: 9, wantMinute: 0},
		{label: "16:30", wantHour: 16, wantMinute: 30},
		{label: "9:00", wantErr: true},
		{label: "24:00", wantErr: true},
		{label: "12:75", wantErr: true},
		{label: "noon", wantErr: true},
		{label: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			h, m, err := ParseSlotLabel(tt.label)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSlotLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if err == nil && (h != tt.wantHour || m != tt.wantMinute) {
				t.Errorf("ParseSlotLabel(%q) = %d:%d, want %d:%d", tt.label, h, m, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestIsSlotLabel(t *testing.T) {
	if !IsSlotLabel("12:30") {
		t.Errorf("IsSlotLabel(12:30) = false, want true")
	}
	if IsSlotLabel("08:30") || IsSlotLabel("17:30") {
		t.Errorf("labels outside opening hours reported as bookable")
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("shop", -4*60*60)
	date := time.Date(2024, 6, 1, 15, 45, 0, 0, loc)

	start, end := DayBounds(date, loc)

	if want := time.Date(2024, 6, 1, 0, 0, 0, 0, loc); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if want := time.Date(2024, 6, 1, 23, 59, 59, 999000000, loc); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}

func TestCombineDateAndSlot(t *testing.T) {
	loc := time.UTC
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)

	at, err := CombineDateAndSlot(date, "14:30", loc)
	if err != nil {
		t.Fatalf("CombineDateAndSlot() error = %v", err)
	}
	if at.Hour() != 14 || at.Minute() != 30 || at.Day() != 1 {
		t.Errorf("CombineDateAndSlot() = %v, want 2024-06-01 14:30", at)
	}
	if got := SlotKey(at); got != "2024-06-01T1430" {
		t.Errorf("SlotKey() = %q, want 2024-06-01T1430", got)
	}

	if _, err := CombineDateAndSlot(date, "bad", loc); err == nil {
		t.Errorf("CombineDateAndSlot(bad) error = nil, want error")
	}
}
