package store

import (
	"testing"
	"time"
)

func TestEventStatusValues(t *testing.T) {
	statuses := []EventStatus{EventConfirmed, EventTentative, EventCancelled}
	expected := []string{"confirmed", "tentative", "cancelled"}
	for i, s := range statuses {
		if string(s) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], s)
		}
	}
}

func TestEventOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	event := &CalendarEvent{
		StartTime: base,
		EndTime:   base.Add(time.Hour),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"exact match", base, base.Add(time.Hour), true},
		{"starts during", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"ends during", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"surrounds", base.Add(-time.Hour), base.Add(2 * time.Hour), true},
		{"inside", base.Add(10 * time.Minute), base.Add(20 * time.Minute), true},
		{"before", base.Add(-2 * time.Hour), base.Add(-time.Hour), false},
		{"after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
		{"back to back before", base.Add(-time.Hour), base, false},
		{"back to back after", base.Add(time.Hour), base.Add(2 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := event.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestRoomFields(t *testing.T) {
	room := Room{
		Name: "C-201",
		Facilities: Facilities{
			SeatingCapacity: 40,
			Videoprojector:  true,
		},
	}
	if room.Name == "" {
		t.Error("expected name to be set")
	}
	if room.Facilities.SeatingCapacity != 40 {
		t.Errorf("expected 40 seats, got %d", room.Facilities.SeatingCapacity)
	}
}
