package models

import (
	"testing"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/money"
)

func TestTotalUnitsCountsGuests(t *testing.T) {
	g := Game{
		Attendance: map[string]string{"Alice": ResultDraw, "Bob": "Win"},
		Guests:     map[string]int{"Alice": 2, "Carl": 1},
	}
	if got := g.TotalUnits(); got != 5 {
		t.Errorf("TotalUnits = %d, want 5", got)
	}
}

func TestAttendedMarkers(t *testing.T) {
	for _, marker := range []string{"Win", "win", "Lose", "lose", "Draw", "draw", "No Show", "no show"} {
		if !AttendedMarker(marker) {
			t.Errorf("marker %q should count as attended", marker)
		}
	}
	for _, marker := range []string{"", "Maybe", "WIN", "noshow"} {
		if AttendedMarker(marker) {
			t.Errorf("marker %q should not count as attended", marker)
		}
	}
}

func TestAttendedIsCollationAware(t *testing.T) {
	g := Game{Attendance: map[string]string{"José": ResultDraw}}
	if !g.Attended("jose") {
		t.Error("attendance lookup should ignore case and accents")
	}
	if g.Attended("Bob") {
		t.Error("Bob did not attend")
	}
}

func TestPlayerList(t *testing.T) {
	g := Game{
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Cost:       money.MustParse("30.00"),
		Attendance: map[string]string{"Carl": ResultDraw, "Alice": ResultDraw},
		Guests:     map[string]int{"Alice": 2},
	}
	want := "Alice,Carl,Alice_has_2_guests"
	if got := g.PlayerList(); got != want {
		t.Errorf("PlayerList = %q, want %q", got, want)
	}
}
