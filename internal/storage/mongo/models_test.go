package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/money"
)

// The game document keeps the field names the collections were imported
// with, so a pre-existing deployment stays readable.
func TestGameDocLegacyFieldNames(t *testing.T) {
	game := &models.Game{
		ID:         "abc",
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Cost:       money.MustParse("30.00"),
		Booker:     "Alice",
		Attendance: map[string]string{"Alice": models.ResultDraw, "Bob": models.ResultDraw},
		Guests:     map[string]int{"Bob": 1},
		Provenance: models.ProvenanceSubmitted,
		Timestamp:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	raw, err := bson.Marshal(toGameDoc(game))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{
		"_id", "Date of Game dd-MON-YYYY", "Cost of Game", "Cost Each",
		"Players", "Booker", "PlayerList", "CFFA", "Timestamp", "attendance",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("document missing field %q", key)
		}
	}
	if got := m["PlayerList"]; got != "Alice,Bob,Bob_has_1_guests" {
		t.Errorf("PlayerList = %v", got)
	}

	var d gameDoc
	if err := bson.Unmarshal(raw, &d); err != nil {
		t.Fatalf("unmarshal doc: %v", err)
	}
	back := d.model()
	if !back.Cost.Equal(game.Cost) {
		t.Errorf("cost = %s, want %s", back.Cost, game.Cost)
	}
	// 30.00 over 3 units.
	if !d.CostEach.Equal(money.MustParse("10")) {
		t.Errorf("cost each = %s, want 10", d.CostEach)
	}
	if !back.Attended("bob") || back.GuestCount("Bob") != 1 {
		t.Errorf("attendance lost in round trip: %+v", back)
	}
}

func TestSummaryDocRoundTrip(t *testing.T) {
	sum := models.PlayerSummary{
		PlayerName:    "Alice",
		GamesAttended: 4,
		LastPlayed:    time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		GamesCost:     money.MustParse("40.67"),
		MoniesPaid:    money.MustParse("35.00"),
		Balance:       money.MustParse("-5.67"),
	}
	raw, err := bson.Marshal(toSummaryDoc(sum))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var d summaryDoc
	if err := bson.Unmarshal(raw, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	back := d.model()
	if !back.Balance.Equal(sum.Balance) || !back.GamesCost.Equal(sum.GamesCost) {
		t.Errorf("money fields drifted: %+v", back)
	}
	if !back.LastPlayed.Equal(sum.LastPlayed) {
		t.Errorf("lastPlayed = %s", back.LastPlayed)
	}
}
