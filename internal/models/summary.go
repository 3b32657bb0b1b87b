package models

import (
	"time"

	"github.com/GreyPaperclip/cffadb/internal/money"
)

// NeverPlayed is the sentinel lastPlayed date for players who have not
// attended a game, so sort-by-recency always has a value.
var NeverPlayed = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// PlayerSummary is the derived per-player aggregate. It is a materialized
// view over Games, Payments and Adjustments and can always be rebuilt from
// them; it is never the source of truth.
//
// After a consistent recompute the invariant holds:
//
//	Balance == MoniesPaid - GamesCost + adjustment
type PlayerSummary struct {
	PlayerName    string
	GamesAttended int
	LastPlayed    time.Time

	// GamesCost is the cumulative cost attributed to the player: per-unit
	// cost for each game attended plus per-unit cost times guest count for
	// each game where they hosted guests.
	GamesCost money.Money

	// MoniesPaid is the sum of all payments recorded for the player.
	MoniesPaid money.Money

	Balance money.Money
}

// NewPlayerSummary returns the zeroed summary row inserted when a player is
// first created.
func NewPlayerSummary(name string) PlayerSummary {
	return PlayerSummary{PlayerName: name, LastPlayed: NeverPlayed}
}
