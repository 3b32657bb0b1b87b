package calculator

import (
	"log/slog"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/money"
	"github.com/GreyPaperclip/cffadb/internal/names"
)

// BuildSummaries rebuilds the per-player summary rows from scratch out of
// the full game, payment and adjustment history. The result order follows
// the players slice.
//
// Per-game costs accumulate at full working precision; GamesCost is rounded
// to currency precision once at the end, and Balance is derived from the
// rounded figure so that
//
//	Balance == MoniesPaid - GamesCost + adjustment
//
// holds exactly on the stored rows.
func BuildSummaries(players []string, games []models.Game, payments []models.Payment, adjustments []models.Adjustment) []models.PlayerSummary {
	paid := AggregatePayments(payments)

	adjustByKey := make(map[string]money.Money, len(adjustments))
	for _, adj := range adjustments {
		adjustByKey[names.Key(adj.Player)] = adj.Adjust
	}

	summaries := make([]models.PlayerSummary, 0, len(players))
	for _, player := range players {
		row := models.NewPlayerSummary(player)
		gamesCost := money.Zero()

		for i := range games {
			game := &games[i]
			units := game.TotalUnits()
			if units <= 0 {
				// Stored games always have units; tolerate a corrupt
				// import record rather than divide by zero.
				slog.Warn("skipping game with no attendance units", "game", game.ID)
				continue
			}
			perUnit := game.Cost.DivInt(units)

			if game.Attended(player) {
				gamesCost = gamesCost.Add(perUnit)
				row.GamesAttended++
				if game.Date.After(row.LastPlayed) {
					row.LastPlayed = game.Date
				}
			}
			if n := game.GuestCount(player); n > 0 {
				gamesCost = gamesCost.Add(perUnit.MulInt(n))
			}
		}

		key := names.Key(player)
		row.GamesCost = gamesCost.Rounded()
		row.MoniesPaid = paid[key]
		row.Balance = row.MoniesPaid.Sub(row.GamesCost).Add(adjustByKey[key])
		summaries = append(summaries, row)
	}
	return summaries
}

// AggregatePayments sums payment amounts per player, grouping names with the
// store's collation semantics. Keys are canonical collation keys from
// names.Key.
func AggregatePayments(payments []models.Payment) map[string]money.Money {
	totals := make(map[string]money.Money)
	for _, p := range payments {
		key := names.Key(p.Player)
		totals[key] = totals[key].Add(p.Amount)
	}
	return totals
}
