package calculator

import (
	"sort"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/money"
)

var (
	// adjustmentDate predates all real activity so an opening adjustment
	// always sorts first.
	adjustmentDate = time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)

	// placeholderDate is used for the synthetic entry on an empty
	// statement.
	placeholderDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// BuildStatement merges a player's opening adjustment, attended games and
// payments into a bank-statement-style ledger, most recent first.
//
// Per-game debits are recomputed fresh from cost and attendance units, not
// read from the stored summary. Entries are sorted ascending by date with a
// stable tie-break (adjustment, then games, then payments, each in input
// order), the running balance is accumulated, amounts are rounded to
// currency precision for display, and the sequence is reversed.
func BuildStatement(adjustment *models.Adjustment, games []models.Game, payments []models.Payment) []models.LedgerEntry {
	var entries []models.LedgerEntry

	if adjustment != nil {
		entry := models.LedgerEntry{
			Date:        adjustmentDate,
			Description: "Initial balance adjustment",
		}
		if adjustment.Adjust.IsPositive() {
			amount := adjustment.Adjust
			entry.Credit = &amount
		} else {
			amount := adjustment.Adjust.Abs()
			entry.Debit = &amount
		}
		entries = append(entries, entry)
	}

	for i := range games {
		game := &games[i]
		perUnit, err := CostPerUnit(game.Cost, game.TotalUnits())
		if err != nil {
			// Unstorable game slipped in via import; it carries no cost.
			continue
		}
		entries = append(entries, models.LedgerEntry{
			Date:        game.Date,
			Debit:       &perUnit,
			Description: "Game",
		})
	}

	for _, p := range payments {
		entry := models.LedgerEntry{Date: p.Date, Description: p.Type}
		if p.Amount.IsNegative() {
			amount := p.Amount.Abs()
			entry.Debit = &amount
		} else {
			amount := p.Amount
			entry.Credit = &amount
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return []models.LedgerEntry{{
			Date:        placeholderDate,
			Description: "Initial Balance",
		}}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	running := money.Zero()
	for i := range entries {
		if entries[i].Credit != nil {
			running = running.Add(*entries[i].Credit)
			rounded := entries[i].Credit.Rounded()
			entries[i].Credit = &rounded
		}
		if entries[i].Debit != nil {
			running = running.Sub(*entries[i].Debit)
			rounded := entries[i].Debit.Rounded()
			entries[i].Debit = &rounded
		}
		entries[i].Balance = running.Rounded()
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}
