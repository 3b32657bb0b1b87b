// Package calculator holds the pure reconciliation arithmetic: cost
// splitting, summary rebuilding and statement assembly. Nothing here touches
// the record store, which keeps every invariant testable without I/O.
package calculator

import (
	"errors"

	"github.com/GreyPaperclip/cffadb/internal/money"
)

// ErrInvalidGame is returned for a game with no attendance units. A game
// with nobody attending and no guests is not representable: storing it would
// make the per-unit cost a division by zero.
var ErrInvalidGame = errors.New("game must have at least one attendance unit")

// CostPerUnit splits a game's total cost across its attendance units
// (attending players plus guests). The result keeps full working precision;
// rounding to currency precision belongs at presentation time only.
func CostPerUnit(cost money.Money, totalUnits int) (money.Money, error) {
	if totalUnits <= 0 {
		return money.Zero(), ErrInvalidGame
	}
	return cost.DivInt(totalUnits), nil
}
