package models

import (
	"time"

	"github.com/GreyPaperclip/cffadb/internal/money"
)

// LedgerEntry is one row of a player's statement. It is assembled on demand
// by the ledger builder and never persisted. Exactly one of Credit and Debit
// is set on real entries; the placeholder "Initial Balance" entry has
// neither.
type LedgerEntry struct {
	Date        time.Time
	Credit      *money.Money
	Debit       *money.Money
	Balance     money.Money
	Description string
}
