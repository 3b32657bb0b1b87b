package models

import "github.com/GreyPaperclip/cffadb/internal/money"

// Adjustment is a one-time opening balance carried over from an external
// import. At most one exists per player, and none are created by normal
// lifecycle operations. On a ledger it appears as a synthetic opening entry
// dated before all real activity.
type Adjustment struct {
	Player string
	Adjust money.Money
}
