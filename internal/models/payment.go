package models

import (
	"fmt"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/money"
)

// Payment type strings written by lifecycle operations. User-entered
// transactions carry a free-text type instead.
const (
	PaymentTypeBookingCredit = "CFFA Booking Credit"
)

// EditRemoveCreditType describes the compensating payment reversing the
// original booking credit when a game is edited.
func EditRemoveCreditType(gameDate time.Time) string {
	return fmt.Sprintf("CFFA Game Edit for %s. Booker change - remove original game credit",
		slashDate(gameDate))
}

// EditAddCreditType describes the compensating payment crediting the new
// booker when a game is edited.
func EditAddCreditType(gameDate time.Time) string {
	return fmt.Sprintf("CFFA Game Edit for %s. Booker change - add new game credit",
		slashDate(gameDate))
}

// DeletionCreditType describes the compensating payment reversing a deleted
// game's booking credit.
func DeletionCreditType(gameDate time.Time) string {
	return fmt.Sprintf("CFFA Game Deletion for %s. Booker removal - game credit",
		slashDate(gameDate))
}

// DeletionNoBookerType flags a deleted game that had no booker for manual
// review.
func DeletionNoBookerType(gameDate time.Time) string {
	return fmt.Sprintf("CFFA Game Deletion for %s. No booker set: no booker credit.",
		slashDate(gameDate))
}

func slashDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
}

// Payment is a signed financial transaction against one player. Positive
// amounts credit the player (reduce what they owe); negative amounts debit.
// Payments are immutable once written: corrections are new compensating
// payments, never in-place updates.
type Payment struct {
	Player string
	Type   string
	Amount money.Money
	Date   time.Time
}
