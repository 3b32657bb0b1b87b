package calculator

import (
	"testing"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/money"
)

func TestBuildStatementRoundTrip(t *testing.T) {
	// Adjustment +10, a 20-cost game split two ways on day 2, and a +15
	// payment on day 3. Latest first: payment (balance 15), game (balance
	// 0), adjustment (balance 10).
	adjustment := &models.Adjustment{Player: "Alice", Adjust: money.MustParse("10.00")}
	games := []models.Game{{
		ID:   "g1",
		Date: day(2),
		Cost: money.MustParse("20.00"),
		Attendance: map[string]string{
			"Alice": models.ResultDraw,
			"Bob":   models.ResultDraw,
		},
	}}
	payments := []models.Payment{
		{Player: "Alice", Type: "Transfer", Amount: money.MustParse("15.00"), Date: day(3)},
	}

	ledger := BuildStatement(adjustment, games, payments)
	if len(ledger) != 3 {
		t.Fatalf("got %d entries, want 3", len(ledger))
	}

	latest := ledger[0]
	if latest.Description != "Transfer" || latest.Credit == nil {
		t.Fatalf("latest entry = %+v, want Transfer credit", latest)
	}
	if latest.Credit.Display() != "15.00" || latest.Balance.Display() != "15.00" {
		t.Errorf("payment entry credit %s balance %s, want 15.00 / 15.00",
			latest.Credit.Display(), latest.Balance.Display())
	}

	game := ledger[1]
	if game.Description != "Game" || game.Debit == nil {
		t.Fatalf("middle entry = %+v, want Game debit", game)
	}
	if game.Debit.Display() != "10.00" || game.Balance.Display() != "0.00" {
		t.Errorf("game entry debit %s balance %s, want 10.00 / 0.00",
			game.Debit.Display(), game.Balance.Display())
	}

	opening := ledger[2]
	if opening.Description != "Initial balance adjustment" || opening.Credit == nil {
		t.Fatalf("oldest entry = %+v, want adjustment credit", opening)
	}
	if opening.Credit.Display() != "10.00" || opening.Balance.Display() != "10.00" {
		t.Errorf("adjustment entry credit %s balance %s, want 10.00 / 10.00",
			opening.Credit.Display(), opening.Balance.Display())
	}
}

func TestBuildStatementNegativeAdjustmentIsDebit(t *testing.T) {
	ledger := BuildStatement(&models.Adjustment{Player: "Bob", Adjust: money.MustParse("-7.50")}, nil, nil)
	if len(ledger) != 1 {
		t.Fatalf("got %d entries, want 1", len(ledger))
	}
	entry := ledger[0]
	if entry.Debit == nil || entry.Credit != nil {
		t.Fatalf("entry = %+v, want debit only", entry)
	}
	if entry.Debit.Display() != "7.50" || entry.Balance.Display() != "-7.50" {
		t.Errorf("debit %s balance %s, want 7.50 / -7.50",
			entry.Debit.Display(), entry.Balance.Display())
	}
}

func TestBuildStatementZeroAdjustmentIsDebit(t *testing.T) {
	// Only a strictly positive adjustment is a credit; zero lands on the
	// debit side like the historical statements.
	ledger := BuildStatement(&models.Adjustment{Player: "Bob", Adjust: money.Zero()}, nil, nil)
	if len(ledger) != 1 {
		t.Fatalf("got %d entries, want 1", len(ledger))
	}
	entry := ledger[0]
	if entry.Debit == nil || entry.Credit != nil {
		t.Fatalf("entry = %+v, want debit only", entry)
	}
	if entry.Debit.Display() != "0.00" || !entry.Balance.IsZero() {
		t.Errorf("debit %s balance %s, want 0.00 / 0.00",
			entry.Debit.Display(), entry.Balance.Display())
	}
}

func TestBuildStatementNegativePaymentIsDebit(t *testing.T) {
	payments := []models.Payment{
		{Player: "Bob", Type: "Game Edit reversal", Amount: money.MustParse("-20.00"), Date: day(4)},
	}
	ledger := BuildStatement(nil, nil, payments)
	if len(ledger) != 1 || ledger[0].Debit == nil {
		t.Fatalf("ledger = %+v, want a single debit entry", ledger)
	}
	if ledger[0].Debit.Display() != "20.00" {
		t.Errorf("debit = %s, want 20.00", ledger[0].Debit.Display())
	}
}

func TestBuildStatementEmptyGetsPlaceholder(t *testing.T) {
	ledger := BuildStatement(nil, nil, nil)
	if len(ledger) != 1 {
		t.Fatalf("got %d entries, want 1", len(ledger))
	}
	entry := ledger[0]
	if entry.Description != "Initial Balance" {
		t.Errorf("description = %q, want Initial Balance", entry.Description)
	}
	if entry.Credit != nil || entry.Debit != nil || !entry.Balance.IsZero() {
		t.Errorf("placeholder entry not zeroed: %+v", entry)
	}
}

func TestBuildStatementStableTieBreak(t *testing.T) {
	// Entries on the same date keep construction order: games before
	// payments.
	date := time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)
	games := []models.Game{{
		ID:         "g1",
		Date:       date,
		Cost:       money.MustParse("10.00"),
		Attendance: map[string]string{"Alice": models.ResultDraw},
	}}
	payments := []models.Payment{
		{Player: "Alice", Type: "Transfer", Amount: money.MustParse("10.00"), Date: date},
	}

	ledger := BuildStatement(nil, games, payments)
	if len(ledger) != 2 {
		t.Fatalf("got %d entries, want 2", len(ledger))
	}
	// Reversed output: payment first, game second.
	if ledger[0].Description != "Transfer" || ledger[1].Description != "Game" {
		t.Errorf("order = [%s, %s], want [Transfer, Game]",
			ledger[0].Description, ledger[1].Description)
	}
	if ledger[1].Balance.Display() != "-10.00" || ledger[0].Balance.Display() != "0.00" {
		t.Errorf("running balances = %s then %s, want -10.00 then 0.00",
			ledger[1].Balance.Display(), ledger[0].Balance.Display())
	}
}
