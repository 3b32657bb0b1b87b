package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/money"
	"github.com/GreyPaperclip/cffadb/internal/storage"
	"github.com/GreyPaperclip/cffadb/internal/storage/sqlite"
)

type testEnv struct {
	store    storage.Store
	games    *GameService
	players  *PlayerService
	payments *PaymentService
	summary  *SummaryService
	ledger   *LedgerService
	team     *TeamService
}

// setupTestEnv wires every service over a temp sqlite database.
func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	summary := NewSummaryService(store, 730*24*time.Hour)
	env := &testEnv{
		store:    store,
		games:    NewGameService(store, summary, 730*24*time.Hour),
		players:  NewPlayerService(store),
		payments: NewPaymentService(store, 180*24*time.Hour),
		summary:  summary,
		ledger:   NewLedgerService(store),
		team:     NewTeamService(store),
	}
	cleanup := func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return env, cleanup
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func mustSummary(t *testing.T, env *testEnv, name string) *models.PlayerSummary {
	t.Helper()
	sum, err := env.summary.ForPlayer(context.Background(), name)
	if err != nil {
		t.Fatalf("ForPlayer(%s): %v", name, err)
	}
	return sum
}

func TestCreateGameCreditsBooker(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	// Booker attends: 30 cost over 3 attendees means a 10 share, so the
	// booker nets +20.
	game := &models.Game{
		Date:   date(2024, 3, 1),
		Cost:   money.MustParse("30.00"),
		Booker: "Alice",
		Attendance: map[string]string{
			"Alice": models.ResultDraw,
			"Bob":   models.ResultDraw,
			"Carl":  models.ResultDraw,
		},
	}
	msg, err := env.games.Create(ctx, game)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.Contains(msg, "2024/3/1") {
		t.Errorf("message = %q", msg)
	}

	alice := mustSummary(t, env, "Alice")
	if !alice.Balance.Equal(money.MustParse("20.00")) {
		t.Errorf("booker balance = %s, want 20.00", alice.Balance)
	}
	if !alice.MoniesPaid.Equal(money.MustParse("30.00")) {
		t.Errorf("booker moniesPaid = %s, want 30.00", alice.MoniesPaid)
	}
	bob := mustSummary(t, env, "Bob")
	if !bob.Balance.Equal(money.MustParse("-10.00")) {
		t.Errorf("attendee balance = %s, want -10.00", bob.Balance)
	}

	// All three players were auto-created.
	players, err := env.players.All(ctx)
	if err != nil {
		t.Fatalf("All players: %v", err)
	}
	if len(players) != 3 {
		t.Errorf("auto-created %d players, want 3", len(players))
	}

	payments, err := env.payments.ForPlayer(ctx, "Alice")
	if err != nil {
		t.Fatalf("ForPlayer payments: %v", err)
	}
	if len(payments) != 1 || payments[0].Type != models.PaymentTypeBookingCredit {
		t.Errorf("booking credit missing: %+v", payments)
	}
	if !payments[0].Date.Equal(game.Date) {
		t.Errorf("booking credit dated %s, want game date", payments[0].Date)
	}
}

func TestCreateGameRejectsEmptyAttendance(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	game := &models.Game{
		Date: date(2024, 3, 1),
		Cost: money.MustParse("30.00"),
	}
	if _, err := env.games.Create(context.Background(), game); err == nil {
		t.Fatal("Create accepted a game with no attendance units")
	}
	games, err := env.games.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("rejected game was stored anyway")
	}
}

func TestEditGameCostChangeAddsTwoCompensations(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	game := &models.Game{
		Date:       date(2024, 3, 1),
		Cost:       money.MustParse("20.00"),
		Booker:     "Alice",
		Attendance: map[string]string{"Alice": models.ResultDraw, "Bob": models.ResultDraw},
	}
	if _, err := env.games.Create(ctx, game); err != nil {
		t.Fatalf("Create: %v", err)
	}

	edited := &models.Game{
		Date:       game.Date,
		Cost:       money.MustParse("24.00"),
		Booker:     "Alice",
		Attendance: map[string]string{"Alice": models.ResultDraw, "Bob": models.ResultDraw},
	}
	if _, err := env.games.Edit(ctx, game.ID, edited); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	payments, err := env.payments.ForPlayer(ctx, "Alice")
	if err != nil {
		t.Fatalf("payments: %v", err)
	}
	// Booking credit plus two compensations, all against the same booker.
	if len(payments) != 3 {
		t.Fatalf("got %d payments, want 3: %+v", len(payments), payments)
	}
	var remove, add *models.Payment
	for i := range payments {
		switch payments[i].Type {
		case models.EditRemoveCreditType(edited.Date):
			remove = &payments[i]
		case models.EditAddCreditType(edited.Date):
			add = &payments[i]
		}
	}
	if remove == nil || !remove.Amount.Equal(money.MustParse("-20.00")) {
		t.Errorf("remove compensation wrong: %+v", remove)
	}
	if add == nil || !add.Amount.Equal(money.MustParse("24.00")) {
		t.Errorf("add compensation wrong: %+v", add)
	}

	// Net booker payments: 20 - 20 + 24 = 24, the new cost.
	alice := mustSummary(t, env, "Alice")
	if !alice.MoniesPaid.Equal(money.MustParse("24.00")) {
		t.Errorf("moniesPaid = %s, want 24.00", alice.MoniesPaid)
	}
	// balance = 24 paid - 12 share = 12.
	if !alice.Balance.Equal(money.MustParse("12.00")) {
		t.Errorf("balance = %s, want 12.00", alice.Balance)
	}

	got, err := env.games.Get(ctx, game.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Provenance != models.ProvenanceEdited {
		t.Errorf("provenance = %q", got.Provenance)
	}
}

func TestEditGameUnchangedFinancialsAddsNoCompensation(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	game := &models.Game{
		Date:       date(2024, 3, 1),
		Cost:       money.MustParse("20.00"),
		Booker:     "Alice",
		Attendance: map[string]string{"Alice": models.ResultDraw, "Bob": models.ResultDraw},
	}
	if _, err := env.games.Create(ctx, game); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Same booker and cost, different attendance.
	edited := &models.Game{
		Date:       game.Date,
		Cost:       game.Cost,
		Booker:     "Alice",
		Attendance: map[string]string{"Alice": models.ResultDraw, "Carl": models.ResultDraw},
	}
	if _, err := env.games.Edit(ctx, game.ID, edited); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	all, err := env.payments.All(ctx)
	if err != nil {
		t.Fatalf("All payments: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d payments, want only the booking credit: %+v", len(all), all)
	}

	// Bob no longer attends: stale marker purged, share moved to Carl.
	bob := mustSummary(t, env, "Bob")
	if !bob.Balance.IsZero() || bob.GamesAttended != 0 {
		t.Errorf("removed attendee still carries costs: %+v", bob)
	}
	carl := mustSummary(t, env, "Carl")
	if !carl.Balance.Equal(money.MustParse("-10.00")) {
		t.Errorf("new attendee balance = %s, want -10.00", carl.Balance)
	}
}

func TestDeleteGameCompensatesBooker(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	game := &models.Game{
		Date:       date(2024, 3, 1),
		Cost:       money.MustParse("20.00"),
		Booker:     "Alice",
		Attendance: map[string]string{"Alice": models.ResultDraw, "Bob": models.ResultDraw},
	}
	if _, err := env.games.Create(ctx, game); err != nil {
		t.Fatalf("Create: %v", err)
	}

	msg, err := env.games.Delete(ctx, game.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if msg != "Game 2024/3/1 deleted and transactions adjusted." {
		t.Errorf("message = %q", msg)
	}

	payments, err := env.payments.ForPlayer(ctx, "Alice")
	if err != nil {
		t.Fatalf("payments: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("got %d payments, want credit + compensation", len(payments))
	}
	comp := payments[1]
	if comp.Type != models.DeletionCreditType(game.Date) || !comp.Amount.Equal(money.MustParse("-20.00")) {
		t.Errorf("compensation wrong: %+v", comp)
	}

	// Aggregates read as if the game never happened, modulo the paired
	// credit and compensation which cancel out.
	alice := mustSummary(t, env, "Alice")
	if !alice.Balance.IsZero() || alice.GamesAttended != 0 {
		t.Errorf("summary not restored: %+v", alice)
	}
	if _, err := env.games.Get(ctx, game.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("game still present after delete: %v", err)
	}
}

func TestDeleteGameWithoutBooker(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	game := &models.Game{
		Date:       date(2024, 3, 1),
		Cost:       money.MustParse("20.00"),
		Attendance: map[string]string{"Alice": models.ResultDraw},
	}
	if _, err := env.games.Create(ctx, game); err != nil {
		t.Fatalf("Create: %v", err)
	}

	msg, err := env.games.Delete(ctx, game.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !strings.HasPrefix(msg, "Warning: Game had no booker") {
		t.Errorf("message = %q", msg)
	}

	all, err := env.payments.All(ctx)
	if err != nil {
		t.Fatalf("payments: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d payments, want one zero-amount marker", len(all))
	}
	if !all[0].Amount.IsZero() || all[0].Type != models.DeletionNoBookerType(game.Date) {
		t.Errorf("marker payment wrong: %+v", all[0])
	}
}

func TestStatementRoundTrip(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := env.players.Add(ctx, models.Player{Name: "Alice"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := env.store.ReplaceAdjustments(ctx, []models.Adjustment{
		{Player: "Alice", Adjust: money.MustParse("10.00")},
	}); err != nil {
		t.Fatalf("ReplaceAdjustments: %v", err)
	}
	game := &models.Game{
		Date:       date(2024, 2, 1),
		Cost:       money.MustParse("20.00"),
		Attendance: map[string]string{"Alice": models.ResultDraw, "Bob": models.ResultDraw},
	}
	if _, err := env.games.Create(ctx, game); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := env.payments.AddTransaction(ctx, models.Payment{
		Player: "Alice", Type: "Transfer", Amount: money.MustParse("15.00"), Date: date(2024, 2, 15),
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	entries, err := env.ledger.StatementFor(ctx, "Alice")
	if err != nil {
		t.Fatalf("StatementFor: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Latest first: payment, then game, then adjustment.
	if entries[0].Description != "Transfer" || !entries[0].Balance.Equal(money.MustParse("15.00")) {
		t.Errorf("latest entry wrong: %+v", entries[0])
	}
	if entries[1].Description != "Game" || !entries[1].Balance.Equal(money.Zero()) {
		t.Errorf("game entry wrong: %+v", entries[1])
	}
	if entries[2].Description != "Initial balance adjustment" || !entries[2].Balance.Equal(money.MustParse("10.00")) {
		t.Errorf("adjustment entry wrong: %+v", entries[2])
	}

	// The service view agrees with the stored summary invariant.
	alice := mustSummary(t, env, "Alice")
	want := alice.MoniesPaid.Sub(alice.GamesCost).Add(money.MustParse("10.00"))
	if !alice.Balance.Equal(want) {
		t.Errorf("balance invariant broken: %+v", alice)
	}
}

func TestStatementForUnknownPlayer(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	entries, err := env.ledger.StatementFor(context.Background(), "Nobody")
	if err != nil {
		t.Fatalf("StatementFor: %v", err)
	}
	if len(entries) != 1 || entries[0].Description != "Initial Balance" {
		t.Errorf("placeholder statement wrong: %+v", entries)
	}
}

func TestAddTransactionPatchesSummary(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := env.players.Add(ctx, models.Player{Name: "Alice"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	msg, err := env.payments.AddTransaction(ctx, models.Payment{
		Player: "alice", Type: "Transfer", Amount: money.MustParse("12.50"), Date: date(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if !strings.Contains(msg, "12.50") {
		t.Errorf("message = %q", msg)
	}

	alice := mustSummary(t, env, "Alice")
	if !alice.MoniesPaid.Equal(money.MustParse("12.50")) || !alice.Balance.Equal(money.MustParse("12.50")) {
		t.Errorf("summary not patched: %+v", alice)
	}
}

func TestAddTransactionUnknownPlayer(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	msg, err := env.payments.AddTransaction(context.Background(), models.Payment{
		Player: "Nobody", Type: "Transfer", Amount: money.MustParse("5.00"), Date: date(2024, 3, 1),
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !strings.Contains(msg, "does not exist in system") {
		t.Errorf("message = %q", msg)
	}
}

func TestPlayerLifecycleMessages(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	msg, err := env.players.Add(ctx, models.Player{Name: "Mark"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if msg != "Player Mark added to System!" {
		t.Errorf("message = %q", msg)
	}

	if msg, err = env.players.Add(ctx, models.Player{Name: "mark"}); err == nil {
		t.Error("duplicate add succeeded")
	} else if msg != "Player mark already exists!" {
		t.Errorf("message = %q", msg)
	}

	msg, err = env.players.Retire(ctx, "Mark")
	if err != nil || msg != "Retired player Mark" {
		t.Errorf("Retire = %q, %v", msg, err)
	}
	msg, err = env.players.Reactivate(ctx, "Mark")
	if err != nil || msg != "Reactivated player Mark" {
		t.Errorf("Reactivate = %q, %v", msg, err)
	}
	if msg, err = env.players.Retire(ctx, "Nobody"); err == nil || msg != "Could not retire player Nobody" {
		t.Errorf("Retire unknown = %q, %v", msg, err)
	}
}

func TestEditPlayerRenameCascades(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	game := &models.Game{
		Date:       date(2024, 3, 1),
		Cost:       money.MustParse("10.00"),
		Booker:     "Mark",
		Attendance: map[string]string{"Mark": models.ResultDraw},
	}
	if _, err := env.games.Create(ctx, game); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// New name is title-cased before the cascade.
	msg, err := env.players.Edit(ctx, "Mark", models.Player{Name: "marcus jones"})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if msg != "Updated CFFA database from Mark to Marcus Jones!" {
		t.Errorf("message = %q", msg)
	}

	games, err := env.games.ForPlayer(ctx, "Marcus Jones")
	if err != nil {
		t.Fatalf("ForPlayer: %v", err)
	}
	if len(games) != 1 || games[0].Booker != "Marcus Jones" {
		t.Errorf("rename did not cascade into games: %+v", games)
	}
	payments, err := env.payments.ForPlayer(ctx, "Marcus Jones")
	if err != nil {
		t.Fatalf("payments: %v", err)
	}
	if len(payments) != 1 {
		t.Errorf("rename did not cascade into payments")
	}
}

func TestSummaryActiveInactiveWindows(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	recent := &models.Game{
		Date:       time.Now().UTC().AddDate(0, -1, 0),
		Cost:       money.MustParse("10.00"),
		Attendance: map[string]string{"Alice": models.ResultDraw},
	}
	old := &models.Game{
		Date:       time.Now().UTC().AddDate(-3, 0, 0),
		Cost:       money.MustParse("10.00"),
		Attendance: map[string]string{"Bob": models.ResultDraw},
	}
	if _, err := env.games.Create(ctx, recent); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := env.games.Create(ctx, old); err != nil {
		t.Fatalf("Create: %v", err)
	}

	active, err := env.summary.Active(ctx)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if len(active) != 1 || active[0].PlayerName != "Alice" {
		t.Errorf("active = %+v, want only Alice", active)
	}
	inactive, err := env.summary.Inactive(ctx)
	if err != nil {
		t.Fatalf("Inactive: %v", err)
	}
	if len(inactive) != 1 || inactive[0].PlayerName != "Bob" {
		t.Errorf("inactive = %+v, want only Bob", inactive)
	}
}

func TestRebuildIdempotent(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	game := &models.Game{
		Date:       date(2024, 3, 1),
		Cost:       money.MustParse("25.00"),
		Booker:     "Alice",
		Attendance: map[string]string{"Alice": models.ResultDraw, "Bob": models.ResultDraw},
		Guests:     map[string]int{"Bob": 3},
	}
	if _, err := env.games.Create(ctx, game); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := env.summary.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if err := env.summary.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	second, err := env.summary.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("row count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Balance.Equal(second[i].Balance) || !first[i].GamesCost.Equal(second[i].GamesCost) {
			t.Errorf("row %d drifted: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLastGameDefaults(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	last, err := env.games.Last(ctx)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if !last.Date.Equal(models.NeverPlayed) || !last.Cost.IsZero() {
		t.Errorf("empty-store defaults wrong: %+v", last)
	}

	game := &models.Game{
		Date:       date(2024, 3, 1),
		Cost:       money.MustParse("10.00"),
		Attendance: map[string]string{"Alice": models.ResultDraw},
	}
	if _, err := env.games.Create(ctx, game); err != nil {
		t.Fatalf("Create: %v", err)
	}
	last, err = env.games.Last(ctx)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if !last.Date.Equal(game.Date) {
		t.Errorf("last game date = %s", last.Date)
	}
}

func TestTeamRename(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := env.team.Rename(ctx, "Crawley FC"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	msg, err := env.team.Rename(ctx, "Crawley Town FC")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if msg != "Successfully updated teamName from Crawley FC to Crawley Town FC" {
		t.Errorf("message = %q", msg)
	}
	name, err := env.team.Name(ctx)
	if err != nil || name != "Crawley Town FC" {
		t.Errorf("Name = %q, %v", name, err)
	}
}
