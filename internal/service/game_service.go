package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/calculator"
	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/money"
	"github.com/GreyPaperclip/cffadb/internal/names"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// GameService implements the game lifecycle: create, edit and delete, each
// with its financial side effects. Every mutation finishes with a full
// summary rebuild, so the aggregates never drift from the source records.
type GameService struct {
	store     storage.Store
	summaries *SummaryService

	// recentWindow bounds the recent-games view.
	recentWindow time.Duration
}

// NewGameService creates a GameService with the given storage backend.
func NewGameService(store storage.Store, summaries *SummaryService, recentWindow time.Duration) *GameService {
	return &GameService{store: store, summaries: summaries, recentWindow: recentWindow}
}

func slashDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
}

// ensurePlayers creates a player record and zeroed summary row for every
// name on the game that is not yet known.
func (s *GameService) ensurePlayers(ctx context.Context, game *models.Game, comment string) error {
	seen := map[string]bool{}
	candidates := make([]string, 0, len(game.Attendance)+len(game.Guests)+1)
	for name := range game.Attendance {
		candidates = append(candidates, name)
	}
	for name := range game.Guests {
		candidates = append(candidates, name)
	}
	if game.Booker != "" {
		candidates = append(candidates, game.Booker)
	}

	for _, name := range candidates {
		key := names.Key(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		_, err := s.store.GetPlayer(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if err := s.store.InsertPlayer(ctx, models.Player{Name: name, Comment: comment}); err != nil {
			return err
		}
		if err := s.store.InsertSummary(ctx, models.NewPlayerSummary(name)); err != nil {
			return err
		}
		slog.Info("Auto-created player from game", "player", name)
	}
	return nil
}

// Create validates and stores a new game, credits the booker with the pitch
// cost, and rebuilds the summaries.
func (s *GameService) Create(ctx context.Context, game *models.Game) (string, error) {
	if _, err := calculator.CostPerUnit(game.Cost, game.TotalUnits()); err != nil {
		return "", err
	}

	if err := s.ensurePlayers(ctx, game, "Created from a New Game"); err != nil {
		return "", fmt.Errorf("create game: %w", err)
	}

	game.Provenance = models.ProvenanceSubmitted
	game.Timestamp = time.Now().UTC()
	if err := s.store.InsertGame(ctx, game); err != nil {
		return "", fmt.Errorf("create game: %w", err)
	}

	if game.Booker != "" {
		credit := models.Payment{
			Player: game.Booker,
			Type:   models.PaymentTypeBookingCredit,
			Amount: game.Cost,
			Date:   game.Date,
		}
		if err := s.store.InsertPayment(ctx, credit); err != nil {
			return "", fmt.Errorf("create game: booking credit: %w", err)
		}
		slog.Info("Booking credit recorded", "booker", game.Booker, "amount", game.Cost.Display())
	}

	if err := s.summaries.Rebuild(ctx); err != nil {
		return "", err
	}

	gamesCreated.Inc()
	slog.Info("Game created", "game_id", game.ID, "date", game.Date, "cost", game.Cost.Display())
	return "Game " + slashDate(game.Date) + " added and transactions adjusted.", nil
}

// Edit replaces the stored game with the edited content under the same ID.
// When the booker or cost changed, two compensating payments rebalance the
// booking credit: the original credit is reversed against the original
// booker and a fresh credit is issued to the new booker. A full summary
// rebuild follows either way.
func (s *GameService) Edit(ctx context.Context, id string, edited *models.Game) (string, error) {
	original, err := s.store.GetGame(ctx, id)
	if err != nil {
		return "", fmt.Errorf("edit game: %w", err)
	}

	if _, err := calculator.CostPerUnit(edited.Cost, edited.TotalUnits()); err != nil {
		return "", err
	}

	if err := s.ensurePlayers(ctx, edited, "Created from an Edited Game"); err != nil {
		return "", fmt.Errorf("edit game: %w", err)
	}

	edited.ID = id
	edited.Provenance = models.ProvenanceEdited
	edited.Timestamp = time.Now().UTC()
	if err := s.store.ReplaceGame(ctx, edited); err != nil {
		return "", fmt.Errorf("edit game: %w", err)
	}

	if original.Booker != edited.Booker || !original.Cost.Equal(edited.Cost) {
		now := time.Now().UTC()
		remove := models.Payment{
			Player: original.Booker,
			Type:   models.EditRemoveCreditType(edited.Date),
			Amount: original.Cost.Neg(),
			Date:   now,
		}
		add := models.Payment{
			Player: edited.Booker,
			Type:   models.EditAddCreditType(edited.Date),
			Amount: edited.Cost,
			Date:   now,
		}
		if err := s.store.InsertPayment(ctx, remove); err != nil {
			return "", fmt.Errorf("edit game: compensation: %w", err)
		}
		if err := s.store.InsertPayment(ctx, add); err != nil {
			return "", fmt.Errorf("edit game: compensation: %w", err)
		}
		slog.Info("Booking credit rebalanced",
			"original_booker", original.Booker,
			"new_booker", edited.Booker,
			"original_cost", original.Cost.Display(),
			"new_cost", edited.Cost.Display(),
		)
	}

	if err := s.summaries.Rebuild(ctx); err != nil {
		return "", err
	}

	gamesEdited.Inc()
	slog.Info("Game edited", "game_id", id, "date", edited.Date)
	return "Game " + slashDate(edited.Date) + " updated and transactions adjusted.", nil
}

// Delete removes a game, reverses the booker's credit with a compensating
// payment, and rebuilds the summaries. A game without a booker gets a
// zero-amount marker payment instead, flagged for manual review.
func (s *GameService) Delete(ctx context.Context, id string) (string, error) {
	game, err := s.store.GetGame(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete game: %w", err)
	}

	var message string
	compensation := models.Payment{
		Player: game.Booker,
		Date:   time.Now().UTC(),
	}
	if game.Booker != "" {
		compensation.Type = models.DeletionCreditType(game.Date)
		compensation.Amount = game.Cost.Neg()
		message = "Game " + slashDate(game.Date) + " deleted and transactions adjusted."
	} else {
		compensation.Type = models.DeletionNoBookerType(game.Date)
		compensation.Amount = money.Zero()
		message = "Warning: Game had no booker - will need manual review of past transactions to remove booker credit"
		slog.Warn("Deleted game had no booker", "game_id", id, "date", game.Date)
	}
	if err := s.store.InsertPayment(ctx, compensation); err != nil {
		return "", fmt.Errorf("delete game: compensation: %w", err)
	}

	if err := s.store.DeleteGame(ctx, id); err != nil {
		return "", fmt.Errorf("delete game: %w", err)
	}

	if err := s.summaries.Rebuild(ctx); err != nil {
		return "", err
	}

	gamesDeleted.Inc()
	slog.Info("Game deleted", "game_id", id, "date", game.Date)
	return message, nil
}

// Get returns one game by ID.
func (s *GameService) Get(ctx context.Context, id string) (*models.Game, error) {
	return s.store.GetGame(ctx, id)
}

// All returns every game, most recent first.
func (s *GameService) All(ctx context.Context) ([]models.Game, error) {
	return s.store.ListGames(ctx)
}

// Recent returns games within the recent-games window, most recent first.
func (s *GameService) Recent(ctx context.Context) ([]models.Game, error) {
	return s.store.GamesSince(ctx, time.Now().UTC().Add(-s.recentWindow))
}

// ForPlayer returns the games a player attended.
func (s *GameService) ForPlayer(ctx context.Context, name string) ([]models.Game, error) {
	return s.store.GamesForPlayer(ctx, name)
}

// Last returns the most recent game. When no games exist it returns a
// placeholder with the epoch sentinel date and zero cost, so callers always
// have defaults to prefill forms with.
func (s *GameService) Last(ctx context.Context) (*models.Game, error) {
	game, err := s.store.LastGame(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.Game{Date: models.NeverPlayed, Cost: money.Zero()}, nil
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}
