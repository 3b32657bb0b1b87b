package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/calculator"
	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// SummaryService owns the derived per-player aggregates. The summary
// collection is never patched incrementally by game mutations; Rebuild
// recomputes every row from source records and swaps the collection
// wholesale.
type SummaryService struct {
	store storage.Store

	// activeWindow bounds who counts as an active player.
	activeWindow time.Duration
}

// NewSummaryService creates a SummaryService with the given storage backend
// and active-player window.
func NewSummaryService(store storage.Store, activeWindow time.Duration) *SummaryService {
	return &SummaryService{store: store, activeWindow: activeWindow}
}

// Rebuild recomputes all player summaries from games, payments and
// adjustments. It is idempotent and safe to re-run after any failure.
func (s *SummaryService) Rebuild(ctx context.Context) error {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return fmt.Errorf("summary rebuild: %w", err)
	}
	games, err := s.store.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("summary rebuild: %w", err)
	}
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return fmt.Errorf("summary rebuild: %w", err)
	}
	adjustments, err := s.store.ListAdjustments(ctx)
	if err != nil {
		return fmt.Errorf("summary rebuild: %w", err)
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}

	summaries := calculator.BuildSummaries(names, games, payments, adjustments)
	if err := s.store.ReplaceSummaries(ctx, summaries); err != nil {
		return fmt.Errorf("summary rebuild: %w", err)
	}

	summaryRebuilds.Inc()
	slog.Info("Summaries rebuilt", "players", len(names), "games", len(games))
	return nil
}

// ForPlayer returns the stored summary for a player, or a zeroed summary
// when no row exists yet.
func (s *SummaryService) ForPlayer(ctx context.Context, name string) (*models.PlayerSummary, error) {
	sum, err := s.store.GetSummary(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		zero := models.NewPlayerSummary(name)
		return &zero, nil
	}
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// All returns every summary row.
func (s *SummaryService) All(ctx context.Context) ([]models.PlayerSummary, error) {
	return s.store.ListSummaries(ctx)
}

// Active returns summaries for players who played within the active window.
func (s *SummaryService) Active(ctx context.Context) ([]models.PlayerSummary, error) {
	return s.store.SummariesPlayedSince(ctx, time.Now().UTC().Add(-s.activeWindow))
}

// Inactive returns summaries for players whose last game is older than the
// active window, including those who never played.
func (s *SummaryService) Inactive(ctx context.Context) ([]models.PlayerSummary, error) {
	return s.store.SummariesNotPlayedSince(ctx, time.Now().UTC().Add(-s.activeWindow))
}
