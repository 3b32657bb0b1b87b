package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// titleCaser normalizes player names on edit so "mark d" and "Mark D"
// converge on one spelling.
var titleCaser = cases.Title(language.English)

// PlayerService manages team membership. Players are never deleted: they
// retire and keep their history and balance.
type PlayerService struct {
	store storage.Store
}

// NewPlayerService creates a PlayerService with the given storage backend.
func NewPlayerService(store storage.Store) *PlayerService {
	return &PlayerService{store: store}
}

// Add registers a new player with a zeroed summary row.
func (s *PlayerService) Add(ctx context.Context, player models.Player) (string, error) {
	_, err := s.store.GetPlayer(ctx, player.Name)
	if err == nil {
		return "Player " + player.Name + " already exists!", fmt.Errorf("add player: %q exists", player.Name)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("add player: %w", err)
	}

	if err := s.store.InsertPlayer(ctx, player); err != nil {
		return "", fmt.Errorf("add player: %w", err)
	}
	if err := s.store.InsertSummary(ctx, models.NewPlayerSummary(player.Name)); err != nil {
		return "", fmt.Errorf("add player: summary row: %w", err)
	}

	message := "Player " + player.Name + " added to System!"
	slog.Info(message)
	return message, nil
}

// Edit updates a player's details. A name change cascades through every
// game's attendance and guest records, payments, adjustments and the
// summary, so no history is orphaned. New names are title-cased.
func (s *PlayerService) Edit(ctx context.Context, oldName string, player models.Player) (string, error) {
	player.Name = titleCaser.String(player.Name)

	message := "Updated player " + player.Name + " details"
	if oldName != player.Name {
		if err := s.store.RenamePlayer(ctx, oldName, player.Name); err != nil {
			return "", fmt.Errorf("edit player: rename: %w", err)
		}
		message = "Updated CFFA database from " + oldName + " to " + player.Name + "!"
	}

	if err := s.store.UpdatePlayerDetails(ctx, player.Name, player.Retiree, player.Comment); err != nil {
		return "", fmt.Errorf("edit player: %w", err)
	}

	slog.Info(message)
	return message, nil
}

// Retire marks a player as no longer playing.
func (s *PlayerService) Retire(ctx context.Context, name string) (string, error) {
	if err := s.setRetiree(ctx, name, true); err != nil {
		message := "Could not retire player " + name
		slog.Info(message)
		return message, err
	}
	message := "Retired player " + name
	slog.Info(message)
	return message, nil
}

// Reactivate clears a player's retired flag.
func (s *PlayerService) Reactivate(ctx context.Context, name string) (string, error) {
	if err := s.setRetiree(ctx, name, false); err != nil {
		message := "Could not reactivate player " + name
		slog.Info(message)
		return message, err
	}
	message := "Reactivated player " + name
	slog.Info(message)
	return message, nil
}

func (s *PlayerService) setRetiree(ctx context.Context, name string, retiree bool) error {
	player, err := s.store.GetPlayer(ctx, name)
	if err != nil {
		return err
	}
	return s.store.UpdatePlayerDetails(ctx, player.Name, retiree, player.Comment)
}

// All returns every player.
func (s *PlayerService) All(ctx context.Context) ([]models.Player, error) {
	return s.store.ListPlayers(ctx)
}
