package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// TeamService manages the per-tenant team settings.
type TeamService struct {
	store storage.Store
}

// NewTeamService creates a TeamService with the given storage backend.
func NewTeamService(store storage.Store) *TeamService {
	return &TeamService{store: store}
}

// Name returns the configured team name, empty when not yet set.
func (s *TeamService) Name(ctx context.Context) (string, error) {
	name, err := s.store.TeamName(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	return name, err
}

// Rename updates the team name.
func (s *TeamService) Rename(ctx context.Context, newName string) (string, error) {
	current, err := s.Name(ctx)
	if err != nil {
		return "", fmt.Errorf("rename team: %w", err)
	}
	if err := s.store.SetTeamName(ctx, newName); err != nil {
		return "", fmt.Errorf("rename team: %w", err)
	}
	message := "Successfully updated teamName from " + current + " to " + newName
	slog.Info(message)
	return message, nil
}
