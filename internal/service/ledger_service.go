package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/GreyPaperclip/cffadb/internal/calculator"
	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// LedgerService builds per-player statements on demand from source records.
// Nothing is persisted: the ledger is a view.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// StatementFor returns the player's statement, latest entry first. An
// unknown or inactive player gets the placeholder-only statement.
func (s *LedgerService) StatementFor(ctx context.Context, name string) ([]models.LedgerEntry, error) {
	adjustment, err := s.store.AdjustmentForPlayer(ctx, name)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("statement: %w", err)
	}

	games, err := s.store.GamesForPlayer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("statement: %w", err)
	}
	payments, err := s.store.PaymentsForPlayer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("statement: %w", err)
	}

	return calculator.BuildStatement(adjustment, games, payments), nil
}
