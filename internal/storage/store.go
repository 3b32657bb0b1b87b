// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/models"
)

// ErrNotFound is returned when a game, player or adjustment lookup matches
// nothing. Callers with a sensible default (a new player's empty ledger, a
// zero opening adjustment) treat it as that default rather than a failure.
var ErrNotFound = errors.New("storage: not found")

// Store defines the record-store operations the services need. The
// abstraction allows swapping backends (MongoDB for shared deployments,
// sqlite for embedded use and tests) without changing the service layer.
//
// Player-name matching is case- and accent-insensitive in every
// implementation, mirroring the store collation the data was written with.
//
// No cross-collection transactions exist: Replace* operations are
// drop-then-bulk-insert and a reader racing one may observe a transiently
// empty collection. Callers treat them as idempotent and re-runnable.
type Store interface {
	// Players

	InsertPlayer(ctx context.Context, player models.Player) error
	GetPlayer(ctx context.Context, name string) (*models.Player, error)
	// UpdatePlayerDetails sets the retiree flag and comment for a player.
	UpdatePlayerDetails(ctx context.Context, name string, retiree bool, comment string) error
	// RenamePlayer rewrites a player's name across players, summaries,
	// payments and every game's attendance and guest records.
	RenamePlayer(ctx context.Context, oldName, newName string) error
	ListPlayers(ctx context.Context) ([]models.Player, error)
	ReplacePlayers(ctx context.Context, players []models.Player) error

	// Games

	InsertGame(ctx context.Context, game *models.Game) error
	GetGame(ctx context.Context, id string) (*models.Game, error)
	// ReplaceGame removes the stored document and inserts the new content
	// under the same ID, so no stale per-player data can survive an edit.
	ReplaceGame(ctx context.Context, game *models.Game) error
	DeleteGame(ctx context.Context, id string) error
	// ListGames returns every game, most recent first.
	ListGames(ctx context.Context) ([]models.Game, error)
	GamesForPlayer(ctx context.Context, name string) ([]models.Game, error)
	GamesSince(ctx context.Context, cutoff time.Time) ([]models.Game, error)
	// LastGame returns the most recent game, or ErrNotFound when no games
	// exist.
	LastGame(ctx context.Context) (*models.Game, error)
	ReplaceGames(ctx context.Context, games []models.Game) error

	// Payments

	InsertPayment(ctx context.Context, payment models.Payment) error
	PaymentsForPlayer(ctx context.Context, name string) ([]models.Payment, error)
	// ListPayments returns every payment, most recent first.
	ListPayments(ctx context.Context) ([]models.Payment, error)
	PaymentsSince(ctx context.Context, cutoff time.Time) ([]models.Payment, error)
	ReplacePayments(ctx context.Context, payments []models.Payment) error

	// Adjustments

	// AdjustmentForPlayer returns ErrNotFound when the player has no
	// opening adjustment.
	AdjustmentForPlayer(ctx context.Context, name string) (*models.Adjustment, error)
	ListAdjustments(ctx context.Context) ([]models.Adjustment, error)
	ReplaceAdjustments(ctx context.Context, adjustments []models.Adjustment) error

	// Summaries

	GetSummary(ctx context.Context, name string) (*models.PlayerSummary, error)
	ListSummaries(ctx context.Context) ([]models.PlayerSummary, error)
	// SummariesPlayedSince returns summary rows whose lastPlayed is on or
	// after the cutoff; SummariesNotPlayedSince returns the complement.
	SummariesPlayedSince(ctx context.Context, cutoff time.Time) ([]models.PlayerSummary, error)
	SummariesNotPlayedSince(ctx context.Context, cutoff time.Time) ([]models.PlayerSummary, error)
	InsertSummary(ctx context.Context, summary models.PlayerSummary) error
	UpdateSummary(ctx context.Context, summary models.PlayerSummary) error
	ReplaceSummaries(ctx context.Context, summaries []models.PlayerSummary) error

	// Settings

	TeamName(ctx context.Context) (string, error)
	SetTeamName(ctx context.Context, name string) error

	// Close releases any resources held by the store.
	Close() error
}
