// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface. It is the embedded backend used by tests and
// single-user deployments; shared deployments use the mongo backend.
//
// Name columns collate NOCASE in SQL; reads that match on a player name
// additionally compare with the names package so that accented variants
// match the way the document store's collation does. The record sets are
// team-sized, so scan-and-filter is fine.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/money"
	"github.com/GreyPaperclip/cffadb/internal/names"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func timeToDB(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func timeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad stored time %q: %w", s, err)
	}
	return t, nil
}

func moneyFromDB(s string) (money.Money, error) {
	return money.FromString(s)
}

// Players

// InsertPlayer adds a player row. The name must be unique (NOCASE).
func (s *SQLiteStore) InsertPlayer(ctx context.Context, player models.Player) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO players (name, retiree, comment) VALUES (?, ?, ?)",
		player.Name, boolToInt(player.Retiree), player.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

// GetPlayer retrieves a player by name.
func (s *SQLiteStore) GetPlayer(ctx context.Context, name string) (*models.Player, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range players {
		if names.Equal(players[i].Name, name) {
			return &players[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

// UpdatePlayerDetails sets the retiree flag and comment for a player.
// The name is resolved to its stored spelling first, so accent variants
// match the same rows the read paths would.
func (s *SQLiteStore) UpdatePlayerDetails(ctx context.Context, name string, retiree bool, comment string) error {
	player, err := s.GetPlayer(ctx, name)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE players SET retiree = ?, comment = ? WHERE name = ?",
		boolToInt(retiree), comment, player.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RenamePlayer rewrites a player's name across every table that carries it.
// oldName is resolved to its stored spelling first, so accent variants
// match the same rows the read paths would.
func (s *SQLiteStore) RenamePlayer(ctx context.Context, oldName, newName string) error {
	if player, err := s.GetPlayer(ctx, oldName); err == nil {
		oldName = player.Name
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []struct {
		query string
	}{
		{"UPDATE players SET name = ? WHERE name = ?"},
		{"UPDATE summaries SET player = ? WHERE player = ?"},
		{"UPDATE payments SET player = ? WHERE player = ?"},
		{"UPDATE adjustments SET player = ? WHERE player = ?"},
		{"UPDATE game_attendance SET player = ? WHERE player = ?"},
		{"UPDATE game_guests SET player = ? WHERE player = ?"},
		{"UPDATE games SET booker = ? WHERE booker = ? COLLATE NOCASE"},
	} {
		if _, err := tx.ExecContext(ctx, stmt.query, newName, oldName); err != nil {
			return fmt.Errorf("failed to rename player: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rename: %w", err)
	}
	return nil
}

// ListPlayers returns every player ordered by name.
func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, retiree, comment FROM players ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		var retiree int
		if err := rows.Scan(&p.Name, &retiree, &p.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		p.Retiree = retiree != 0
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}

// ReplacePlayers drops and bulk-inserts the players table.
func (s *SQLiteStore) ReplacePlayers(ctx context.Context, players []models.Player) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM players"); err != nil {
		return fmt.Errorf("failed to clear players: %w", err)
	}
	for _, p := range players {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO players (name, retiree, comment) VALUES (?, ?, ?)",
			p.Name, boolToInt(p.Retiree), p.Comment,
		); err != nil {
			return fmt.Errorf("failed to insert player: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit players: %w", err)
	}
	return nil
}

// Settings

// TeamName returns the configured team name, or ErrNotFound before setup.
func (s *SQLiteStore) TeamName(ctx context.Context) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, "SELECT team_name FROM settings WHERE id = 1").Scan(&name)
	if err == sql.ErrNoRows {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get team name: %w", err)
	}
	return name, nil
}

// SetTeamName creates or updates the single settings row.
func (s *SQLiteStore) SetTeamName(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (id, team_name) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET team_name = excluded.team_name`,
		name,
	)
	if err != nil {
		return fmt.Errorf("failed to set team name: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
