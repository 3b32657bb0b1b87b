package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// InsertGame persists a new game with its attendance and guest rows.
// A missing ID or timestamp is filled in.
func (s *SQLiteStore) InsertGame(ctx context.Context, game *models.Game) error {
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if game.Timestamp.IsZero() {
		game.Timestamp = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertGameTx(ctx, tx, game); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit game: %w", err)
	}
	return nil
}

func insertGameTx(ctx context.Context, tx *sql.Tx, game *models.Game) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO games (id, game_date, cost, booker, provenance, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		game.ID, timeToDB(game.Date), game.Cost.String(), game.Booker, game.Provenance, timeToDB(game.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	for player, result := range game.Attendance {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO game_attendance (game_id, player, result) VALUES (?, ?, ?)",
			game.ID, player, result,
		); err != nil {
			return fmt.Errorf("failed to insert attendance: %w", err)
		}
	}
	for player, guests := range game.Guests {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO game_guests (game_id, player, guests) VALUES (?, ?, ?)",
			game.ID, player, guests,
		); err != nil {
			return fmt.Errorf("failed to insert guests: %w", err)
		}
	}
	return nil
}

// GetGame retrieves a game by ID including attendance and guest data.
func (s *SQLiteStore) GetGame(ctx context.Context, id string) (*models.Game, error) {
	game := &models.Game{ID: id}
	var gameDate, cost, createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT game_date, cost, booker, provenance, created_at FROM games WHERE id = ?",
		id,
	).Scan(&gameDate, &cost, &game.Booker, &game.Provenance, &createdAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.Date, err = timeFromDB(gameDate); err != nil {
		return nil, err
	}
	if game.Timestamp, err = timeFromDB(createdAt); err != nil {
		return nil, err
	}
	if game.Cost, err = moneyFromDB(cost); err != nil {
		return nil, err
	}

	if err := s.loadGameMaps(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *SQLiteStore) loadGameMaps(ctx context.Context, game *models.Game) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player, result FROM game_attendance WHERE game_id = ?", game.ID)
	if err != nil {
		return fmt.Errorf("failed to get attendance: %w", err)
	}
	defer rows.Close()

	game.Attendance = make(map[string]string)
	for rows.Next() {
		var player, result string
		if err := rows.Scan(&player, &result); err != nil {
			return fmt.Errorf("failed to scan attendance: %w", err)
		}
		game.Attendance[player] = result
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate attendance: %w", err)
	}

	guestRows, err := s.db.QueryContext(ctx,
		"SELECT player, guests FROM game_guests WHERE game_id = ?", game.ID)
	if err != nil {
		return fmt.Errorf("failed to get guests: %w", err)
	}
	defer guestRows.Close()

	game.Guests = make(map[string]int)
	for guestRows.Next() {
		var player string
		var guests int
		if err := guestRows.Scan(&player, &guests); err != nil {
			return fmt.Errorf("failed to scan guests: %w", err)
		}
		game.Guests[player] = guests
	}
	return guestRows.Err()
}

// ReplaceGame deletes the stored document and inserts the new content under
// the same ID. Attendance and guest rows cascade with the delete, so no
// stale per-player data survives an edit.
func (s *SQLiteStore) ReplaceGame(ctx context.Context, game *models.Game) error {
	if game.ID == "" {
		return fmt.Errorf("replace game: missing ID")
	}
	if game.Timestamp.IsZero() {
		game.Timestamp = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM games WHERE id = ?", game.ID)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	if err := deleteGameChildrenTx(ctx, tx, game.ID); err != nil {
		return err
	}

	if err := insertGameTx(ctx, tx, game); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit game replace: %w", err)
	}
	return nil
}

// DeleteGame removes a game and its attendance and guest rows.
func (s *SQLiteStore) DeleteGame(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	if err := deleteGameChildrenTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit game delete: %w", err)
	}
	return nil
}

// deleteGameChildrenTx removes attendance and guest rows explicitly; the
// schema declares ON DELETE CASCADE but the foreign_keys pragma is
// per-connection, so the store does not depend on it.
func deleteGameChildrenTx(ctx context.Context, tx *sql.Tx, gameID string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM game_attendance WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM game_guests WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to delete guests: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listGamesWhere(ctx context.Context, where string, args ...any) ([]models.Game, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, game_date, cost, booker, provenance, created_at FROM games "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		var gameDate, cost, createdAt string
		if err := rows.Scan(&g.ID, &gameDate, &cost, &g.Booker, &g.Provenance, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		if g.Date, err = timeFromDB(gameDate); err != nil {
			return nil, err
		}
		if g.Timestamp, err = timeFromDB(createdAt); err != nil {
			return nil, err
		}
		if g.Cost, err = moneyFromDB(cost); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	for i := range games {
		if err := s.loadGameMaps(ctx, &games[i]); err != nil {
			return nil, err
		}
	}
	return games, nil
}

// ListGames returns every game, most recent first.
func (s *SQLiteStore) ListGames(ctx context.Context) ([]models.Game, error) {
	return s.listGamesWhere(ctx, "ORDER BY game_date DESC")
}

// GamesForPlayer returns games the named player attended.
func (s *SQLiteStore) GamesForPlayer(ctx context.Context, name string) ([]models.Game, error) {
	games, err := s.listGamesWhere(ctx, "ORDER BY game_date")
	if err != nil {
		return nil, err
	}
	var attended []models.Game
	for i := range games {
		if games[i].Attended(name) {
			attended = append(attended, games[i])
		}
	}
	return attended, nil
}

// GamesSince returns games on or after the cutoff date, most recent first.
func (s *SQLiteStore) GamesSince(ctx context.Context, cutoff time.Time) ([]models.Game, error) {
	return s.listGamesWhere(ctx, "WHERE game_date >= ? ORDER BY game_date DESC", timeToDB(cutoff))
}

// LastGame returns the most recent game, or ErrNotFound when none exist.
func (s *SQLiteStore) LastGame(ctx context.Context) (*models.Game, error) {
	games, err := s.listGamesWhere(ctx, "ORDER BY game_date DESC LIMIT 1")
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, storage.ErrNotFound
	}
	return &games[0], nil
}

// ReplaceGames drops and bulk-inserts the games collection (import path).
func (s *SQLiteStore) ReplaceGames(ctx context.Context, games []models.Game) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"games", "game_attendance", "game_guests"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	for i := range games {
		if games[i].ID == "" {
			games[i].ID = uuid.New().String()
		}
		if games[i].Timestamp.IsZero() {
			games[i].Timestamp = time.Now().UTC()
		}
		if err := insertGameTx(ctx, tx, &games[i]); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit games: %w", err)
	}
	return nil
}
