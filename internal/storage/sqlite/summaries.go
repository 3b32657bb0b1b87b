package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/names"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// GetSummary retrieves the named player's summary row.
func (s *SQLiteStore) GetSummary(ctx context.Context, name string) (*models.PlayerSummary, error) {
	summaries, err := s.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		if names.Equal(summaries[i].PlayerName, name) {
			return &summaries[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *SQLiteStore) listSummariesWhere(ctx context.Context, where string, args ...any) ([]models.PlayerSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player, games_attended, last_played, games_cost, monies_paid, balance FROM summaries "+where,
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.PlayerSummary
	for rows.Next() {
		var row models.PlayerSummary
		var lastPlayed, gamesCost, moniesPaid, balance string
		if err := rows.Scan(&row.PlayerName, &row.GamesAttended, &lastPlayed, &gamesCost, &moniesPaid, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		if row.LastPlayed, err = timeFromDB(lastPlayed); err != nil {
			return nil, err
		}
		if row.GamesCost, err = moneyFromDB(gamesCost); err != nil {
			return nil, err
		}
		if row.MoniesPaid, err = moneyFromDB(moniesPaid); err != nil {
			return nil, err
		}
		if row.Balance, err = moneyFromDB(balance); err != nil {
			return nil, err
		}
		summaries = append(summaries, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summaries: %w", err)
	}
	return summaries, nil
}

// ListSummaries returns every summary row ordered by player name.
func (s *SQLiteStore) ListSummaries(ctx context.Context) ([]models.PlayerSummary, error) {
	return s.listSummariesWhere(ctx, "ORDER BY player")
}

// SummariesPlayedSince returns rows whose lastPlayed is on or after the
// cutoff.
func (s *SQLiteStore) SummariesPlayedSince(ctx context.Context, cutoff time.Time) ([]models.PlayerSummary, error) {
	return s.listSummariesWhere(ctx, "WHERE last_played >= ? ORDER BY player", timeToDB(cutoff))
}

// SummariesNotPlayedSince returns rows whose lastPlayed is before the
// cutoff.
func (s *SQLiteStore) SummariesNotPlayedSince(ctx context.Context, cutoff time.Time) ([]models.PlayerSummary, error) {
	return s.listSummariesWhere(ctx, "WHERE last_played < ? ORDER BY player", timeToDB(cutoff))
}

func summaryArgs(row models.PlayerSummary) []any {
	return []any{
		row.GamesAttended, timeToDB(row.LastPlayed),
		row.GamesCost.String(), row.MoniesPaid.String(), row.Balance.String(),
	}
}

// InsertSummary adds the zeroed row created alongside a new player.
func (s *SQLiteStore) InsertSummary(ctx context.Context, row models.PlayerSummary) error {
	args := append([]any{row.PlayerName}, summaryArgs(row)...)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO summaries (player, games_attended, last_played, games_cost, monies_paid, balance) VALUES (?, ?, ?, ?, ?, ?)",
		args...)
	if err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}
	return nil
}

// UpdateSummary overwrites an existing player's summary row.
func (s *SQLiteStore) UpdateSummary(ctx context.Context, row models.PlayerSummary) error {
	args := append(summaryArgs(row), row.PlayerName)
	res, err := s.db.ExecContext(ctx,
		"UPDATE summaries SET games_attended = ?, last_played = ?, games_cost = ?, monies_paid = ?, balance = ? WHERE player = ?",
		args...)
	if err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ReplaceSummaries drops and bulk-inserts the whole summary collection.
// This is the write half of the full recompute path.
func (s *SQLiteStore) ReplaceSummaries(ctx context.Context, summaries []models.PlayerSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceSummariesTx(ctx, tx, summaries); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit summaries: %w", err)
	}
	return nil
}

func replaceSummariesTx(ctx context.Context, tx *sql.Tx, summaries []models.PlayerSummary) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM summaries"); err != nil {
		return fmt.Errorf("failed to clear summaries: %w", err)
	}
	for _, row := range summaries {
		args := append([]any{row.PlayerName}, summaryArgs(row)...)
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO summaries (player, games_attended, last_played, games_cost, monies_paid, balance) VALUES (?, ?, ?, ?, ?, ?)",
			args...); err != nil {
			return fmt.Errorf("failed to insert summary: %w", err)
		}
	}
	return nil
}
