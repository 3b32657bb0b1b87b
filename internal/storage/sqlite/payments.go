package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/names"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// InsertPayment appends a payment. Payments are never updated in place.
func (s *SQLiteStore) InsertPayment(ctx context.Context, payment models.Payment) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO payments (player, type, amount, paid_on) VALUES (?, ?, ?, ?)",
		payment.Player, payment.Type, payment.Amount.String(), timeToDB(payment.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listPaymentsWhere(ctx context.Context, where string, args ...any) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player, type, amount, paid_on FROM payments "+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var amount, paidOn string
		if err := rows.Scan(&p.Player, &p.Type, &amount, &paidOn); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if p.Amount, err = moneyFromDB(amount); err != nil {
			return nil, err
		}
		if p.Date, err = timeFromDB(paidOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// PaymentsForPlayer returns all payments recorded against the named player,
// oldest first.
func (s *SQLiteStore) PaymentsForPlayer(ctx context.Context, name string) ([]models.Payment, error) {
	payments, err := s.listPaymentsWhere(ctx, "ORDER BY paid_on, id")
	if err != nil {
		return nil, err
	}
	var matched []models.Payment
	for _, p := range payments {
		if names.Equal(p.Player, name) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ListPayments returns every payment, most recent first.
func (s *SQLiteStore) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.listPaymentsWhere(ctx, "ORDER BY paid_on DESC, id DESC")
}

// PaymentsSince returns payments on or after the cutoff, most recent first.
func (s *SQLiteStore) PaymentsSince(ctx context.Context, cutoff time.Time) ([]models.Payment, error) {
	return s.listPaymentsWhere(ctx, "WHERE paid_on >= ? ORDER BY paid_on DESC, id DESC", timeToDB(cutoff))
}

// ReplacePayments drops and bulk-inserts the payments collection.
func (s *SQLiteStore) ReplacePayments(ctx context.Context, payments []models.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM payments"); err != nil {
		return fmt.Errorf("failed to clear payments: %w", err)
	}
	for _, p := range payments {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO payments (player, type, amount, paid_on) VALUES (?, ?, ?, ?)",
			p.Player, p.Type, p.Amount.String(), timeToDB(p.Date),
		); err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payments: %w", err)
	}
	return nil
}

// Adjustments

// AdjustmentForPlayer returns the player's opening adjustment, or
// ErrNotFound when none exists.
func (s *SQLiteStore) AdjustmentForPlayer(ctx context.Context, name string) (*models.Adjustment, error) {
	adjustments, err := s.ListAdjustments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range adjustments {
		if names.Equal(adjustments[i].Player, name) {
			return &adjustments[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

// ListAdjustments returns every opening adjustment.
func (s *SQLiteStore) ListAdjustments(ctx context.Context) ([]models.Adjustment, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT player, adjust FROM adjustments")
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []models.Adjustment
	for rows.Next() {
		var a models.Adjustment
		var adjust string
		if err := rows.Scan(&a.Player, &adjust); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		if a.Adjust, err = moneyFromDB(adjust); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate adjustments: %w", err)
	}
	return adjustments, nil
}

// ReplaceAdjustments drops and bulk-inserts the adjustments collection.
// Adjustments only ever arrive via import.
func (s *SQLiteStore) ReplaceAdjustments(ctx context.Context, adjustments []models.Adjustment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM adjustments"); err != nil {
		return fmt.Errorf("failed to clear adjustments: %w", err)
	}
	for _, a := range adjustments {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO adjustments (player, adjust) VALUES (?, ?)",
			a.Player, a.Adjust.String(),
		); err != nil {
			return fmt.Errorf("failed to insert adjustment: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit adjustments: %w", err)
	}
	return nil
}
