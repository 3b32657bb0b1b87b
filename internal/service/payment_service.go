package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// PaymentService records explicit transactions against players. Payments
// are immutable once written; corrections are new compensating payments.
type PaymentService struct {
	store storage.Store

	// recentWindow bounds the recent-transactions view.
	recentWindow time.Duration
}

// NewPaymentService creates a PaymentService with the given storage backend
// and recent-transactions window.
func NewPaymentService(store storage.Store, recentWindow time.Duration) *PaymentService {
	return &PaymentService{store: store, recentWindow: recentWindow}
}

// AddTransaction validates the player exists, records the payment, and
// patches the player's summary balance and paid total by the exact amount.
// The patch preserves the summary invariant without a full rebuild.
func (s *PaymentService) AddTransaction(ctx context.Context, payment models.Payment) (string, error) {
	if _, err := s.store.GetPlayer(ctx, payment.Player); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			message := "Player " + payment.Player + " does not exist in system. Transaction not added"
			slog.Error(message)
			return message, err
		}
		return "", fmt.Errorf("add transaction: %w", err)
	}

	if err := s.store.InsertPayment(ctx, payment); err != nil {
		return "", fmt.Errorf("add transaction: %w", err)
	}

	summary, err := s.store.GetSummary(ctx, payment.Player)
	if errors.Is(err, storage.ErrNotFound) {
		message := "Selected player" + payment.Player + " is not in teamSummary table. Did not adjust Summary"
		slog.Error(message)
		return message, err
	}
	if err != nil {
		return "", fmt.Errorf("add transaction: %w", err)
	}

	summary.MoniesPaid = summary.MoniesPaid.Add(payment.Amount)
	summary.Balance = summary.Balance.Add(payment.Amount)
	if err := s.store.UpdateSummary(ctx, *summary); err != nil {
		return "", fmt.Errorf("add transaction: summary patch: %w", err)
	}

	transactionsAdded.Inc()
	message := "Added transaction £" + payment.Amount.Display() + " against " + payment.Player
	slog.Info(message)
	return message, nil
}

// ForPlayer returns the player's payments, oldest first.
func (s *PaymentService) ForPlayer(ctx context.Context, name string) ([]models.Payment, error) {
	return s.store.PaymentsForPlayer(ctx, name)
}

// All returns every payment, most recent first.
func (s *PaymentService) All(ctx context.Context) ([]models.Payment, error) {
	return s.store.ListPayments(ctx)
}

// Recent returns payments within the recent-transactions window, most
// recent first.
func (s *PaymentService) Recent(ctx context.Context) ([]models.Payment, error) {
	return s.store.PaymentsSince(ctx, time.Now().UTC().Add(-s.recentWindow))
}
