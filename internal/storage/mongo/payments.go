package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

func (s *MongoStore) InsertPayment(ctx context.Context, payment models.Payment) error {
	if _, err := s.collection(colPayments).InsertOne(ctx, toPaymentDoc(payment)); err != nil {
		return fmt.Errorf("cffadb/mongo: insert payment: %w", err)
	}
	return nil
}

func (s *MongoStore) listPaymentsWhere(ctx context.Context, filter bson.M, sort bson.D, opts ...options.Lister[options.FindOptions]) ([]models.Payment, error) {
	findOpts := append([]options.Lister[options.FindOptions]{options.Find().SetSort(sort)}, opts...)
	cur, err := s.collection(colPayments).Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: list payments: %w", err)
	}
	var docs []paymentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("cffadb/mongo: list payments: %w", err)
	}
	payments := make([]models.Payment, len(docs))
	for i, d := range docs {
		payments[i] = d.model()
	}
	return payments, nil
}

// PaymentsForPlayer returns the player's payments oldest first, the order
// statements consume them in.
func (s *MongoStore) PaymentsForPlayer(ctx context.Context, name string) ([]models.Payment, error) {
	return s.listPaymentsWhere(ctx, nameFilter("Player", name),
		bson.D{{Key: "Date", Value: 1}, {Key: "_id", Value: 1}},
		options.Find().SetCollation(nameCollation))
}

func (s *MongoStore) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.listPaymentsWhere(ctx, bson.M{},
		bson.D{{Key: "Date", Value: -1}, {Key: "_id", Value: -1}})
}

func (s *MongoStore) PaymentsSince(ctx context.Context, cutoff time.Time) ([]models.Payment, error) {
	return s.listPaymentsWhere(ctx, bson.M{"Date": bson.M{"$gte": cutoff.UTC()}},
		bson.D{{Key: "Date", Value: -1}, {Key: "_id", Value: -1}})
}

func (s *MongoStore) ReplacePayments(ctx context.Context, payments []models.Payment) error {
	docs := make([]interface{}, len(payments))
	for i, p := range payments {
		docs[i] = toPaymentDoc(p)
	}
	return s.replaceAll(ctx, colPayments, docs)
}

// Adjustments

func (s *MongoStore) AdjustmentForPlayer(ctx context.Context, name string) (*models.Adjustment, error) {
	var d adjustmentDoc
	err := s.collection(colAdjustments).FindOne(ctx, nameFilter("name", name),
		options.FindOne().SetCollation(nameCollation)).Decode(&d)
	if isNoDocuments(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: get adjustment: %w", err)
	}
	a := d.model()
	return &a, nil
}

func (s *MongoStore) ListAdjustments(ctx context.Context) ([]models.Adjustment, error) {
	cur, err := s.collection(colAdjustments).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: list adjustments: %w", err)
	}
	var docs []adjustmentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("cffadb/mongo: list adjustments: %w", err)
	}
	adjustments := make([]models.Adjustment, len(docs))
	for i, d := range docs {
		adjustments[i] = d.model()
	}
	return adjustments, nil
}

func (s *MongoStore) ReplaceAdjustments(ctx context.Context, adjustments []models.Adjustment) error {
	docs := make([]interface{}, len(adjustments))
	for i, a := range adjustments {
		docs[i] = toAdjustmentDoc(a)
	}
	return s.replaceAll(ctx, colAdjustments, docs)
}
