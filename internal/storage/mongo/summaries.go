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

func (s *MongoStore) GetSummary(ctx context.Context, name string) (*models.PlayerSummary, error) {
	var d summaryDoc
	err := s.collection(colSummaries).FindOne(ctx, nameFilter("playerName", name),
		options.FindOne().SetCollation(nameCollation)).Decode(&d)
	if isNoDocuments(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: get summary: %w", err)
	}
	sum := d.model()
	return &sum, nil
}

func (s *MongoStore) listSummariesWhere(ctx context.Context, filter bson.M) ([]models.PlayerSummary, error) {
	cur, err := s.collection(colSummaries).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "playerName", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: list summaries: %w", err)
	}
	var docs []summaryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("cffadb/mongo: list summaries: %w", err)
	}
	summaries := make([]models.PlayerSummary, len(docs))
	for i, d := range docs {
		summaries[i] = d.model()
	}
	return summaries, nil
}

func (s *MongoStore) ListSummaries(ctx context.Context) ([]models.PlayerSummary, error) {
	return s.listSummariesWhere(ctx, bson.M{})
}

func (s *MongoStore) SummariesPlayedSince(ctx context.Context, cutoff time.Time) ([]models.PlayerSummary, error) {
	return s.listSummariesWhere(ctx, bson.M{"lastPlayed": bson.M{"$gte": cutoff.UTC()}})
}

func (s *MongoStore) SummariesNotPlayedSince(ctx context.Context, cutoff time.Time) ([]models.PlayerSummary, error) {
	return s.listSummariesWhere(ctx, bson.M{"lastPlayed": bson.M{"$lt": cutoff.UTC()}})
}

func (s *MongoStore) InsertSummary(ctx context.Context, summary models.PlayerSummary) error {
	if _, err := s.collection(colSummaries).InsertOne(ctx, toSummaryDoc(summary)); err != nil {
		return fmt.Errorf("cffadb/mongo: insert summary: %w", err)
	}
	return nil
}

func (s *MongoStore) UpdateSummary(ctx context.Context, summary models.PlayerSummary) error {
	res, err := s.collection(colSummaries).ReplaceOne(ctx,
		nameFilter("playerName", summary.PlayerName), toSummaryDoc(summary),
		options.Replace().SetCollation(nameCollation))
	if err != nil {
		return fmt.Errorf("cffadb/mongo: update summary: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *MongoStore) ReplaceSummaries(ctx context.Context, summaries []models.PlayerSummary) error {
	docs := make([]interface{}, len(summaries))
	for i, sum := range summaries {
		docs[i] = toSummaryDoc(sum)
	}
	return s.replaceAll(ctx, colSummaries, docs)
}
