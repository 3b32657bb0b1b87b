package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/names"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

const gameDateField = "Date of Game dd-MON-YYYY"

func (s *MongoStore) InsertGame(ctx context.Context, game *models.Game) error {
	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	if game.Timestamp.IsZero() {
		game.Timestamp = time.Now().UTC()
	}
	if _, err := s.collection(colGames).InsertOne(ctx, toGameDoc(game)); err != nil {
		return fmt.Errorf("cffadb/mongo: insert game: %w", err)
	}
	return nil
}

func (s *MongoStore) GetGame(ctx context.Context, id string) (*models.Game, error) {
	var d gameDoc
	err := s.collection(colGames).FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if isNoDocuments(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: get game: %w", err)
	}
	g := d.model()
	return &g, nil
}

// ReplaceGame swaps the stored document wholesale, so edits cannot leave
// stale per-player data behind.
func (s *MongoStore) ReplaceGame(ctx context.Context, game *models.Game) error {
	res, err := s.collection(colGames).ReplaceOne(ctx, bson.M{"_id": game.ID}, toGameDoc(game))
	if err != nil {
		return fmt.Errorf("cffadb/mongo: replace game: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteGame(ctx context.Context, id string) error {
	res, err := s.collection(colGames).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cffadb/mongo: delete game: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *MongoStore) listGamesWhere(ctx context.Context, filter bson.M) ([]models.Game, error) {
	cur, err := s.collection(colGames).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: gameDateField, Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: list games: %w", err)
	}
	var docs []gameDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("cffadb/mongo: list games: %w", err)
	}
	games := make([]models.Game, len(docs))
	for i, d := range docs {
		games[i] = d.model()
	}
	return games, nil
}

func (s *MongoStore) ListGames(ctx context.Context) ([]models.Game, error) {
	return s.listGamesWhere(ctx, bson.M{})
}

// GamesForPlayer filters in Go: attendance is keyed by raw player name, and
// key matching needs the same loose collation as everywhere else.
func (s *MongoStore) GamesForPlayer(ctx context.Context, name string) ([]models.Game, error) {
	all, err := s.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	var games []models.Game
	for _, g := range all {
		if g.Attended(name) {
			games = append(games, g)
		}
	}
	return games, nil
}

func (s *MongoStore) GamesSince(ctx context.Context, cutoff time.Time) ([]models.Game, error) {
	return s.listGamesWhere(ctx, bson.M{gameDateField: bson.M{"$gte": cutoff.UTC()}})
}

func (s *MongoStore) LastGame(ctx context.Context) (*models.Game, error) {
	var d gameDoc
	err := s.collection(colGames).FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: gameDateField, Value: -1}, {Key: "_id", Value: -1}})).Decode(&d)
	if isNoDocuments(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: last game: %w", err)
	}
	g := d.model()
	return &g, nil
}

func (s *MongoStore) ReplaceGames(ctx context.Context, games []models.Game) error {
	docs := make([]interface{}, len(games))
	for i := range games {
		g := games[i]
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		docs[i] = toGameDoc(&g)
	}
	return s.replaceAll(ctx, colGames, docs)
}

// renameInGame rewrites one player's name within a game record, returning
// whether anything changed.
func renameInGame(game *models.Game, oldName, newName string) bool {
	changed := false
	if names.Equal(game.Booker, oldName) {
		game.Booker = newName
		changed = true
	}
	for key, marker := range game.Attendance {
		if names.Equal(key, oldName) {
			delete(game.Attendance, key)
			game.Attendance[newName] = marker
			changed = true
			break
		}
	}
	for key, count := range game.Guests {
		if names.Equal(key, oldName) {
			delete(game.Guests, key)
			game.Guests[newName] = count
			changed = true
			break
		}
	}
	return changed
}
