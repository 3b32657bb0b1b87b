// Package mongo implements storage.Store on MongoDB, the backend shared
// deployments use. Collections are tenant-prefixed so several groups can
// share one database.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/GreyPaperclip/cffadb/internal/models"
	"github.com/GreyPaperclip/cffadb/internal/storage"
)

// Collection name suffixes. The tenant prefix is prepended to each.
const (
	colGames       = "games"
	colPayments    = "payments"
	colAdjustments = "adjustments"
	colSummaries   = "teamSummary"
	colPlayers     = "teamPlayers"
	colSettings    = "teamSettings"
)

// nameCollation makes player-name filters case- and accent-insensitive,
// matching the collation the data was imported with.
var nameCollation = &options.Collation{Locale: "en", Strength: 1, Alternate: "shifted"}

var _ storage.Store = (*MongoStore)(nil)

// MongoStore implements storage.Store over a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	prefix string
}

// New connects to MongoDB and returns a store scoped to the given database
// and tenant prefix. It pings the primary so a bad URI fails fast.
func New(ctx context.Context, uri, database, tenantPrefix string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("cffadb/mongo: ping: %w", err)
	}
	return &MongoStore{
		client: client,
		db:     client.Database(database),
		prefix: tenantPrefix,
	}, nil
}

// Close disconnects from the server.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *MongoStore) collection(suffix string) *mongo.Collection {
	return s.db.Collection(s.prefix + suffix)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func nameFilter(field, name string) bson.M {
	return bson.M{field: name}
}

// Players

func (s *MongoStore) InsertPlayer(ctx context.Context, player models.Player) error {
	_, err := s.collection(colPlayers).InsertOne(ctx, toPlayerDoc(player))
	if err != nil {
		return fmt.Errorf("cffadb/mongo: insert player: %w", err)
	}
	return nil
}

func (s *MongoStore) GetPlayer(ctx context.Context, name string) (*models.Player, error) {
	var d playerDoc
	err := s.collection(colPlayers).FindOne(ctx, nameFilter("playerName", name),
		options.FindOne().SetCollation(nameCollation)).Decode(&d)
	if isNoDocuments(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: get player: %w", err)
	}
	p := d.model()
	return &p, nil
}

func (s *MongoStore) UpdatePlayerDetails(ctx context.Context, name string, retiree bool, comment string) error {
	res, err := s.collection(colPlayers).UpdateOne(ctx, nameFilter("playerName", name),
		bson.M{"$set": bson.M{"retiree": retiree, "comment": comment}},
		options.UpdateOne().SetCollation(nameCollation))
	if err != nil {
		return fmt.Errorf("cffadb/mongo: update player: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RenamePlayer rewrites the name across every collection. Flat name fields
// are rewritten server-side; games hold the name as map keys and booker, so
// those documents are rewritten in full.
func (s *MongoStore) RenamePlayer(ctx context.Context, oldName, newName string) error {
	collated := func(field, col string) error {
		_, err := s.collection(col).UpdateMany(ctx, nameFilter(field, oldName),
			bson.M{"$set": bson.M{field: newName}},
			options.UpdateMany().SetCollation(nameCollation))
		return err
	}
	if err := collated("playerName", colPlayers); err != nil {
		return fmt.Errorf("cffadb/mongo: rename player: %w", err)
	}
	if err := collated("playerName", colSummaries); err != nil {
		return fmt.Errorf("cffadb/mongo: rename summary: %w", err)
	}
	if err := collated("Player", colPayments); err != nil {
		return fmt.Errorf("cffadb/mongo: rename payments: %w", err)
	}
	if err := collated("name", colAdjustments); err != nil {
		return fmt.Errorf("cffadb/mongo: rename adjustments: %w", err)
	}

	games, err := s.ListGames(ctx)
	if err != nil {
		return err
	}
	for i := range games {
		game := &games[i]
		if !renameInGame(game, oldName, newName) {
			continue
		}
		if err := s.ReplaceGame(ctx, game); err != nil {
			return err
		}
	}
	return nil
}

func (s *MongoStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	cur, err := s.collection(colPlayers).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "playerName", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("cffadb/mongo: list players: %w", err)
	}
	var docs []playerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("cffadb/mongo: list players: %w", err)
	}
	players := make([]models.Player, len(docs))
	for i, d := range docs {
		players[i] = d.model()
	}
	return players, nil
}

func (s *MongoStore) ReplacePlayers(ctx context.Context, players []models.Player) error {
	docs := make([]interface{}, len(players))
	for i, p := range players {
		docs[i] = toPlayerDoc(p)
	}
	return s.replaceAll(ctx, colPlayers, docs)
}

// replaceAll empties a collection then bulk-inserts the new documents. Not
// transactional: a concurrent reader may observe the empty state.
func (s *MongoStore) replaceAll(ctx context.Context, col string, docs []interface{}) error {
	coll := s.collection(col)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("cffadb/mongo: clear %s: %w", col, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("cffadb/mongo: refill %s: %w", col, err)
	}
	return nil
}

// Settings

func (s *MongoStore) TeamName(ctx context.Context) (string, error) {
	var d settingsDoc
	err := s.collection(colSettings).FindOne(ctx, bson.M{}).Decode(&d)
	if isNoDocuments(err) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("cffadb/mongo: team name: %w", err)
	}
	return d.TeamName, nil
}

func (s *MongoStore) SetTeamName(ctx context.Context, name string) error {
	_, err := s.collection(colSettings).ReplaceOne(ctx, bson.M{},
		settingsDoc{TeamName: name}, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("cffadb/mongo: set team name: %w", err)
	}
	return nil
}
