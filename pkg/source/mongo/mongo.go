// Package mongo reads raw match records from a tournament MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/errors"
	"github.com/stageside/bracketeer/pkg/source"
)

// Config holds MongoDB connection parameters.
type Config struct {
	// URI is the mongodb:// or mongodb+srv:// connection string.
	URI string

	// Database and Collection locate the match documents.
	Database   string
	Collection string

	// ConnectTimeout bounds the initial connect and ping. Zero means
	// 10 seconds.
	ConnectTimeout time.Duration
}

// Source reads matches from a MongoDB collection.
type Source struct {
	client     *mongo.Client
	collection *mongo.Collection
	name       string
}

var _ source.Source = (*Source)(nil)

// New connects to MongoDB and verifies the connection with a ping.
// Callers own the returned source and must Close it.
func New(ctx context.Context, cfg Config) (*Source, error) {
	if err := errors.ValidateMongoURI(cfg.URI); err != nil {
		return nil, err
	}
	if cfg.Database == "" || cfg.Collection == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongodb database and collection are required")
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	return &Source{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		name:       fmt.Sprintf("mongodb://%s/%s", cfg.Database, cfg.Collection),
	}, nil
}

// Name implements [source.Source].
func (s *Source) Name() string { return s.name }

// Matches fetches every match document, ordered by round and match
// number so downstream grouping sees bracket order.
func (s *Source) Matches(ctx context.Context) ([]*bracket.RawMatch, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "round_number", Value: 1},
		{Key: "match_number", Value: 1},
	})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find matches")
	}
	defer cursor.Close(ctx)

	var matches []*bracket.RawMatch
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "decode matches")
	}

	// BSON decoding bypasses the lenient JSON path, so the presence
	// flags the validator reads must be reconstructed here.
	for _, m := range matches {
		if m == nil {
			continue
		}
		m.SetAlliances(m.Alliances)
		for _, a := range m.Alliances {
			if a != nil {
				a.SetTeamAlliances(a.TeamAlliances)
			}
		}
	}
	return matches, nil
}

// Close disconnects the underlying client.
func (s *Source) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
