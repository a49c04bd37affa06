package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/citizenprep/backend/internal/domain/result"
	"github.com/citizenprep/backend/internal/domain/testset"
)

const recordsCollection = "test_records"

// MongoStore keeps each user's record of one test type as a single document.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

type mongoRecord struct {
	ID            string `bson:"_id"`
	result.Record `bson:",inline"`
}

func recordID(userID string, t testset.TestType) string {
	return userID + ":" + string(t)
}

// NewMongo connects to uri and uses the records collection of database.
func NewMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client: client,
		col:    client.Database(database).Collection(recordsCollection),
	}, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) GetRecord(ctx context.Context, userID string, t testset.TestType) (*result.Record, error) {
	var doc mongoRecord
	err := s.col.FindOne(ctx, bson.M{"_id": recordID(userID, t)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, persistenceErr("find record", err)
	}
	if len(doc.Results) == 0 {
		return nil, ErrNotFound
	}
	return &doc.Record, nil
}

// UpdateRecord reads the document, applies fn and replaces it with an upsert.
// Concurrent submissions for the same key are last-writer-wins.
func (s *MongoStore) UpdateRecord(ctx context.Context, userID string, t testset.TestType, fn UpdateFunc) (*result.Record, error) {
	id := recordID(userID, t)

	rec := result.NewRecord(userID, t)
	var doc mongoRecord
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
	case err != nil:
		return nil, persistenceErr("find record", err)
	default:
		rec = &doc.Record
	}

	if err := fn(rec); err != nil {
		return nil, err
	}

	_, err = s.col.ReplaceOne(ctx,
		bson.M{"_id": id},
		mongoRecord{ID: id, Record: *rec},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, persistenceErr("replace record", err)
	}
	return rec, nil
}
