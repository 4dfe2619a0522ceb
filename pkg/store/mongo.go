package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/egoview/egoview/pkg/errors"
	"github.com/egoview/egoview/pkg/graph"
)

const collectionName = "graphs"

// Document is the stored representation of one named graph. Data holds the
// node-link JSON serialization; counts are denormalized for cheap listings.
type Document struct {
	Name      string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	NodeCount int       `bson:"node_count"`
	EdgeCount int       `bson:"edge_count"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// GraphInfo summarizes a stored graph without its payload.
type GraphInfo struct {
	Name      string    `json:"name" bson:"_id"`
	NodeCount int       `json:"node_count" bson:"node_count"`
	EdgeCount int       `json:"edge_count" bson:"edge_count"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// MongoStore persists graphs in a MongoDB collection keyed by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
	}, nil
}

// Put stores or replaces the graph under the given name.
func (s *MongoStore) Put(ctx context.Context, name string, g *graph.DiGraph) error {
	if err := errors.ValidateGraphName(name); err != nil {
		return err
	}
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return err
	}
	doc := Document{
		Name:      name,
		Data:      data,
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		UpdatedAt: time.Now().UTC(),
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store graph %q", name)
	}
	return nil
}

// Get loads the graph stored under the given name.
func (s *MongoStore) Get(ctx context.Context, name string) (*graph.DiGraph, error) {
	if err := errors.ValidateGraphName(name); err != nil {
		return nil, err
	}
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load graph %q", name)
	}
	return graph.UnmarshalGraph(doc.Data)
}

// List returns summaries of all stored graphs, sorted by name.
func (s *MongoStore) List(ctx context.Context) ([]GraphInfo, error) {
	opts := options.Find().
		SetProjection(bson.M{"data": 0}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list graphs")
	}
	defer cursor.Close(ctx)

	var infos []GraphInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode graph listing")
	}
	return infos, nil
}

// Delete removes the graph stored under the given name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateGraphName(name); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete graph %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
