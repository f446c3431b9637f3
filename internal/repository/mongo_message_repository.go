package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tanisha366/backened/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// messageDocument is the BSON shape of a message in the collection
type messageDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Email   string             `bson:"email"`
	Message string             `bson:"message"`
	Date    time.Time          `bson:"date"`
}

func (d messageDocument) toModel() models.Message {
	return models.Message{
		ID:      d.ID.Hex(),
		Name:    d.Name,
		Email:   d.Email,
		Message: d.Message,
		Date:    d.Date.UTC(),
	}
}

// MongoMessageRepository stores messages in a MongoDB collection
type MongoMessageRepository struct {
	coll *mongo.Collection
}

func NewMongoMessageRepository(coll *mongo.Collection) *MongoMessageRepository {
	return &MongoMessageRepository{coll: coll}
}

func (r *MongoMessageRepository) Create(ctx context.Context, message *models.Message) error {
	doc := messageDocument{
		ID:      primitive.NewObjectID(),
		Name:    message.Name,
		Email:   message.Email,
		Message: message.Message,
		Date:    message.Date,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert message: %w", ErrStorage, err)
	}

	message.ID = doc.ID.Hex()
	return nil
}

func (r *MongoMessageRepository) FindAll(ctx context.Context) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find messages: %w", ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode messages: %w", ErrStorage, err)
	}

	messages := make([]models.Message, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, doc.toModel())
	}
	return messages, nil
}

func (r *MongoMessageRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("%w: delete messages: %w", ErrStorage, err)
	}
	return result.DeletedCount, nil
}

func (r *MongoMessageRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrStorage, err)
	}
	return nil
}

// EnsureIndexes creates the index backing the newest-first listing
func (r *MongoMessageRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: -1}},
		Options: options.Index().SetName("date_desc"),
	})
	if err != nil {
		return fmt.Errorf("%w: create index: %w", ErrStorage, err)
	}
	return nil
}
