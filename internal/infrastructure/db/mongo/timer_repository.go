package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/timekeep/timer-system/internal/core/domain"
)

const timersCollection = "timers"

type MongoTimerRepository struct {
	coll *mongo.Collection
}

func NewTimerRepository(db *mongo.Database) *MongoTimerRepository {
	return &MongoTimerRepository{coll: db.Collection(timersCollection)}
}

// Timestamps are stored as millisecond epochs, matching the wire format the
// clients consume.
type mongoTimer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Description string             `bson:"description"`
	Start       int64              `bson:"start"`
	End         *int64             `bson:"end,omitempty"`
	IsActive    bool               `bson:"is_active"`
}

func (r *MongoTimerRepository) Insert(ctx context.Context, timer *domain.Timer) (*domain.Timer, error) {
	doc := mongoTimer{
		UserID:      timer.UserID,
		Description: timer.Description,
		Start:       timer.Start.UnixMilli(),
		IsActive:    timer.IsActive,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert timer: %w", err)
	}

	created := *timer
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoTimerRepository) FindByID(ctx context.Context, id string) (*domain.Timer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTimerNotFound
	}

	var mt mongoTimer
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTimerNotFound
		}
		return nil, fmt.Errorf("find timer: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTimerRepository) Stop(ctx context.Context, id string, end time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTimerNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"end":       end.UnixMilli(),
			"is_active": false,
		},
	})
	if err != nil {
		return fmt.Errorf("stop timer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTimerNotFound
	}
	return nil
}

func (r *MongoTimerRepository) FindByUser(ctx context.Context, userID string, activeOnly bool) ([]domain.Timer, error) {
	filter := bson.M{"user_id": userID}
	if activeOnly {
		filter["is_active"] = true
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find timers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoTimer
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode timers: %w", err)
	}

	timers := make([]domain.Timer, len(docs))
	for i, doc := range docs {
		timers[i] = *doc.toDomain()
	}
	return timers, nil
}

func (mt mongoTimer) toDomain() *domain.Timer {
	timer := &domain.Timer{
		ID:          mt.ID.Hex(),
		UserID:      mt.UserID,
		Description: mt.Description,
		Start:       time.UnixMilli(mt.Start).UTC(),
		IsActive:    mt.IsActive,
	}
	if mt.End != nil {
		end := time.UnixMilli(*mt.End).UTC()
		timer.End = &end
	}
	return timer
}
