package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/timekeep/timer-system/internal/core/domain"
)

const tokensCollection = "tokens"

type MongoTokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *MongoTokenRepository {
	return &MongoTokenRepository{coll: db.Collection(tokensCollection)}
}

type mongoToken struct {
	Token     string `bson:"token"`
	UserID    string `bson:"user_id"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *MongoTokenRepository) Insert(ctx context.Context, token *domain.Token) error {
	doc := mongoToken{
		Token:     token.Value,
		UserID:    token.UserID,
		CreatedAt: token.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func (r *MongoTokenRepository) FindByValue(ctx context.Context, value string) (*domain.Token, error) {
	var mt mongoToken
	if err := r.coll.FindOne(ctx, bson.M{"token": value}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTokenRepository) DeleteByValue(ctx context.Context, value string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"token": value}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (r *MongoTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete tokens for user: %w", err)
	}
	return nil
}

// LatestForUser picks the newest token by creation time so the choice stays
// deterministic even if multiple rows exist.
func (r *MongoTokenRepository) LatestForUser(ctx context.Context, userID string) (*domain.Token, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var mt mongoToken
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find latest token: %w", err)
	}
	return mt.toDomain(), nil
}

func (mt mongoToken) toDomain() *domain.Token {
	return &domain.Token{
		Value:     mt.Token,
		UserID:    mt.UserID,
		CreatedAt: unixToTime(mt.CreatedAt),
	}
}
