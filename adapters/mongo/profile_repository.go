package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/farolia/farol/domain/entities"
	"github.com/farolia/farol/domain/repositories"
)

const profilesCollection = "candidate_profiles"

// ProfileRepository implements repositories.ProfileRepository using MongoDB
type ProfileRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

var _ repositories.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository creates the repository and ensures its indexes in the background
func NewProfileRepository(db *mongo.Database, logger *zap.Logger) *ProfileRepository {
	collection := db.Collection(profilesCollection)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		})
		if err != nil {
			logger.Error("Failed to create profile indexes", zap.Error(err))
		} else {
			logger.Info("Profile indexes ensured")
		}
	}()

	return &ProfileRepository{collection: collection, logger: logger}
}

// Create implements repositories.ProfileRepository
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.CandidateProfile) error {
	if profile == nil {
		return errors.New("profile cannot be nil")
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID implements repositories.ProfileRepository
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entities.CandidateProfile, error) {
	if id == "" {
		return nil, errors.New("profile ID cannot be empty")
	}

	var profile entities.CandidateProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	return &profile, nil
}

// List implements repositories.ProfileRepository, newest first
func (r *ProfileRepository) List(ctx context.Context, limit int) ([]*entities.CandidateProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*entities.CandidateProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}
