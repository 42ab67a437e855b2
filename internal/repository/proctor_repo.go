package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type proctorRepo struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewProctorRepo creates a MongoDB-backed proctor repository
func NewProctorRepo(db *mongo.Database) ProctorRepo {
	return &proctorRepo{
		collection: db.Collection("proctors"),
		now:        time.Now,
	}
}

func (r *proctorRepo) Create(ctx context.Context, proctor *model.Proctor) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": proctor.ID}, proctor, opts)
	return err
}

func (r *proctorRepo) GetByID(ctx context.Context, id string) (*model.Proctor, error) {
	var proctor model.Proctor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&proctor)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &proctor, nil
}

func (r *proctorRepo) List(ctx context.Context) ([]*model.Proctor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	proctors := []*model.Proctor{}
	if err := cursor.All(ctx, &proctors); err != nil {
		return nil, err
	}
	return proctors, nil
}

func (r *proctorRepo) Update(ctx context.Context, id string, mutate ProctorMutation) (*model.Proctor, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, ErrNotFound
		}

		readVersion := current.Version
		if err := mutate(current); err != nil {
			return nil, err
		}
		current.UpdatedAt = r.now()
		current.Version = readVersion + 1

		result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id, "version": readVersion}, current)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 1 {
			return current, nil
		}
	}
	return nil, fmt.Errorf("update proctor %s: %w", id, errStaleWrite)
}

func (r *proctorRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
