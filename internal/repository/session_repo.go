package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxUpdateAttempts bounds optimistic retries when another writer replaced the document first.
const maxUpdateAttempts = 5

var errStaleWrite = errors.New("document changed during update")

type sessionRepo struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewSessionRepo creates a MongoDB-backed session repository
func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection("exam_sessions"),
		now:        time.Now,
	}
}

// EnsureSessionIndexes creates the lookup indexes used by candidate and proctor scans.
func EnsureSessionIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("exam_sessions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "enrolledCandidates.studentId", Value: 1}}},
		{Keys: bson.D{{Key: "waitlist.studentId", Value: 1}}},
		{Keys: bson.D{{Key: "proctors", Value: 1}}},
	})
	return err
}

func (r *sessionRepo) Create(ctx context.Context, session *model.ExamSession) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": session.ID}, session, opts)
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) List(ctx context.Context) ([]*model.ExamSession, error) {
	return r.find(ctx, bson.M{})
}

// Update replaces the document only if its version still matches what was read,
// retrying against the fresh copy when a concurrent writer got there first.
func (r *sessionRepo) Update(ctx context.Context, id string, mutate SessionMutation) (*model.ExamSession, error) {
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
	return nil, fmt.Errorf("update session %s: %w", id, errStaleWrite)
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func candidateFilter(studentID string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"enrolledCandidates.studentId": studentID},
		bson.M{"waitlist.studentId": studentID},
	}}
}

func (r *sessionRepo) FindByCandidate(ctx context.Context, studentID string) (*model.ExamSession, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	var session model.ExamSession
	err := r.collection.FindOne(ctx, candidateFilter(studentID), opts).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) ListByCandidate(ctx context.Context, studentID string) ([]*model.ExamSession, error) {
	return r.find(ctx, candidateFilter(studentID))
}

func (r *sessionRepo) FindByProctor(ctx context.Context, proctorID string) ([]*model.ExamSession, error) {
	return r.find(ctx, bson.M{"proctors": proctorID})
}

func (r *sessionRepo) find(ctx context.Context, filter bson.M) ([]*model.ExamSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []*model.ExamSession{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
