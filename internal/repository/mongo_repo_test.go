package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blackeffigyeel/exam-orch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const mockNS = "examorch.exam_sessions"

func sessionDoc(id string, version int64, studentIDs ...string) bson.D {
	enrolled := bson.A{}
	for _, sid := range studentIDs {
		enrolled = append(enrolled, bson.D{{Key: "studentId", Value: sid}, {Key: "name", Value: "Student " + sid}})
	}
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Exam " + id},
		{Key: "duration", Value: 60},
		{Key: "maxCandidates", Value: 2},
		{Key: "enrolledCandidates", Value: enrolled},
		{Key: "waitlist", Value: bson.A{}},
		{Key: "proctors", Value: bson.A{"p1"}},
		{Key: "version", Value: version},
	}
}

func findOne(doc bson.D) bson.D {
	return mtest.CreateCursorResponse(0, mockNS, mtest.FirstBatch, doc)
}

func replaced(n int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
}

// updateFilters returns the filter of every update command sent so far.
func updateFilters(mt *mtest.T) []bson.Raw {
	var filters []bson.Raw
	for _, evt := range mt.GetAllStartedEvents() {
		if evt.CommandName != "update" {
			continue
		}
		filters = append(filters, evt.Command.Lookup("updates", "0", "q").Document())
	}
	return filters
}

func TestMongoSessionRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	fixed := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	mt.Run("update guards on version and bumps it", func(mt *mtest.T) {
		repo := &sessionRepo{collection: mt.Coll, now: func() time.Time { return fixed }}
		mt.AddMockResponses(findOne(sessionDoc("s1", 3)), replaced(1))

		updated, err := repo.Update(context.Background(), "s1", func(s *model.ExamSession) error {
			s.EnrolledCandidates.Append(model.EnrolledCandidate{StudentID: "stu1"})
			return nil
		})
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), updated.Version)
		assert.Equal(mt, fixed, updated.UpdatedAt)
		assert.True(mt, updated.HasCandidate("stu1"))

		filters := updateFilters(mt)
		require.Len(mt, filters, 1)
		assert.Equal(mt, int64(3), filters[0].Lookup("version").Int64())
	})

	mt.Run("update retries against the newer copy", func(mt *mtest.T) {
		repo := &sessionRepo{collection: mt.Coll, now: time.Now}
		mt.AddMockResponses(
			findOne(sessionDoc("s1", 3)), replaced(0),
			findOne(sessionDoc("s1", 4, "other")), replaced(1),
		)

		calls := 0
		updated, err := repo.Update(context.Background(), "s1", func(s *model.ExamSession) error {
			calls++
			s.EnrolledCandidates.Append(model.EnrolledCandidate{StudentID: "stu1"})
			return nil
		})
		require.NoError(mt, err)
		assert.Equal(mt, 2, calls)
		assert.Equal(mt, int64(5), updated.Version)
		assert.True(mt, updated.HasCandidate("other"))
		assert.True(mt, updated.HasCandidate("stu1"))

		filters := updateFilters(mt)
		require.Len(mt, filters, 2)
		assert.Equal(mt, int64(3), filters[0].Lookup("version").Int64())
		assert.Equal(mt, int64(4), filters[1].Lookup("version").Int64())
	})

	mt.Run("update gives up after repeated stale writes", func(mt *mtest.T) {
		repo := &sessionRepo{collection: mt.Coll, now: time.Now}
		for i := 0; i < maxUpdateAttempts; i++ {
			mt.AddMockResponses(findOne(sessionDoc("s1", int64(i))), replaced(0))
		}

		_, err := repo.Update(context.Background(), "s1", func(*model.ExamSession) error { return nil })
		assert.ErrorIs(mt, err, errStaleWrite)
		assert.Len(mt, updateFilters(mt), maxUpdateAttempts)
	})

	mt.Run("update of a missing session", func(mt *mtest.T) {
		repo := &sessionRepo{collection: mt.Coll, now: time.Now}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNS, mtest.FirstBatch))

		_, err := repo.Update(context.Background(), "missing", func(*model.ExamSession) error { return nil })
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("failed mutation writes nothing", func(mt *mtest.T) {
		repo := &sessionRepo{collection: mt.Coll, now: time.Now}
		mt.AddMockResponses(findOne(sessionDoc("s1", 1)))
		boom := errors.New("boom")

		_, err := repo.Update(context.Background(), "s1", func(*model.ExamSession) error { return boom })
		assert.ErrorIs(mt, err, boom)
		assert.Empty(mt, updateFilters(mt))
	})

	mt.Run("list by candidate", func(mt *mtest.T) {
		repo := &sessionRepo{collection: mt.Coll, now: time.Now}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNS, mtest.FirstBatch,
			sessionDoc("s1", 1, "stu1"), sessionDoc("s2", 1, "stu1", "stu2")))

		sessions, err := repo.ListByCandidate(context.Background(), "stu1")
		require.NoError(mt, err)
		require.Len(mt, sessions, 2)
		assert.Equal(mt, "s1", sessions[0].ID)
		assert.Equal(mt, "s2", sessions[1].ID)
		assert.True(mt, sessions[1].HasCandidate("stu2"))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		or := started.Command.Lookup("filter", "$or").Array()
		assert.Equal(mt, "stu1", or.Index(0).Value().Document().Lookup("enrolledCandidates.studentId").StringValue())
		assert.Equal(mt, "stu1", or.Index(1).Value().Document().Lookup("waitlist.studentId").StringValue())
	})

	mt.Run("find by proctor", func(mt *mtest.T) {
		repo := &sessionRepo{collection: mt.Coll, now: time.Now}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNS, mtest.FirstBatch, sessionDoc("s1", 1)))

		sessions, err := repo.FindByProctor(context.Background(), "p1")
		require.NoError(mt, err)
		require.Len(mt, sessions, 1)
		assert.True(mt, sessions[0].HasProctor("p1"))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "p1", started.Command.Lookup("filter", "proctors").StringValue())
	})

	mt.Run("find by proctor with no sessions", func(mt *mtest.T) {
		repo := &sessionRepo{collection: mt.Coll, now: time.Now}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockNS, mtest.FirstBatch))

		sessions, err := repo.FindByProctor(context.Background(), "nobody")
		require.NoError(mt, err)
		assert.NotNil(mt, sessions)
		assert.Empty(mt, sessions)
	})
}

func TestMongoProctorRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	proctorDoc := func(version int64, sessions ...interface{}) bson.D {
		return bson.D{
			{Key: "_id", Value: "p1"},
			{Key: "name", Value: "Grace"},
			{Key: "assignedSessions", Value: bson.A(sessions)},
			{Key: "version", Value: version},
		}
	}

	mt.Run("update retries against the newer copy", func(mt *mtest.T) {
		repo := &proctorRepo{collection: mt.Coll, now: time.Now}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "examorch.proctors", mtest.FirstBatch, proctorDoc(7, "s1")), replaced(0),
			mtest.CreateCursorResponse(0, "examorch.proctors", mtest.FirstBatch, proctorDoc(8, "s1", "s2")), replaced(1),
		)

		updated, err := repo.Update(context.Background(), "p1", func(p *model.Proctor) error {
			p.AssignedSessions = append(p.AssignedSessions, "s3")
			return nil
		})
		require.NoError(mt, err)
		assert.Equal(mt, []string{"s1", "s2", "s3"}, updated.AssignedSessions)
		assert.Equal(mt, int64(9), updated.Version)

		filters := updateFilters(mt)
		require.Len(mt, filters, 2)
		assert.Equal(mt, int64(7), filters[0].Lookup("version").Int64())
		assert.Equal(mt, int64(8), filters[1].Lookup("version").Int64())
	})

	mt.Run("update of a missing proctor", func(mt *mtest.T) {
		repo := &proctorRepo{collection: mt.Coll, now: time.Now}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "examorch.proctors", mtest.FirstBatch))

		_, err := repo.Update(context.Background(), "p1", func(*model.Proctor) error { return nil })
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
