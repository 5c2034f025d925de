package mongostore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
)

func TestUserStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by email decodes hex id", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "scholarshipDb.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "email", Value: "admin@example.com"},
			{Key: "role", Value: "admin"},
		}))

		u, err := New(mt.DB).Users.FindByEmail(context.Background(), "admin@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), u.ID)
		assert.Equal(mt, domain.RoleAdmin, u.EffectiveRole())
	})

	mt.Run("find by email miss", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "scholarshipDb.users", mtest.FirstBatch))

		_, err := New(mt.DB).Users.FindByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &domain.User{Email: "alice@example.com"}
		res, err := New(mt.DB).Users.Create(context.Background(), u)
		require.NoError(mt, err)
		require.NotNil(mt, res.InsertedID)
		assert.Equal(mt, *res.InsertedID, u.ID)
		assert.Equal(mt, domain.RoleNone, u.Role)
		_, err = primitive.ObjectIDFromHex(u.ID)
		assert.NoError(mt, err)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := New(mt.DB).Users.Create(context.Background(), &domain.User{Email: "alice@example.com"})
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})

	mt.Run("set role", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		res, err := New(mt.DB).Users.SetRole(context.Background(), primitive.NewObjectID().Hex(), domain.RoleModerator)
		require.NoError(mt, err)
		assert.True(mt, res.Acknowledged)
		assert.EqualValues(mt, 1, res.MatchedCount)
		assert.EqualValues(mt, 1, res.ModifiedCount)
	})

	mt.Run("invalid id", func(mt *mtest.T) {
		_, err := New(mt.DB).Users.Delete(context.Background(), "not-hex")
		assert.ErrorIs(mt, err, domain.ErrInvalidID)
	})
}

func TestScholarshipStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "scholarshipDb.topScholarship", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "universityName", Value: "MIT"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "universityName", Value: "ETH Zurich"}},
		))

		list, err := New(mt.DB).Scholarships.List(context.Background(), domain.ListQuery{Size: 10})
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, "MIT", list[0].UniversityName)
	})

	mt.Run("estimated count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int64(25)}))

		n, err := New(mt.DB).Scholarships.EstimatedCount(context.Background())
		require.NoError(mt, err)
		assert.EqualValues(mt, 25, n)
	})

	mt.Run("detail miss", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "scholarshipDb.topScholarship", mtest.FirstBatch))

		_, err := New(mt.DB).Scholarships.FindByID(context.Background(), primitive.NewObjectID().Hex(), domain.ScholarshipDetailFields)
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestSubmissionStore_DeleteMany(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deletes matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		ids := []string{primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()}
		res, err := New(mt.DB).Submissions.DeleteMany(context.Background(), ids, "alice@example.com")
		require.NoError(mt, err)
		assert.EqualValues(mt, 2, res.DeletedCount)
	})

	mt.Run("rejects bad id before writing", func(mt *mtest.T) {
		_, err := New(mt.DB).Submissions.DeleteMany(context.Background(), []string{"zzz"}, "")
		assert.ErrorIs(mt, err, domain.ErrInvalidID)
	})
}

func TestSetDocDropsID(t *testing.T) {
	set := setDoc(domain.Fields{"_id": "x", "applicationFees": 10.0})
	assert.NotContains(t, set, "_id")
	assert.Equal(t, 10.0, set["applicationFees"])
}

func TestTransactionsUnsupported(t *testing.T) {
	assert.True(t, transactionsUnsupported(mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}))
	assert.True(t, transactionsUnsupported(errors.New("(IllegalOperation) Transaction numbers are only allowed on a replica set member or mongos")))
	assert.False(t, transactionsUnsupported(mongo.CommandError{Code: 11000}))
}

func TestPaymentStore_Record(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	illegalTxn := mtest.CommandError{
		Code:    20,
		Name:    "IllegalOperation",
		Message: "Transaction numbers are only allowed on a replica set member or mongos",
	}
	noForeign := mtest.CreateCursorResponse(0, "scholarshipDb.submits", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(0)}})

	mt.Run("standalone server falls back to plain writes", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(illegalTxn),
			mtest.CreateSuccessResponse(), // abortTransaction
			noForeign,
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
		)

		p := &domain.Payment{
			Email:     "alice@example.com",
			Price:     25,
			SubmitIDs: []string{primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()},
		}
		out, err := New(mt.DB).Payments.Record(context.Background(), p)
		require.NoError(mt, err)
		require.NotNil(mt, out.PaymentResult.InsertedID)
		assert.Equal(mt, *out.PaymentResult.InsertedID, p.ID)
		assert.EqualValues(mt, 2, out.DeleteResult.DeletedCount)
	})

	mt.Run("foreign submission is forbidden", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "scholarshipDb.submits", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
			mtest.CreateSuccessResponse(), // abortTransaction
		)

		p := &domain.Payment{
			Email:     "alice@example.com",
			Price:     25,
			SubmitIDs: []string{primitive.NewObjectID().Hex()},
		}
		_, err := New(mt.DB).Payments.Record(context.Background(), p)
		assert.ErrorIs(mt, err, domain.ErrForbidden)
		assert.Empty(mt, p.ID)
	})

	mt.Run("rejects bad submission id before writing", func(mt *mtest.T) {
		_, err := New(mt.DB).Payments.Record(context.Background(), &domain.Payment{
			Email:     "alice@example.com",
			SubmitIDs: []string{"zzz"},
		})
		assert.ErrorIs(mt, err, domain.ErrInvalidID)
	})
}

func TestReviewStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list by scholarship", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "scholarshipDb.reviews", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "scholarshipId", Value: "s1"},
			{Key: "ratingPoint", Value: 4.5},
		}))

		list, err := New(mt.DB).Reviews.List(context.Background(), "s1")
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, oid.Hex(), list[0].ID)
		assert.Equal(mt, 4.5, list[0].RatingPoint)
	})

	mt.Run("find miss", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "scholarshipDb.reviews", mtest.FirstBatch))

		_, err := New(mt.DB).Reviews.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		rv := &domain.Review{Email: "alice@example.com", RatingPoint: 5}
		res, err := New(mt.DB).Reviews.Create(context.Background(), rv)
		require.NoError(mt, err)
		require.NotNil(mt, res.InsertedID)
		assert.Equal(mt, *res.InsertedID, rv.ID)
	})

	mt.Run("update", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		res, err := New(mt.DB).Reviews.Update(context.Background(), primitive.NewObjectID().Hex(), domain.Fields{"reviewComment": "great"})
		require.NoError(mt, err)
		assert.EqualValues(mt, 1, res.ModifiedCount)
	})

	mt.Run("delete scoped to owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		res, err := New(mt.DB).Reviews.Delete(context.Background(), primitive.NewObjectID().Hex(), "mallory@example.com")
		require.NoError(mt, err)
		assert.EqualValues(mt, 0, res.DeletedCount)
	})

	mt.Run("invalid id", func(mt *mtest.T) {
		_, err := New(mt.DB).Reviews.Update(context.Background(), "nope", domain.Fields{"reviewComment": "x"})
		assert.ErrorIs(mt, err, domain.ErrInvalidID)
	})
}
