package mongostore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

func objectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := objectID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

func byID(oid primitive.ObjectID) bson.M {
	return bson.M{"_id": oid}
}

// setDoc drops the id so a PATCH can never rewrite it.
func setDoc(fields domain.Fields) bson.M {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		set[k] = v
	}
	return set
}

func projection(fields []string) bson.M {
	p := bson.M{}
	for _, f := range fields {
		p[f] = 1
	}
	return p
}

func insertResult(res *mongo.InsertOneResult) domain.InsertResult {
	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return domain.Inserted(id.Hex())
	case string:
		return domain.Inserted(id)
	default:
		return domain.Inserted(fmt.Sprint(id))
	}
}

func updateResult(res *mongo.UpdateResult) domain.UpdateResult {
	out := domain.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		hex := oid.Hex()
		out.UpsertedID = &hex
	}
	return out
}

func deleteResult(res *mongo.DeleteResult) domain.DeleteResult {
	return domain.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}

func findOne[T any](coll *mongo.Collection, res *mongo.SingleResult) (*T, error) {
	var out T
	err := res.Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	return &out, nil
}
