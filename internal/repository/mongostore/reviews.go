package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repository.ReviewRepository = (*reviewStore)(nil)

type reviewStore struct {
	coll *mongo.Collection
}

func (s *reviewStore) List(ctx context.Context, scholarshipID string) ([]domain.Review, error) {
	filter := bson.M{}
	if scholarshipID != "" {
		filter["scholarshipId"] = scholarshipID
	}
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	out := []domain.Review{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return out, nil
}

func (s *reviewStore) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[domain.Review](s.coll, s.coll.FindOne(ctx, byID(oid)))
}

func (s *reviewStore) Create(ctx context.Context, rv *domain.Review) (domain.InsertResult, error) {
	rv.CreatedAt = time.Now().UTC()
	res, err := s.coll.InsertOne(ctx, rv)
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("create review: %w", err)
	}
	out := insertResult(res)
	rv.ID = *out.InsertedID
	return out, nil
}

func (s *reviewStore) Update(ctx context.Context, id string, fields domain.Fields) (domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	res, err := s.coll.UpdateOne(ctx, byID(oid), bson.M{"$set": setDoc(fields)})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("update review: %w", err)
	}
	return updateResult(res), nil
}

func (s *reviewStore) Delete(ctx context.Context, id, owner string) (domain.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	filter := byID(oid)
	if owner != "" {
		filter["email"] = owner
	}
	res, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete review: %w", err)
	}
	return deleteResult(res), nil
}
