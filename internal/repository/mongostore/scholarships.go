package mongostore

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repository.ScholarshipRepository = (*scholarshipStore)(nil)

type scholarshipStore struct {
	coll *mongo.Collection
}

func searchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	return bson.M{"universityName": primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}}
}

func (s *scholarshipStore) List(ctx context.Context, q domain.ListQuery) ([]domain.Scholarship, error) {
	opts := options.Find().
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.Size))
	cur, err := s.coll.Find(ctx, searchFilter(q.Search), opts)
	if err != nil {
		return nil, fmt.Errorf("list scholarships: %w", err)
	}
	out := []domain.Scholarship{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode scholarships: %w", err)
	}
	return out, nil
}

func (s *scholarshipStore) All(ctx context.Context) ([]domain.Scholarship, error) {
	return s.List(ctx, domain.ListQuery{})
}

func (s *scholarshipStore) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := s.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count scholarships: %w", err)
	}
	return n, nil
}

func (s *scholarshipStore) FindByID(ctx context.Context, id string, fields []string) (*domain.Scholarship, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOne()
	if len(fields) > 0 {
		opts.SetProjection(projection(fields))
	}
	return findOne[domain.Scholarship](s.coll, s.coll.FindOne(ctx, byID(oid), opts))
}

func (s *scholarshipStore) Create(ctx context.Context, sc *domain.Scholarship) (domain.InsertResult, error) {
	sc.CreatedAt = time.Now().UTC()
	res, err := s.coll.InsertOne(ctx, sc)
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("create scholarship: %w", err)
	}
	out := insertResult(res)
	sc.ID = *out.InsertedID
	return out, nil
}

func (s *scholarshipStore) Update(ctx context.Context, id string, fields domain.Fields) (domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	res, err := s.coll.UpdateOne(ctx, byID(oid), bson.M{"$set": setDoc(fields)})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("update scholarship: %w", err)
	}
	return updateResult(res), nil
}

func (s *scholarshipStore) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	res, err := s.coll.DeleteOne(ctx, byID(oid))
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete scholarship: %w", err)
	}
	return deleteResult(res), nil
}
